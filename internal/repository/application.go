package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hungercard/backend/internal/entity"
	"github.com/hungercard/backend/pkg/xcontext"
)

// Social columns the duplicate registry is allowed to probe. Keys are the
// API-facing names, values the database columns.
var socialColumns = map[string]string{
	"twitter":  "twitter",
	"discord":  "discord",
	"telegram": "telegram",
	"github":   "github",
	"email":    "email",
}

type ApplicationRepository interface {
	Create(ctx context.Context, data *entity.Application) error
	GetByUserID(ctx context.Context, userID string) (*entity.Application, error)
	GetByUsername(ctx context.Context, username string) (*entity.Application, error)
	GetBySocial(ctx context.Context, field, value string) (*entity.Application, error)
	GetList(ctx context.Context, status entity.ApplicationStatus, offset, limit int) ([]entity.Application, error)
	Approve(ctx context.Context, userID string, score int, breakdown []entity.BreakdownLine) (bool, error)
	Reject(ctx context.Context, userID, reason string) (bool, error)
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(ctx context.Context, data *entity.Application) error {
	if err := xcontext.DB(ctx).Create(data).Error; err != nil {
		return err
	}

	return nil
}

func (r *applicationRepository) GetByUserID(ctx context.Context, userID string) (*entity.Application, error) {
	result := entity.Application{}
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *applicationRepository) GetByUsername(ctx context.Context, username string) (*entity.Application, error) {
	result := entity.Application{}
	if err := xcontext.DB(ctx).Take(&result, "username=?", username).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *applicationRepository) GetBySocial(ctx context.Context, field, value string) (*entity.Application, error) {
	column, ok := socialColumns[field]
	if !ok {
		return nil, fmt.Errorf("not support social field %s", field)
	}

	result := entity.Application{}
	if err := xcontext.DB(ctx).Take(&result, column+"=?", value).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *applicationRepository) GetList(
	ctx context.Context, status entity.ApplicationStatus, offset, limit int,
) ([]entity.Application, error) {
	result := []entity.Application{}
	tx := xcontext.DB(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at ASC")

	if status != "" {
		tx = tx.Where("status=?", status)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// Approve flips a pending application to approved. The status guard in the
// WHERE clause is what makes the transition at-most-once; callers must treat
// a false return as "someone else got there first".
func (r *applicationRepository) Approve(
	ctx context.Context, userID string, score int, breakdown []entity.BreakdownLine,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Application{}).
		Where("user_id=? AND status=?", userID, entity.ApplicationPending).
		Updates(map[string]any{
			"status":          entity.ApplicationApproved,
			"score":           score,
			"score_breakdown": entity.Array[entity.BreakdownLine](breakdown),
			"approved_at":     time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

// Reject never demotes an approved or minted application. Re-rejecting an
// already rejected one just refreshes the reason.
func (r *applicationRepository) Reject(ctx context.Context, userID, reason string) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Application{}).
		Where("user_id=? AND status IN (?)",
			userID, []entity.ApplicationStatus{entity.ApplicationPending, entity.ApplicationRejected}).
		Updates(map[string]any{
			"status":        entity.ApplicationRejected,
			"reject_reason": reason,
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}
