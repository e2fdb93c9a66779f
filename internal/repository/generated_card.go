package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/hungercard/backend/internal/entity"
	"github.com/hungercard/backend/pkg/xcontext"
)

type GeneratedCardRepository interface {
	Upsert(ctx context.Context, data *entity.GeneratedCard) error
	GetByApplicationID(ctx context.Context, applicationID string) (*entity.GeneratedCard, error)
}

type generatedCardRepository struct{}

func NewGeneratedCardRepository() GeneratedCardRepository {
	return &generatedCardRepository{}
}

func (r *generatedCardRepository) Upsert(ctx context.Context, data *entity.GeneratedCard) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "application_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"image_cid", "metadata_cid", "image_url", "metadata_url", "prompt", "theme",
			}),
		}).
		Create(data).Error
}

func (r *generatedCardRepository) GetByApplicationID(
	ctx context.Context, applicationID string,
) (*entity.GeneratedCard, error) {
	result := entity.GeneratedCard{}
	if err := xcontext.DB(ctx).Take(&result, "application_id=?", applicationID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}
