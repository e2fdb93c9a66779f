package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/hungercard/backend/internal/entity"
	"github.com/hungercard/backend/pkg/xcontext"
)

type ScoringConfigRepository interface {
	Create(ctx context.Context, data *entity.ScoringConfig) error
	Update(ctx context.Context, name string, data map[string]any) error
	GetByName(ctx context.Context, name string) (*entity.ScoringConfig, error)
	GetList(ctx context.Context) ([]entity.ScoringConfig, error)
	GetEnabled(ctx context.Context) ([]entity.ScoringConfig, error)

	UpsertNFTBoost(ctx context.Context, data *entity.NFTBoostConfig) error
	UpsertTokenBoost(ctx context.Context, data *entity.TokenBoostConfig) error
	GetNFTBoosts(ctx context.Context, enabledOnly bool) ([]entity.NFTBoostConfig, error)
	GetTokenBoosts(ctx context.Context, enabledOnly bool) ([]entity.TokenBoostConfig, error)
}

type scoringConfigRepository struct{}

func NewScoringConfigRepository() ScoringConfigRepository {
	return &scoringConfigRepository{}
}

func (r *scoringConfigRepository) Create(ctx context.Context, data *entity.ScoringConfig) error {
	if err := xcontext.DB(ctx).Create(data).Error; err != nil {
		return err
	}

	return nil
}

func (r *scoringConfigRepository) Update(ctx context.Context, name string, data map[string]any) error {
	return xcontext.DB(ctx).
		Model(&entity.ScoringConfig{}).
		Where("name=?", name).
		Updates(data).Error
}

func (r *scoringConfigRepository) GetByName(ctx context.Context, name string) (*entity.ScoringConfig, error) {
	result := entity.ScoringConfig{}
	if err := xcontext.DB(ctx).Take(&result, "name=?", name).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *scoringConfigRepository) GetList(ctx context.Context) ([]entity.ScoringConfig, error) {
	result := []entity.ScoringConfig{}
	if err := xcontext.DB(ctx).Order("category ASC, name ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *scoringConfigRepository) GetEnabled(ctx context.Context) ([]entity.ScoringConfig, error) {
	result := []entity.ScoringConfig{}
	if err := xcontext.DB(ctx).
		Where("enabled=?", true).
		Order("category ASC, name ASC").
		Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *scoringConfigRepository) UpsertNFTBoost(ctx context.Context, data *entity.NFTBoostConfig) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "contract_address"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "symbol", "boost_points", "min_balance", "max_boost", "enabled",
			}),
		}).
		Create(data).Error
}

func (r *scoringConfigRepository) UpsertTokenBoost(ctx context.Context, data *entity.TokenBoostConfig) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "contract_address"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "symbol", "boost_points", "min_balance_usd", "enabled",
			}),
		}).
		Create(data).Error
}

func (r *scoringConfigRepository) GetNFTBoosts(
	ctx context.Context, enabledOnly bool,
) ([]entity.NFTBoostConfig, error) {
	result := []entity.NFTBoostConfig{}
	tx := xcontext.DB(ctx).Order("contract_address ASC")
	if enabledOnly {
		tx = tx.Where("enabled=?", true)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *scoringConfigRepository) GetTokenBoosts(
	ctx context.Context, enabledOnly bool,
) ([]entity.TokenBoostConfig, error) {
	result := []entity.TokenBoostConfig{}
	tx := xcontext.DB(ctx).Order("contract_address ASC")
	if enabledOnly {
		tx = tx.Where("enabled=?", true)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
