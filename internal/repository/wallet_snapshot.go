package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/hungercard/backend/internal/entity"
	"github.com/hungercard/backend/pkg/xcontext"
)

type WalletSnapshotRepository interface {
	Upsert(ctx context.Context, data *entity.WalletSnapshot) error
	GetByApplicationID(ctx context.Context, applicationID string) (*entity.WalletSnapshot, error)
}

type walletSnapshotRepository struct{}

func NewWalletSnapshotRepository() WalletSnapshotRepository {
	return &walletSnapshotRepository{}
}

func (r *walletSnapshotRepository) Upsert(ctx context.Context, data *entity.WalletSnapshot) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "application_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"eth_balance", "nft_holdings", "token_holdings", "snapshot_at",
			}),
		}).
		Create(data).Error
}

func (r *walletSnapshotRepository) GetByApplicationID(
	ctx context.Context, applicationID string,
) (*entity.WalletSnapshot, error) {
	result := entity.WalletSnapshot{}
	if err := xcontext.DB(ctx).Take(&result, "application_id=?", applicationID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}
