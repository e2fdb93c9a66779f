package entity

import (
	"context"

	"github.com/hungercard/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Application{},
		&WalletSnapshot{},
		&GeneratedCard{},
		&ScoringConfig{},
		&NFTBoostConfig{},
		&TokenBoostConfig{},
	)
}
