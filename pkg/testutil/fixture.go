package testutil

import (
	"context"

	"github.com/hungercard/backend/internal/entity"
	"github.com/hungercard/backend/internal/repository"
)

var (
	Admin = entity.User{
		Base: entity.Base{ID: "admin"},
		Name: "admin",
		Role: entity.RoleAdmin,
	}

	User1 = entity.User{
		Base: entity.Base{ID: "user1"},
		Name: "user1",
		Role: entity.RoleUser,
	}

	Application1 = entity.Application{
		Base:          entity.Base{ID: "application1"},
		UserID:        "user1",
		Username:      "alice",
		WalletAddress: "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4",
		Twitter:       "alice",
		HungerLevel:   entity.HungerStarving,
		Dependents:    2,
		ZipCode:       "10001",
		Status:        entity.ApplicationPending,
	}

	Application2 = entity.Application{
		Base:        entity.Base{ID: "application2"},
		UserID:      "user2",
		Username:    "bob",
		Discord:     "bob#1234",
		HungerLevel: entity.HungerHungry,
		Status:      entity.ApplicationPending,
	}

	ScoringConfigTwitter = entity.ScoringConfig{
		Base:     entity.Base{ID: "config-twitter"},
		Name:     entity.RuleTwitterConnected,
		Category: "social",
		Weight:   30,
		Enabled:  true,
	}

	ScoringConfigEthTier1 = entity.ScoringConfig{
		Base:     entity.Base{ID: "config-eth-tier1"},
		Name:     entity.RuleEthBalanceTier1,
		Category: "wallet",
		Weight:   100,
		Enabled:  true,
		Metadata: entity.Map{"min_balance": "1000000000000000000"},
	}
)

func CreateFixtureContext() context.Context {
	ctx := MockContext()
	InsertUsers(ctx)
	InsertApplications(ctx)
	InsertScoringConfigs(ctx)
	return ctx
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []entity.User{Admin, User1} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func InsertApplications(ctx context.Context) {
	applicationRepo := repository.NewApplicationRepository()
	for _, application := range []entity.Application{Application1, Application2} {
		application := application
		if err := applicationRepo.Create(ctx, &application); err != nil {
			panic(err)
		}
	}
}

func InsertScoringConfigs(ctx context.Context) {
	scoringConfigRepo := repository.NewScoringConfigRepository()
	for _, config := range []entity.ScoringConfig{ScoringConfigTwitter, ScoringConfigEthTier1} {
		config := config
		if err := scoringConfigRepo.Create(ctx, &config); err != nil {
			panic(err)
		}
	}
}
