package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hungercard/backend/internal/entity"
	"github.com/hungercard/backend/internal/model"
	"github.com/hungercard/backend/internal/repository"
	"github.com/hungercard/backend/pkg/errorx"
	"github.com/hungercard/backend/pkg/testutil"
)

func Test_scoringConfigDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewScoringConfigDomain(repository.NewScoringConfigRepository())

	resp, err := domain.Create(ctx, &model.CreateScoringConfigRequest{
		Name:     entity.RuleDependentsBonus,
		Category: "household",
		Weight:   20,
		Enabled:  true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	// The implicit dependents cap becomes explicit in the stored metadata.
	stored, err := repository.NewScoringConfigRepository().GetByName(ctx, entity.RuleDependentsBonus)
	require.NoError(t, err)
	require.EqualValues(t, 5, stored.Metadata["max_dependents"])

	_, err = domain.Create(ctx, &model.CreateScoringConfigRequest{
		Name: entity.RuleDependentsBonus, Weight: 20, Enabled: true,
	})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_scoringConfigDomain_Create_InvalidRule(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewScoringConfigDomain(repository.NewScoringConfigRepository())

	_, err := domain.Create(ctx, &model.CreateScoringConfigRequest{Name: "not_a_rule"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = domain.Create(ctx, &model.CreateScoringConfigRequest{
		Name:     entity.RuleEthBalanceTier1,
		Weight:   100,
		Metadata: map[string]any{"min_balance": "not-a-number"},
	})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_scoringConfigDomain_Update(t *testing.T) {
	ctx := testutil.CreateFixtureContext()
	domain := NewScoringConfigDomain(repository.NewScoringConfigRepository())

	weight := 50
	disabled := false
	_, err := domain.Update(ctx, &model.UpdateScoringConfigRequest{
		Name:    entity.RuleTwitterConnected,
		Weight:  &weight,
		Enabled: &disabled,
	})
	require.NoError(t, err)

	stored, err := repository.NewScoringConfigRepository().GetByName(ctx, entity.RuleTwitterConnected)
	require.NoError(t, err)
	require.Equal(t, 50, stored.Weight)
	require.False(t, stored.Enabled)

	_, err = domain.Update(ctx, &model.UpdateScoringConfigRequest{Name: "ghost"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_scoringConfigDomain_Boosts(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewScoringConfigDomain(repository.NewScoringConfigRepository())

	_, err := domain.UpsertNFTBoost(ctx, &model.UpsertNFTBoostRequest{
		ContractAddress: "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4",
		Name:            "Test Punks",
		Symbol:          "PUNK",
		BoostPoints:     10,
		MinBalance:      1,
		MaxBoost:        25,
		Enabled:         true,
	})
	require.NoError(t, err)

	// Upserting the same contract updates in place.
	_, err = domain.UpsertNFTBoost(ctx, &model.UpsertNFTBoostRequest{
		ContractAddress: "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4",
		Symbol:          "PUNK",
		BoostPoints:     15,
		MinBalance:      1,
		Enabled:         true,
	})
	require.NoError(t, err)

	_, err = domain.UpsertTokenBoost(ctx, &model.UpsertTokenBoostRequest{
		ContractAddress: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
		Symbol:          "USDT",
		BoostPoints:     50,
		MinBalanceUSD:   100,
		Enabled:         true,
	})
	require.NoError(t, err)

	resp, err := domain.GetBoosts(ctx, &model.GetListBoostConfigRequest{})
	require.NoError(t, err)
	require.Len(t, resp.NFTBoosts, 1)
	require.Equal(t, 15, resp.NFTBoosts[0].BoostPoints)
	require.Len(t, resp.TokenBoosts, 1)

	_, err = domain.UpsertNFTBoost(ctx, &model.UpsertNFTBoostRequest{ContractAddress: "nope"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}
