package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hungercard/backend/internal/entity"
)

func Test_Score_TwoRuleScenario(t *testing.T) {
	configs := []entity.ScoringConfig{
		{
			Name:     entity.RuleTwitterConnected,
			Category: "social",
			Weight:   100,
			Enabled:  true,
		},
		{
			Name:     entity.RuleEthBalanceTier1,
			Category: "wallet",
			Weight:   100,
			Enabled:  true,
			Metadata: entity.Map{"min_balance": "1000000000000000000"},
		},
	}

	input := Input{
		App:      &entity.Application{Twitter: "alice"},
		Snapshot: &entity.WalletSnapshot{EthBalance: "2000000000000000000"},
	}

	result, err := Score(configs, input)
	require.NoError(t, err)
	require.Equal(t, 200, result.TotalScore)
	require.Len(t, result.Breakdown, 2)
	require.Equal(t, entity.RuleTwitterConnected, result.Breakdown[0].Name)
	require.Equal(t, entity.RuleEthBalanceTier1, result.Breakdown[1].Name)
}

func Test_Score_Deterministic(t *testing.T) {
	configs := []entity.ScoringConfig{
		{Name: entity.RuleTwitterConnected, Category: "social", Weight: 30, Enabled: true},
		{Name: entity.RuleDependentsBonus, Category: "household", Weight: 20, Enabled: true},
		{Name: entity.RuleNftHolder, Category: "wallet", Weight: 0, Enabled: true},
	}

	input := Input{
		App: &entity.Application{Twitter: "alice", Dependents: 3},
		Snapshot: &entity.WalletSnapshot{
			EthBalance: "0",
			NftHoldings: []entity.NftHolding{
				{ContractAddress: "0xAbC", Balance: 2},
			},
		},
		NFTBoosts: []entity.NFTBoostConfig{
			{ContractAddress: "0xabc", BoostPoints: 10, MinBalance: 1, Enabled: true},
		},
	}

	first, err := Score(configs, input)
	require.NoError(t, err)

	second, err := Score(configs, input)
	require.NoError(t, err)

	require.Equal(t, first.TotalScore, second.TotalScore)
	require.Equal(t, first.Breakdown, second.Breakdown)
}

func Test_Score_DependentsCap(t *testing.T) {
	configs := []entity.ScoringConfig{
		{Name: entity.RuleDependentsBonus, Category: "household", Weight: 20, Enabled: true},
	}

	result, err := Score(configs, Input{App: &entity.Application{Dependents: 9}})
	require.NoError(t, err)
	require.Equal(t, 100, result.TotalScore)
}

func Test_Score_DependentsCustomCap(t *testing.T) {
	configs := []entity.ScoringConfig{
		{
			Name:     entity.RuleDependentsBonus,
			Category: "household",
			Weight:   10,
			Enabled:  true,
			Metadata: entity.Map{"max_dependents": 2},
		},
	}

	result, err := Score(configs, Input{App: &entity.Application{Dependents: 9}})
	require.NoError(t, err)
	require.Equal(t, 20, result.TotalScore)
}

func Test_Score_NFTBoostCap(t *testing.T) {
	configs := []entity.ScoringConfig{
		{Name: entity.RuleNftHolder, Category: "wallet", Enabled: true},
	}

	input := Input{
		App: &entity.Application{},
		Snapshot: &entity.WalletSnapshot{
			EthBalance: "0",
			NftHoldings: []entity.NftHolding{
				{ContractAddress: "0x00000000000000000000000000000000000000aa", Balance: 10},
			},
		},
		NFTBoosts: []entity.NFTBoostConfig{
			{
				ContractAddress: "0x00000000000000000000000000000000000000AA",
				Symbol:          "PUNK",
				BoostPoints:     10,
				MinBalance:      1,
				MaxBoost:        25,
				Enabled:         true,
			},
		},
	}

	result, err := Score(configs, input)
	require.NoError(t, err)
	require.Len(t, result.Breakdown, 1)
	require.Equal(t, 25, result.Breakdown[0].Points)
}

func Test_Score_TokenThreshold(t *testing.T) {
	configs := []entity.ScoringConfig{
		{Name: entity.RuleTokenHolder, Category: "wallet", Enabled: true},
	}

	boosts := []entity.TokenBoostConfig{
		{
			ContractAddress: "0xdead",
			Symbol:          "USDC",
			BoostPoints:     50,
			MinBalanceUSD:   100,
			Enabled:         true,
		},
	}

	below := Input{
		App: &entity.Application{},
		Snapshot: &entity.WalletSnapshot{
			EthBalance: "0",
			TokenHoldings: []entity.TokenHolding{
				{ContractAddress: "0xDEAD", Balance: "99000000", UsdValue: 99},
			},
		},
		TokenBoosts: boosts,
	}

	result, err := Score(configs, below)
	require.NoError(t, err)
	require.Equal(t, 0, result.TotalScore)
	require.Empty(t, result.Breakdown)

	atThreshold := below
	atThreshold.Snapshot = &entity.WalletSnapshot{
		EthBalance: "0",
		TokenHoldings: []entity.TokenHolding{
			{ContractAddress: "0xDEAD", Balance: "100000000", UsdValue: 100},
		},
	}

	result, err = Score(configs, atThreshold)
	require.NoError(t, err)
	require.Equal(t, 50, result.TotalScore)
	require.Len(t, result.Breakdown, 1)
}

func Test_Score_FirstBoostWins(t *testing.T) {
	configs := []entity.ScoringConfig{
		{Name: entity.RuleNftHolder, Category: "wallet", Enabled: true},
	}

	input := Input{
		App: &entity.Application{},
		Snapshot: &entity.WalletSnapshot{
			EthBalance: "0",
			NftHoldings: []entity.NftHolding{
				{ContractAddress: "0xabc", Balance: 1},
			},
		},
		NFTBoosts: []entity.NFTBoostConfig{
			{ContractAddress: "0xABC", BoostPoints: 10, MinBalance: 1, Enabled: true},
			{ContractAddress: "0xabc", BoostPoints: 99, MinBalance: 1, Enabled: true},
		},
	}

	result, err := Score(configs, input)
	require.NoError(t, err)
	require.Len(t, result.Breakdown, 1)
	require.Equal(t, 10, result.Breakdown[0].Points)
}

func Test_Score_MissingSnapshot(t *testing.T) {
	configs := []entity.ScoringConfig{
		{Name: entity.RuleTwitterConnected, Category: "social", Weight: 30, Enabled: true},
		{
			Name:     entity.RuleEthBalanceTier1,
			Category: "wallet",
			Weight:   100,
			Enabled:  true,
			Metadata: entity.Map{"min_balance": "0"},
		},
		{Name: entity.RuleNftHolder, Category: "wallet", Enabled: true},
		{Name: entity.RuleTokenHolder, Category: "wallet", Enabled: true},
	}

	input := Input{
		App: &entity.Application{Twitter: "alice"},
		NFTBoosts: []entity.NFTBoostConfig{
			{ContractAddress: "0xabc", BoostPoints: 10, MinBalance: 1, Enabled: true},
		},
	}

	result, err := Score(configs, input)
	require.NoError(t, err)
	require.Equal(t, 30, result.TotalScore)
	require.Len(t, result.Breakdown, 1)
}

func Test_Score_DisabledConfig(t *testing.T) {
	configs := []entity.ScoringConfig{
		{Name: entity.RuleTwitterConnected, Category: "social", Weight: 30, Enabled: false},
	}

	result, err := Score(configs, Input{App: &entity.Application{Twitter: "alice"}})
	require.NoError(t, err)
	require.Equal(t, 0, result.TotalScore)
	require.Empty(t, result.Breakdown)
}

func Test_Score_UnknownRule(t *testing.T) {
	configs := []entity.ScoringConfig{
		{Name: "not_a_rule", Enabled: true},
	}

	_, err := Score(configs, Input{App: &entity.Application{}})
	require.Error(t, err)
}

func Test_Score_InvalidMinBalance(t *testing.T) {
	configs := []entity.ScoringConfig{
		{
			Name:     entity.RuleEthBalanceTier1,
			Weight:   100,
			Enabled:  true,
			Metadata: entity.Map{"min_balance": "1.5e18"},
		},
	}

	_, err := Score(configs, Input{App: &entity.Application{}})
	require.Error(t, err)
}
