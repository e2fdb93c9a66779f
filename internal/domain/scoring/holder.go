package scoring

import (
	"fmt"
	"strings"

	"github.com/pkg/math"

	"github.com/hungercard/backend/internal/entity"
)

// Multi-holding accumulator rules emit one breakdown line per qualifying
// holding instead of a single aggregate line.

type nftHolderEvaluator struct {
	config entity.ScoringConfig
}

func (e *nftHolderEvaluator) Evaluate(input Input) []entity.BreakdownLine {
	if input.Snapshot == nil {
		return nil
	}

	var lines []entity.BreakdownLine
	for _, holding := range input.Snapshot.NftHoldings {
		boost, ok := matchNFTBoost(input.NFTBoosts, holding.ContractAddress)
		if !ok || holding.Balance < boost.MinBalance {
			continue
		}

		points := boost.BoostPoints * int(holding.Balance)
		if boost.MaxBoost > 0 {
			points = math.MinInt(points, boost.MaxBoost)
		}

		if points <= 0 {
			continue
		}

		line := newLine(e.config, points)
		line.Description = fmt.Sprintf("Holder of %d %s", holding.Balance, boostLabel(boost.Name, boost.Symbol))
		lines = append(lines, line)
	}

	return lines
}

type tokenHolderEvaluator struct {
	config entity.ScoringConfig
}

func (e *tokenHolderEvaluator) Evaluate(input Input) []entity.BreakdownLine {
	if input.Snapshot == nil {
		return nil
	}

	var lines []entity.BreakdownLine
	for _, holding := range input.Snapshot.TokenHoldings {
		boost, ok := matchTokenBoost(input.TokenBoosts, holding.ContractAddress)
		if !ok || holding.UsdValue < boost.MinBalanceUSD {
			continue
		}

		// The token bonus is flat, holding more than the threshold earns no
		// extra points.
		if boost.BoostPoints <= 0 {
			continue
		}

		line := newLine(e.config, boost.BoostPoints)
		line.Description = fmt.Sprintf("Holder of %s", boostLabel(boost.Name, boost.Symbol))
		lines = append(lines, line)
	}

	return lines
}

// A holding is matched against the first boost config with its contract
// address. Addresses compare case-insensitively, checksummed and lowercase
// forms of the same address must collide.
func matchNFTBoost(boosts []entity.NFTBoostConfig, contractAddress string) (entity.NFTBoostConfig, bool) {
	for _, boost := range boosts {
		if strings.EqualFold(boost.ContractAddress, contractAddress) {
			return boost, true
		}
	}

	return entity.NFTBoostConfig{}, false
}

func matchTokenBoost(boosts []entity.TokenBoostConfig, contractAddress string) (entity.TokenBoostConfig, bool) {
	for _, boost := range boosts {
		if strings.EqualFold(boost.ContractAddress, contractAddress) {
			return boost, true
		}
	}

	return entity.TokenBoostConfig{}, false
}

func boostLabel(name, symbol string) string {
	if symbol != "" {
		return symbol
	}
	return name
}
