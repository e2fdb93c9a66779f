package scoring

import (
	"fmt"
	"math/big"

	"github.com/pkg/math"

	"github.com/hungercard/backend/internal/entity"
)

const defaultMaxDependents = 5

// Input is everything a rule may look at. Snapshot is nil when the wallet
// has never been snapshotted, wallet rules then earn nothing.
type Input struct {
	App         *entity.Application
	Snapshot    *entity.WalletSnapshot
	NFTBoosts   []entity.NFTBoostConfig
	TokenBoosts []entity.TokenBoostConfig
}

// Evaluator is one scoring rule bound to its config. Evaluate must be pure,
// identical inputs give identical lines.
type Evaluator interface {
	Evaluate(input Input) []entity.BreakdownLine
}

// Boolean-presence rules earn the full weight when the predicate holds.
type presenceEvaluator struct {
	config   entity.ScoringConfig
	earnedBy func(app *entity.Application) bool
}

func (e *presenceEvaluator) Evaluate(input Input) []entity.BreakdownLine {
	if e.config.Weight <= 0 || !e.earnedBy(input.App) {
		return nil
	}

	return []entity.BreakdownLine{newLine(e.config, e.config.Weight)}
}

// Tiered balance rules earn the full weight when the wallet's ETH balance
// reaches the configured wei threshold.
type balanceTierEvaluator struct {
	config entity.ScoringConfig

	// MinBalance is a wei amount, kept as a string in metadata because it
	// does not fit in a float or an int64.
	MinBalance string `mapstructure:"min_balance" structs:"min_balance"`

	threshold *big.Int
}

func newBalanceTierEvaluator(config entity.ScoringConfig) (*balanceTierEvaluator, error) {
	evaluator := balanceTierEvaluator{config: config}
	if err := decodeParams(config.Metadata, &evaluator); err != nil {
		return nil, err
	}

	threshold, ok := new(big.Int).SetString(evaluator.MinBalance, 10)
	if !ok {
		return nil, fmt.Errorf("invalid min_balance %q of rule %s", evaluator.MinBalance, config.Name)
	}

	evaluator.threshold = threshold
	return &evaluator, nil
}

func (e *balanceTierEvaluator) Evaluate(input Input) []entity.BreakdownLine {
	if input.Snapshot == nil || e.config.Weight <= 0 {
		return nil
	}

	balance, ok := new(big.Int).SetString(input.Snapshot.EthBalance, 10)
	if !ok || balance.Cmp(e.threshold) < 0 {
		return nil
	}

	return []entity.BreakdownLine{newLine(e.config, e.config.Weight)}
}

// The dependents rule scales the weight by the dependent count, capped so a
// large household cannot dominate the score.
type dependentsEvaluator struct {
	config entity.ScoringConfig

	MaxDependents int `mapstructure:"max_dependents" structs:"max_dependents"`
}

func newDependentsEvaluator(config entity.ScoringConfig) (*dependentsEvaluator, error) {
	evaluator := dependentsEvaluator{config: config}
	if err := decodeParams(config.Metadata, &evaluator); err != nil {
		return nil, err
	}

	if evaluator.MaxDependents <= 0 {
		evaluator.MaxDependents = defaultMaxDependents
	}

	return &evaluator, nil
}

func (e *dependentsEvaluator) Evaluate(input Input) []entity.BreakdownLine {
	points := e.config.Weight * math.MinInt(input.App.Dependents, e.MaxDependents)
	if points <= 0 {
		return nil
	}

	return []entity.BreakdownLine{newLine(e.config, points)}
}

func newLine(config entity.ScoringConfig, points int) entity.BreakdownLine {
	description := config.Description
	if description == "" {
		description = config.Name
	}

	return entity.BreakdownLine{
		Category:    config.Category,
		Name:        config.Name,
		Points:      points,
		Description: description,
	}
}
