package scoring

import (
	"github.com/hungercard/backend/internal/entity"
)

// Result folds into Application.score and scoreBreakdown at approval time,
// it is never persisted on its own.
type Result struct {
	TotalScore int
	Breakdown  []entity.BreakdownLine
}

// Score runs every enabled config over the input, in stored config order.
// It does no I/O, callers load configs and snapshot beforehand.
func Score(configs []entity.ScoringConfig, input Input) (*Result, error) {
	result := Result{Breakdown: []entity.BreakdownLine{}}
	for _, config := range configs {
		if !config.Enabled {
			continue
		}

		evaluator, err := NewEvaluator(config)
		if err != nil {
			return nil, err
		}

		for _, line := range evaluator.Evaluate(input) {
			result.Breakdown = append(result.Breakdown, line)
			result.TotalScore += line.Points
		}
	}

	return &result, nil
}
