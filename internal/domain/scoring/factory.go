package scoring

import (
	"fmt"

	"github.com/fatih/structs"
	"github.com/mitchellh/mapstructure"

	"github.com/hungercard/backend/internal/entity"
)

// NewEvaluator dispatches a scoring config to its rule implementation by
// name. Rule parameters are decoded here, once, never per evaluation.
func NewEvaluator(config entity.ScoringConfig) (Evaluator, error) {
	switch config.Name {
	case entity.RuleTwitterConnected:
		return &presenceEvaluator{config, func(app *entity.Application) bool {
			return app.Twitter != ""
		}}, nil

	case entity.RuleDiscordConnected:
		return &presenceEvaluator{config, func(app *entity.Application) bool {
			return app.Discord != ""
		}}, nil

	case entity.RuleTelegramConnected:
		return &presenceEvaluator{config, func(app *entity.Application) bool {
			return app.Telegram != ""
		}}, nil

	case entity.RuleGithubConnected:
		return &presenceEvaluator{config, func(app *entity.Application) bool {
			return app.Github != ""
		}}, nil

	case entity.RuleEmailVerified:
		return &presenceEvaluator{config, func(app *entity.Application) bool {
			return app.Email != ""
		}}, nil

	case entity.RuleHungerStarving:
		return &presenceEvaluator{config, func(app *entity.Application) bool {
			return app.HungerLevel == entity.HungerStarving
		}}, nil

	case entity.RuleEthBalanceTier1, entity.RuleEthBalanceTier2, entity.RuleEthBalanceTier3:
		return newBalanceTierEvaluator(config)

	case entity.RuleDependentsBonus:
		return newDependentsEvaluator(config)

	case entity.RuleNftHolder:
		return &nftHolderEvaluator{config: config}, nil

	case entity.RuleTokenHolder:
		return &tokenHolderEvaluator{config: config}, nil

	default:
		return nil, fmt.Errorf("invalid scoring rule %s", config.Name)
	}
}

func decodeParams(metadata map[string]any, out any) error {
	return mapstructure.Decode(metadata, out)
}

// NormalizedMetadata round-trips a config's metadata through its typed rule
// parameters, rejecting unknown rule names and malformed parameters, and
// making implicit defaults explicit in the stored map.
func NormalizedMetadata(config entity.ScoringConfig) (entity.Map, error) {
	evaluator, err := NewEvaluator(config)
	if err != nil {
		return nil, err
	}

	return entity.Map(structs.Map(evaluator)), nil
}
