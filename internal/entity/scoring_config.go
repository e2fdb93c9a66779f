package entity

// Scoring rule names form a closed set; dispatch happens by name in the
// scoring factory.
const (
	RuleTwitterConnected  = "twitter_connected"
	RuleDiscordConnected  = "discord_connected"
	RuleTelegramConnected = "telegram_connected"
	RuleGithubConnected   = "github_connected"
	RuleEmailVerified     = "email_verified"
	RuleHungerStarving    = "hunger_starving"
	RuleEthBalanceTier1   = "eth_balance_tier1"
	RuleEthBalanceTier2   = "eth_balance_tier2"
	RuleEthBalanceTier3   = "eth_balance_tier3"
	RuleDependentsBonus   = "dependents_bonus"
	RuleNftHolder         = "nft_holder"
	RuleTokenHolder       = "token_holder"
)

// ScoringConfig is an admin-authored scoring rule. Metadata carries the
// rule-specific parameters (e.g. min_balance for the eth tiers).
type ScoringConfig struct {
	Base

	Name        string `gorm:"uniqueIndex"`
	Category    string
	Description string
	Weight      int
	Enabled     bool `gorm:"default:true"`
	Metadata    Map
}

// NFTBoostConfig grants bonus points for holding a specific NFT contract.
type NFTBoostConfig struct {
	Base

	ContractAddress string `gorm:"uniqueIndex"`
	Name            string
	Symbol          string
	BoostPoints     int
	MinBalance      int64

	// MaxBoost caps the per-holding bonus; zero means uncapped.
	MaxBoost int
	Enabled  bool `gorm:"default:true"`
}

// TokenBoostConfig grants a flat bonus for holding a token contract worth at
// least MinBalanceUSD.
type TokenBoostConfig struct {
	Base

	ContractAddress string `gorm:"uniqueIndex"`
	Name            string
	Symbol          string
	BoostPoints     int
	MinBalanceUSD   float64
	Enabled         bool `gorm:"default:true"`
}
