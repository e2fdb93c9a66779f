package model

type ScoringConfig struct {
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Weight      int            `json:"weight"`
	Enabled     bool           `json:"enabled"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type CreateScoringConfigRequest ScoringConfig

type CreateScoringConfigResponse struct {
	ID string `json:"id"`
}

type UpdateScoringConfigRequest struct {
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Weight      *int           `json:"weight"`
	Enabled     *bool          `json:"enabled"`
	Metadata    map[string]any `json:"metadata"`
}

type UpdateScoringConfigResponse struct{}

type GetListScoringConfigRequest struct{}

type GetListScoringConfigResponse struct {
	Configs []ScoringConfig `json:"configs"`
}

type NFTBoostConfig struct {
	ContractAddress string `json:"contract_address"`
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	BoostPoints     int    `json:"boost_points"`
	MinBalance      int64  `json:"min_balance"`
	MaxBoost        int    `json:"max_boost"`
	Enabled         bool   `json:"enabled"`
}

type UpsertNFTBoostRequest NFTBoostConfig

type UpsertNFTBoostResponse struct{}

type TokenBoostConfig struct {
	ContractAddress string  `json:"contract_address"`
	Name            string  `json:"name"`
	Symbol          string  `json:"symbol"`
	BoostPoints     int     `json:"boost_points"`
	MinBalanceUSD   float64 `json:"min_balance_usd"`
	Enabled         bool    `json:"enabled"`
}

type UpsertTokenBoostRequest TokenBoostConfig

type UpsertTokenBoostResponse struct{}

type GetListBoostConfigRequest struct{}

type GetListBoostConfigResponse struct {
	NFTBoosts   []NFTBoostConfig   `json:"nft_boosts"`
	TokenBoosts []TokenBoostConfig `json:"token_boosts"`
}
