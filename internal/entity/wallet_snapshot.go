package entity

import "time"

type NftHolding struct {
	ContractAddress string `json:"contract_address"`
	Balance         int64  `json:"balance"`
}

type TokenHolding struct {
	ContractAddress string `json:"contract_address"`

	// Balance is the raw token balance as a decimal string to keep the full
	// 18-decimal precision.
	Balance  string  `json:"balance"`
	UsdValue float64 `json:"usd_value"`
}

// WalletSnapshot captures an applicant's on-chain holdings at one point in
// time. It is taken on the first approval attempt and reused afterwards.
type WalletSnapshot struct {
	Base

	ApplicationID string      `gorm:"uniqueIndex"`
	Application   Application `gorm:"foreignKey:ApplicationID"`

	// EthBalance is the balance in wei as a decimal string.
	EthBalance    string
	NftHoldings   Array[NftHolding]
	TokenHoldings Array[TokenHolding]

	SnapshotAt time.Time
}
