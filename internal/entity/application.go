package entity

import (
	"database/sql"

	"github.com/hungercard/backend/pkg/enum"
)

type ApplicationStatus string

var (
	ApplicationPending  = enum.New(ApplicationStatus("pending"))
	ApplicationApproved = enum.New(ApplicationStatus("approved"))
	ApplicationRejected = enum.New(ApplicationStatus("rejected"))
	ApplicationMinted   = enum.New(ApplicationStatus("minted"))
)

type HungerLevel string

var (
	HungerWellFed  = enum.New(HungerLevel("well_fed"))
	HungerHungry   = enum.New(HungerLevel("hungry"))
	HungerStarving = enum.New(HungerLevel("starving"))
)

// BreakdownLine is one earned contribution to an application's total score.
type BreakdownLine struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

type Application struct {
	Base

	UserID   string `gorm:"uniqueIndex"`
	Username string `gorm:"uniqueIndex"`

	WalletAddress string

	Twitter  string
	Discord  string
	Telegram string
	Github   string
	Email    string

	HungerLevel HungerLevel
	Dependents  int
	ZipCode     string

	Status         ApplicationStatus `gorm:"default:pending"`
	Score          int
	ScoreBreakdown Array[BreakdownLine]
	ApprovedAt     sql.NullTime
	RejectReason   string

	// MintedTokenID is written by the minting service, never by this backend.
	MintedTokenID sql.NullInt64 `gorm:"uniqueIndex"`
}
