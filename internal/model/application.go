package model

type BreakdownLine struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

type Application struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	WalletAddress string `json:"wallet_address"`

	Twitter  string `json:"twitter,omitempty"`
	Discord  string `json:"discord,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Github   string `json:"github,omitempty"`
	Email    string `json:"email,omitempty"`

	HungerLevel string `json:"hunger_level"`
	Dependents  int    `json:"dependents"`
	ZipCode     string `json:"zip_code"`

	Status         string          `json:"status"`
	Score          int             `json:"score"`
	ScoreBreakdown []BreakdownLine `json:"score_breakdown,omitempty"`
	ApprovedAt     string          `json:"approved_at,omitempty"`
	RejectReason   string          `json:"reject_reason,omitempty"`
	MintedTokenID  int64           `json:"minted_token_id,omitempty"`
}

// ExistingApplication identifies the application a duplicate submission
// collided with. It is attached to conflict error responses.
type ExistingApplication struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

type DuplicateDetail struct {
	ExistingApplication ExistingApplication `json:"existing_application"`
	DuplicateSocial     string              `json:"duplicate_social,omitempty"`
}

type CreateApplicationRequest struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	WalletAddress string `json:"wallet_address"`

	Twitter  string `json:"twitter"`
	Discord  string `json:"discord"`
	Telegram string `json:"telegram"`
	Github   string `json:"github"`
	Email    string `json:"email"`

	HungerLevel string `json:"hunger_level"`
	Dependents  int    `json:"dependents"`
	ZipCode     string `json:"zip_code"`
}

type CreateApplicationResponse Application

// SessionInfo keeps the applicant's id in the cookie session so follow-up
// status checks can identify them without re-authenticating.
func (r *CreateApplicationResponse) SessionInfo() map[string]any {
	return map[string]any{"user_id": r.UserID}
}

type GetApplicationRequest struct {
	UserID string `json:"user_id"`
}

type GetApplicationResponse Application

type GetListApplicationRequest struct {
	Status string `json:"status"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetListApplicationResponse struct {
	Applications []Application `json:"applications"`
}

type ApproveApplicationRequest struct {
	UserID string `json:"user_id"`
}

type ApproveApplicationResponse struct {
	UserID         string          `json:"user_id"`
	Score          int             `json:"score"`
	ScoreBreakdown []BreakdownLine `json:"score_breakdown"`

	ImageCid           string `json:"image_cid"`
	MetadataCid        string `json:"metadata_cid"`
	ImageUrl           string `json:"image_url"`
	MetadataUrl        string `json:"metadata_url"`
	ImageGatewayUrl    string `json:"image_gateway_url"`
	MetadataGatewayUrl string `json:"metadata_gateway_url"`
}

type RejectApplicationRequest struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

type RejectApplicationResponse struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}
