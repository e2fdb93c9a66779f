package common

import (
	"time"

	"github.com/hungercard/backend/internal/entity"
	"github.com/hungercard/backend/internal/model"
)

func ConvertApplication(app *entity.Application) model.Application {
	approvedAt := ""
	if app.ApprovedAt.Valid {
		approvedAt = app.ApprovedAt.Time.Format(time.RFC3339)
	}

	var mintedTokenID int64
	if app.MintedTokenID.Valid {
		mintedTokenID = app.MintedTokenID.Int64
	}

	return model.Application{
		UserID:         app.UserID,
		Username:       app.Username,
		WalletAddress:  app.WalletAddress,
		Twitter:        app.Twitter,
		Discord:        app.Discord,
		Telegram:       app.Telegram,
		Github:         app.Github,
		Email:          app.Email,
		HungerLevel:    string(app.HungerLevel),
		Dependents:     app.Dependents,
		ZipCode:        app.ZipCode,
		Status:         string(app.Status),
		Score:          app.Score,
		ScoreBreakdown: ConvertBreakdown(app.ScoreBreakdown),
		ApprovedAt:     approvedAt,
		RejectReason:   app.RejectReason,
		MintedTokenID:  mintedTokenID,
	}
}

func ConvertBreakdown(lines []entity.BreakdownLine) []model.BreakdownLine {
	result := make([]model.BreakdownLine, 0, len(lines))
	for _, line := range lines {
		result = append(result, model.BreakdownLine{
			Category:    line.Category,
			Name:        line.Name,
			Points:      line.Points,
			Description: line.Description,
		})
	}

	return result
}
