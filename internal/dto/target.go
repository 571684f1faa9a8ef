package dto

import (
	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// SetCompanyTargetRequest sets the company-wide GP goal for a year.
type SetCompanyTargetRequest struct {
	Year     int             `json:"year" binding:"required,min=2000"`
	TargetGP decimal.Decimal `json:"targetGP" binding:"required"`
}

// CompanyTargetResponse defines the API representation of a company target.
type CompanyTargetResponse struct {
	TargetID string          `json:"targetID"`
	Year     int             `json:"year"`
	TargetGP decimal.Decimal `json:"targetGP"`
	SetBy    string          `json:"setBy"`
}

// ToCompanyTargetResponse converts a domain.BillingTarget to CompanyTargetResponse DTO
func ToCompanyTargetResponse(t *domain.BillingTarget) CompanyTargetResponse {
	return CompanyTargetResponse{
		TargetID: t.TargetID,
		Year:     t.Year,
		TargetGP: t.TargetGP,
		SetBy:    t.SetBy,
	}
}

// MonthlyTargetEntry is one month's GP goal within a yearly submission.
type MonthlyTargetEntry struct {
	Month    int             `json:"month" binding:"required,min=1,max=12"`
	TargetGP decimal.Decimal `json:"targetGP"`
}

// SetIndividualTargetsRequest upserts a user's monthly GP goals for a year.
type SetIndividualTargetsRequest struct {
	Year   int                  `json:"year" binding:"required,min=2000"`
	Months []MonthlyTargetEntry `json:"months" binding:"required,min=1,max=12,dive"`
}

// IndividualTargetResponse defines the API representation of one monthly goal.
type IndividualTargetResponse struct {
	TargetID string          `json:"targetID"`
	UserID   string          `json:"userID"`
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	TargetGP decimal.Decimal `json:"targetGP"`
}

// ListIndividualTargetsResponse wraps a user's monthly goals for a year.
type ListIndividualTargetsResponse struct {
	Targets []IndividualTargetResponse `json:"targets"`
}

// ToListIndividualTargetsResponse converts a slice of domain.IndividualTarget to the list DTO.
func ToListIndividualTargetsResponse(targets []domain.IndividualTarget) ListIndividualTargetsResponse {
	responses := make([]IndividualTargetResponse, len(targets))
	for i, t := range targets {
		responses[i] = IndividualTargetResponse{
			TargetID: t.TargetID,
			UserID:   t.UserID,
			Year:     t.Year,
			Month:    t.Month,
			TargetGP: t.TargetGP,
		}
	}
	return ListIndividualTargetsResponse{Targets: responses}
}
