package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// UpsertProjectionAdjustmentRequest overrides a deal's contribution to a
// projection year. MobilisationDate applies to Contract deals only.
type UpsertProjectionAdjustmentRequest struct {
	Year             int              `json:"year" binding:"required,min=2000"`
	ValueThisYearGBP *decimal.Decimal `json:"valueThisYearGBP"`
	MobilisationDate *time.Time       `json:"mobilisationDate"`
}

// ProjectionAdjustmentResponse defines the API representation of an adjustment.
type ProjectionAdjustmentResponse struct {
	AdjustmentID     string           `json:"adjustmentID"`
	DealID           string           `json:"dealID"`
	Year             int              `json:"year"`
	ValueThisYearGBP *decimal.Decimal `json:"valueThisYearGBP,omitempty"`
	MobilisationDate *time.Time       `json:"mobilisationDate,omitempty"`
}

// ToProjectionAdjustmentResponse converts a domain.ProjectionAdjustment to its DTO.
func ToProjectionAdjustmentResponse(a *domain.ProjectionAdjustment) ProjectionAdjustmentResponse {
	return ProjectionAdjustmentResponse{
		AdjustmentID:     a.AdjustmentID,
		DealID:           a.DealID,
		Year:             a.Year,
		ValueThisYearGBP: a.ValueThisYearGBP,
		MobilisationDate: a.MobilisationDate,
	}
}
