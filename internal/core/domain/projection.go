package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionAdjustment overrides how much of a deal's value lands in a given
// projection year, with an optional mobilisation date shifting its start month.
type ProjectionAdjustment struct {
	AdjustmentID     string           `json:"adjustmentID"` // Primary Key (UUID)
	DealID           string           `json:"dealID"`       // FK -> deals.deal_id
	Year             int              `json:"year"`
	ValueThisYearGBP *decimal.Decimal `json:"valueThisYearGBP,omitempty"`
	MobilisationDate *time.Time       `json:"mobilisationDate,omitempty"`
	AuditFields
}
