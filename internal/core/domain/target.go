package domain

import (
	"github.com/shopspring/decimal"
)

// BillingTarget is the company-wide GP goal for a calendar year.
type BillingTarget struct {
	TargetID string          `json:"targetID"` // Primary Key (UUID)
	Year     int             `json:"year"`
	TargetGP decimal.Decimal `json:"targetGP"` // GBP
	SetBy    string          `json:"setBy"`    // FK -> profiles.profile_id
	AuditFields
}

// IndividualTarget is a per-person, per-month GP goal.
// At most one row exists per (user, year, month).
type IndividualTarget struct {
	TargetID string          `json:"targetID"` // Primary Key (UUID)
	UserID   string          `json:"userID"`   // FK -> profiles.profile_id
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	TargetGP decimal.Decimal `json:"targetGP"` // GBP
	AuditFields
}
