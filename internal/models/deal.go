package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Deal represents a row in the deals table. Nullable columns use sql.Null*
// or decimal.NullDecimal so partial participant splits round-trip cleanly.
type Deal struct {
	DealID   string `db:"deal_id"`
	DealType string `db:"deal_type"`
	Client   string `db:"client"`
	Location string `db:"location"`
	Currency string `db:"currency"`

	ValueOriginal decimal.Decimal `db:"value_original"`
	ValueGBP      decimal.Decimal `db:"value_converted_gbp"`

	Status         string `db:"status"`
	SubmittedBy    string `db:"submitted_by"`
	SubmittedMonth int    `db:"submitted_month"`
	SubmittedYear  int    `db:"submitted_year"`

	BDUserID   sql.NullString      `db:"bd_user_id"`
	BDPercent  decimal.NullDecimal `db:"bd_percent"`
	DTUserID   sql.NullString      `db:"dt_user_id"`
	DTPercent  decimal.NullDecimal `db:"dt_percent"`
	User360ID  sql.NullString      `db:"user_360_id"`
	Percent360 decimal.NullDecimal `db:"percent_360"`

	IsRenewal    bool `db:"is_renewal"`
	RenewalCount int  `db:"renewal_count"`

	PlacementID  sql.NullString      `db:"placement_id"`
	WorkerName   sql.NullString      `db:"worker_name"`
	GPDaily      decimal.NullDecimal `db:"gp_daily"`
	DurationDays sql.NullInt32       `db:"duration_days"`

	ServiceName        sql.NullString `db:"service_name"`
	ServiceDescription sql.NullString `db:"service_description"`

	RevisionComment   sql.NullString `db:"revision_comment"`
	VoidReason        sql.NullString `db:"void_reason"`
	ReasonForBackdate sql.NullString `db:"reason_for_backdate"`
	ApprovedBy        sql.NullString `db:"approved_by"`
	VoidedBy          sql.NullString `db:"voided_by"`

	EstimatedDays           sql.NullInt32       `db:"estimated_days"`
	EstimatedOpportunityGBP decimal.NullDecimal `db:"total_estimated_opportunity_gbp"`

	AuditFields
}
