package domain

import (
	"github.com/shopspring/decimal"
)

// DealType defines the commercial category of a deal.
type DealType string

const (
	DealTypeStaff    DealType = "Staff"
	DealTypeContract DealType = "Contract"
	DealTypeService  DealType = "Service"
)

// DealStatus defines where a deal sits in the approval workflow.
type DealStatus string

const (
	StatusDraft            DealStatus = "Draft"
	StatusSubmitted        DealStatus = "Submitted"
	StatusUnderReview      DealStatus = "Under Review"
	StatusApproved         DealStatus = "Approved"
	StatusRejected         DealStatus = "Rejected"
	StatusRevisionRequired DealStatus = "Revision Required"
	StatusVoided           DealStatus = "Voided"
)

// CanTransitionTo reports whether a deal may move from its current status
// to the target status. Transitions only happen via explicit actions.
func (s DealStatus) CanTransitionTo(target DealStatus) bool {
	switch target {
	case StatusSubmitted:
		return s == StatusDraft || s == StatusRevisionRequired
	case StatusUnderReview:
		return s == StatusSubmitted
	case StatusApproved, StatusRejected, StatusRevisionRequired:
		return s == StatusSubmitted || s == StatusUnderReview
	case StatusVoided:
		return s == StatusApproved
	default:
		return false
	}
}

// CurrencyCode is an ISO-4217 currency accepted on deal submission.
type CurrencyCode string

const (
	CurrencyGBP CurrencyCode = "GBP"
	CurrencyUSD CurrencyCode = "USD"
	CurrencyEUR CurrencyCode = "EUR"
	CurrencySAR CurrencyCode = "SAR"
	CurrencyAED CurrencyCode = "AED"
)

// Deal represents a sales transaction moving through the approval workflow.
// Split percentages are trusted input; they are not required to sum to 100.
type Deal struct {
	DealID   string       `json:"dealID"` // Primary Key (UUID)
	DealType DealType     `json:"dealType"`
	Client   string       `json:"client"`
	Location string       `json:"location"`
	Currency CurrencyCode `json:"currency"`

	ValueOriginal decimal.Decimal `json:"valueOriginal"` // In the deal's currency
	ValueGBP      decimal.Decimal `json:"valueGBP"`      // Converted at submission time

	Status         DealStatus `json:"status"`
	SubmittedBy    string     `json:"submittedBy"` // FK -> profiles.profile_id
	SubmittedMonth int        `json:"submittedMonth"`
	SubmittedYear  int        `json:"submittedYear"`

	BDUserID   *string          `json:"bdUserID,omitempty"`
	BDPercent  *decimal.Decimal `json:"bdPercent,omitempty"`
	DTUserID   *string          `json:"dtUserID,omitempty"`
	DTPercent  *decimal.Decimal `json:"dtPercent,omitempty"`
	User360ID  *string          `json:"user360ID,omitempty"`
	Percent360 *decimal.Decimal `json:"percent360,omitempty"`

	IsRenewal    bool `json:"isRenewal"`
	RenewalCount int  `json:"renewalCount"`

	// Staff / Contract placement fields.
	PlacementID  *string          `json:"placementID,omitempty"`
	WorkerName   *string          `json:"workerName,omitempty"`
	GPDaily      *decimal.Decimal `json:"gpDaily,omitempty"`
	DurationDays *int             `json:"durationDays,omitempty"`

	// Service fields.
	ServiceName        *string `json:"serviceName,omitempty"`
	ServiceDescription *string `json:"serviceDescription,omitempty"`

	// Workflow annotations.
	RevisionComment   *string `json:"revisionComment,omitempty"`
	VoidReason        *string `json:"voidReason,omitempty"`
	ReasonForBackdate *string `json:"reasonForBackdate,omitempty"`
	ApprovedBy        *string `json:"approvedBy,omitempty"`
	VoidedBy          *string `json:"voidedBy,omitempty"`

	// Projection inputs.
	EstimatedDays           *int             `json:"estimatedDays,omitempty"`
	EstimatedOpportunityGBP *decimal.Decimal `json:"estimatedOpportunityGBP,omitempty"`

	AuditFields
}

// ProjectionValueGBP returns the value used for projected-GP reporting:
// the estimated opportunity when recorded, the converted deal value otherwise.
func (d *Deal) ProjectionValueGBP() decimal.Decimal {
	if d.EstimatedOpportunityGBP != nil {
		return *d.EstimatedOpportunityGBP
	}
	return d.ValueGBP
}
