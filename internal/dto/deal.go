package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// CreateDealRequest defines the structure for submitting a new deal.
// Split percentages are accepted as given; they are not validated to sum to 100.
type CreateDealRequest struct {
	DealType string `json:"dealType" binding:"required,oneof=Staff Contract Service"`
	Client   string `json:"client" binding:"required"`
	Location string `json:"location"`
	Currency string `json:"currency" binding:"required,oneof=GBP USD EUR SAR AED"`

	Value decimal.Decimal `json:"value" binding:"required"`

	SubmittedMonth int `json:"submittedMonth" binding:"required,min=1,max=12"`
	SubmittedYear  int `json:"submittedYear" binding:"required,min=2000"`

	BDUserID   *string          `json:"bdUserID"`
	BDPercent  *decimal.Decimal `json:"bdPercent"`
	DTUserID   *string          `json:"dtUserID"`
	DTPercent  *decimal.Decimal `json:"dtPercent"`
	User360ID  *string          `json:"user360ID"`
	Percent360 *decimal.Decimal `json:"percent360"`

	IsRenewal    bool `json:"isRenewal"`
	RenewalCount int  `json:"renewalCount"`

	PlacementID  *string          `json:"placementID"`
	WorkerName   *string          `json:"workerName"`
	GPDaily      *decimal.Decimal `json:"gpDaily"`
	DurationDays *int             `json:"durationDays"`

	ServiceName        *string `json:"serviceName"`
	ServiceDescription *string `json:"serviceDescription"`

	ReasonForBackdate *string `json:"reasonForBackdate"`

	EstimatedDays           *int             `json:"estimatedDays"`
	EstimatedOpportunityGBP *decimal.Decimal `json:"estimatedOpportunityGBP"`

	SaveAsDraft bool `json:"saveAsDraft"`
}

// UpdateDealRequest defines the data allowed when editing a draft or
// revision-required deal. Pointers distinguish omitted from zero values.
type UpdateDealRequest struct {
	Client   *string          `json:"client"`
	Location *string          `json:"location"`
	Currency *string          `json:"currency" binding:"omitempty,oneof=GBP USD EUR SAR AED"`
	Value    *decimal.Decimal `json:"value"`

	SubmittedMonth *int `json:"submittedMonth" binding:"omitempty,min=1,max=12"`
	SubmittedYear  *int `json:"submittedYear" binding:"omitempty,min=2000"`

	BDUserID   *string          `json:"bdUserID"`
	BDPercent  *decimal.Decimal `json:"bdPercent"`
	DTUserID   *string          `json:"dtUserID"`
	DTPercent  *decimal.Decimal `json:"dtPercent"`
	User360ID  *string          `json:"user360ID"`
	Percent360 *decimal.Decimal `json:"percent360"`

	IsRenewal    *bool `json:"isRenewal"`
	RenewalCount *int  `json:"renewalCount"`

	PlacementID  *string          `json:"placementID"`
	WorkerName   *string          `json:"workerName"`
	GPDaily      *decimal.Decimal `json:"gpDaily"`
	DurationDays *int             `json:"durationDays"`

	ServiceName        *string `json:"serviceName"`
	ServiceDescription *string `json:"serviceDescription"`

	EstimatedDays           *int             `json:"estimatedDays"`
	EstimatedOpportunityGBP *decimal.Decimal `json:"estimatedOpportunityGBP"`
}

// ListDealsParams defines query parameters for listing deals. Status accepts
// a comma-separated list, e.g. "Submitted,Under Review".
type ListDealsParams struct {
	Status string `form:"status"`
	Year   int    `form:"year"`
	Month  int    `form:"month" binding:"omitempty,min=1,max=12"`
	UserID string `form:"userID"`
	Limit  int    `form:"limit,default=50"`
	Offset int    `form:"offset,default=0"`
}

var validDealStatuses = map[domain.DealStatus]struct{}{
	domain.StatusDraft:            {},
	domain.StatusSubmitted:        {},
	domain.StatusUnderReview:      {},
	domain.StatusApproved:         {},
	domain.StatusRejected:         {},
	domain.StatusRevisionRequired: {},
	domain.StatusVoided:           {},
}

// StatusList splits the comma-separated status filter into deal statuses.
// An unknown status is an error so typos fail loudly instead of silently
// matching nothing.
func (p ListDealsParams) StatusList() ([]domain.DealStatus, error) {
	if strings.TrimSpace(p.Status) == "" {
		return nil, nil
	}
	parts := strings.Split(p.Status, ",")
	statuses := make([]domain.DealStatus, 0, len(parts))
	for _, part := range parts {
		status := domain.DealStatus(strings.TrimSpace(part))
		if _, ok := validDealStatuses[status]; !ok {
			return nil, fmt.Errorf("unknown deal status %q", part)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// RejectDealRequest carries the reviewer's comment for a rejection.
type RejectDealRequest struct {
	Comment string `json:"comment"`
}

// RequestRevisionRequest carries the reviewer's comment when sending a deal
// back for revision. The comment is mandatory.
type RequestRevisionRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// VoidDealRequest carries the reason for voiding an approved deal.
type VoidDealRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// DealResponse defines the structure for API responses containing deal details.
type DealResponse struct {
	DealID   string `json:"dealID"`
	DealType string `json:"dealType"`
	Client   string `json:"client"`
	Location string `json:"location,omitempty"`
	Currency string `json:"currency"`

	ValueOriginal decimal.Decimal `json:"valueOriginal"`
	ValueGBP      decimal.Decimal `json:"valueGBP"`

	Status         string `json:"status"`
	SubmittedBy    string `json:"submittedBy"`
	SubmittedMonth int    `json:"submittedMonth"`
	SubmittedYear  int    `json:"submittedYear"`

	BDUserID   *string          `json:"bdUserID,omitempty"`
	BDPercent  *decimal.Decimal `json:"bdPercent,omitempty"`
	DTUserID   *string          `json:"dtUserID,omitempty"`
	DTPercent  *decimal.Decimal `json:"dtPercent,omitempty"`
	User360ID  *string          `json:"user360ID,omitempty"`
	Percent360 *decimal.Decimal `json:"percent360,omitempty"`

	IsRenewal    bool `json:"isRenewal"`
	RenewalCount int  `json:"renewalCount"`

	PlacementID  *string          `json:"placementID,omitempty"`
	WorkerName   *string          `json:"workerName,omitempty"`
	GPDaily      *decimal.Decimal `json:"gpDaily,omitempty"`
	DurationDays *int             `json:"durationDays,omitempty"`

	ServiceName        *string `json:"serviceName,omitempty"`
	ServiceDescription *string `json:"serviceDescription,omitempty"`

	RevisionComment   *string `json:"revisionComment,omitempty"`
	VoidReason        *string `json:"voidReason,omitempty"`
	ReasonForBackdate *string `json:"reasonForBackdate,omitempty"`
	ApprovedBy        *string `json:"approvedBy,omitempty"`
	VoidedBy          *string `json:"voidedBy,omitempty"`

	EstimatedDays           *int             `json:"estimatedDays,omitempty"`
	EstimatedOpportunityGBP *decimal.Decimal `json:"estimatedOpportunityGBP,omitempty"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToDealResponse converts a domain.Deal to DealResponse DTO
func ToDealResponse(d *domain.Deal) DealResponse {
	return DealResponse{
		DealID:                  d.DealID,
		DealType:                string(d.DealType),
		Client:                  d.Client,
		Location:                d.Location,
		Currency:                string(d.Currency),
		ValueOriginal:           d.ValueOriginal,
		ValueGBP:                d.ValueGBP,
		Status:                  string(d.Status),
		SubmittedBy:             d.SubmittedBy,
		SubmittedMonth:          d.SubmittedMonth,
		SubmittedYear:           d.SubmittedYear,
		BDUserID:                d.BDUserID,
		BDPercent:               d.BDPercent,
		DTUserID:                d.DTUserID,
		DTPercent:               d.DTPercent,
		User360ID:               d.User360ID,
		Percent360:              d.Percent360,
		IsRenewal:               d.IsRenewal,
		RenewalCount:            d.RenewalCount,
		PlacementID:             d.PlacementID,
		WorkerName:              d.WorkerName,
		GPDaily:                 d.GPDaily,
		DurationDays:            d.DurationDays,
		ServiceName:             d.ServiceName,
		ServiceDescription:      d.ServiceDescription,
		RevisionComment:         d.RevisionComment,
		VoidReason:              d.VoidReason,
		ReasonForBackdate:       d.ReasonForBackdate,
		ApprovedBy:              d.ApprovedBy,
		VoidedBy:                d.VoidedBy,
		EstimatedDays:           d.EstimatedDays,
		EstimatedOpportunityGBP: d.EstimatedOpportunityGBP,
		CreatedAt:               d.CreatedAt,
		LastUpdatedAt:           d.LastUpdatedAt,
	}
}

// ListDealsResponse wraps the list of deals.
type ListDealsResponse struct {
	Deals []DealResponse `json:"deals"`
}

// ToListDealsResponse converts a slice of domain.Deal to ListDealsResponse DTO
func ToListDealsResponse(deals []domain.Deal) ListDealsResponse {
	responses := make([]DealResponse, len(deals))
	for i, d := range deals {
		responses[i] = ToDealResponse(&d)
	}
	return ListDealsResponse{Deals: responses}
}
