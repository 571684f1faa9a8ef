package services

import (
	"context"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
	"github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
	"github.com/meridianhq/salesops_backend/internal/dto"
)

// DealReaderSvc defines read operations for deal data
type DealReaderSvc interface {
	// GetDealByID retrieves a deal by ID.
	GetDealByID(ctx context.Context, dealID string) (*domain.Deal, error)

	// ListDeals retrieves deals matching the filter.
	ListDeals(ctx context.Context, filter repositories.DealListFilter) ([]domain.Deal, error)
}

// DealWriterSvc defines write operations for deal data
type DealWriterSvc interface {
	// CreateDeal submits a new deal, converting its value to GBP.
	// SaveAsDraft keeps the deal in Draft instead of Submitted.
	CreateDeal(ctx context.Context, req dto.CreateDealRequest, submitterID string) (*domain.Deal, error)

	// UpdateDeal edits a Draft or Revision Required deal owned by the caller.
	UpdateDeal(ctx context.Context, dealID string, req dto.UpdateDealRequest, requestingUserID string) (*domain.Deal, error)

	// DeleteDraft permanently removes a Draft deal owned by the caller.
	DeleteDraft(ctx context.Context, dealID string, requestingUserID string) error
}

// DealWorkflowSvc defines the explicit status transition actions.
// There are no automatic transitions.
type DealWorkflowSvc interface {
	// SubmitDeal moves a Draft or Revision Required deal to Submitted.
	SubmitDeal(ctx context.Context, dealID string, requestingUserID string) (*domain.Deal, error)

	// StartReview moves a Submitted deal to Under Review.
	StartReview(ctx context.Context, dealID string, reviewerID string) (*domain.Deal, error)

	// ApproveDeal moves a Submitted or Under Review deal to Approved.
	ApproveDeal(ctx context.Context, dealID string, approverID string) (*domain.Deal, error)

	// RejectDeal moves a Submitted or Under Review deal to Rejected.
	RejectDeal(ctx context.Context, dealID string, reviewerID string, comment string) (*domain.Deal, error)

	// RequestRevision sends a deal back to the submitter with a mandatory comment.
	RequestRevision(ctx context.Context, dealID string, reviewerID string, comment string) (*domain.Deal, error)

	// VoidDeal moves an Approved deal to Voided with a reason.
	VoidDeal(ctx context.Context, dealID string, voidedBy string, reason string) (*domain.Deal, error)
}

// DealSvcFacade combines all deal-related service interfaces
type DealSvcFacade interface {
	DealReaderSvc
	DealWriterSvc
	DealWorkflowSvc
}
