package repositories

import (
	"context"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// DealListFilter narrows a deal listing. Zero values mean "no filter".
type DealListFilter struct {
	Statuses    []domain.DealStatus
	Year        int
	Month       int
	SubmittedBy string
	Limit       int
	Offset      int
}

// DealReader defines read operations for deal data
type DealReader interface {
	// FindDealByID retrieves a specific deal by its ID.
	FindDealByID(ctx context.Context, dealID string) (*domain.Deal, error)

	// FindDeals retrieves deals matching the filter, newest first.
	FindDeals(ctx context.Context, filter DealListFilter) ([]domain.Deal, error)

	// FindDealsByYear retrieves all deals submitted in a year, any status.
	FindDealsByYear(ctx context.Context, year int) ([]domain.Deal, error)

	// FindApprovedDealsByYear retrieves approved deals submitted in a year.
	FindApprovedDealsByYear(ctx context.Context, year int) ([]domain.Deal, error)
}

// DealWriter defines write operations for deal data
type DealWriter interface {
	// SaveDeal persists a new deal.
	SaveDeal(ctx context.Context, deal domain.Deal) error

	// UpdateDeal updates an existing deal's details and status.
	UpdateDeal(ctx context.Context, deal domain.Deal) error

	// DeleteDeal removes a deal permanently. Only drafts may be deleted.
	DeleteDeal(ctx context.Context, dealID string) error
}

// DealRepositoryFacade combines all deal-related repository interfaces
type DealRepositoryFacade interface {
	DealReader
	DealWriter
}
