package repositories

import (
	"context"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// ProjectionReader defines read operations for projection adjustments
type ProjectionReader interface {
	// FindAdjustmentsByYear retrieves all adjustments for a projection year.
	FindAdjustmentsByYear(ctx context.Context, year int) ([]domain.ProjectionAdjustment, error)

	// FindAdjustment retrieves the adjustment for a deal in a year, if any.
	FindAdjustment(ctx context.Context, dealID string, year int) (*domain.ProjectionAdjustment, error)
}

// ProjectionWriter defines write operations for projection adjustments
type ProjectionWriter interface {
	// UpsertAdjustment creates or replaces the adjustment keyed on (deal, year).
	UpsertAdjustment(ctx context.Context, adjustment domain.ProjectionAdjustment) error
}

// ProjectionRepositoryFacade combines all projection-related repository interfaces
type ProjectionRepositoryFacade interface {
	ProjectionReader
	ProjectionWriter
}
