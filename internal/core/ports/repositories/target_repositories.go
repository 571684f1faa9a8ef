package repositories

import (
	"context"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// TargetReader defines read operations for GP targets
type TargetReader interface {
	// FindCompanyTargetByYear retrieves the company-wide target for a year.
	FindCompanyTargetByYear(ctx context.Context, year int) (*domain.BillingTarget, error)

	// FindIndividualTargets retrieves a user's monthly targets for a year.
	FindIndividualTargets(ctx context.Context, userID string, year int) ([]domain.IndividualTarget, error)

	// FindIndividualTargetsByYear retrieves all users' monthly targets for a year.
	FindIndividualTargetsByYear(ctx context.Context, year int) ([]domain.IndividualTarget, error)
}

// TargetWriter defines write operations for GP targets
type TargetWriter interface {
	// UpsertCompanyTarget creates or replaces the company target for a year.
	UpsertCompanyTarget(ctx context.Context, target domain.BillingTarget) error

	// UpsertIndividualTargets creates or replaces monthly targets keyed on
	// (user, year, month).
	UpsertIndividualTargets(ctx context.Context, targets []domain.IndividualTarget) error
}

// TargetRepositoryFacade combines all target-related repository interfaces
type TargetRepositoryFacade interface {
	TargetReader
	TargetWriter
}
