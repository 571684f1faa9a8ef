package services

import (
	"context"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
	"github.com/meridianhq/salesops_backend/internal/dto"
)

// TargetReaderSvc defines read operations for GP targets
type TargetReaderSvc interface {
	// GetCompanyTarget retrieves the company-wide target for a year.
	GetCompanyTarget(ctx context.Context, year int) (*domain.BillingTarget, error)

	// GetIndividualTargets retrieves a user's monthly targets for a year.
	GetIndividualTargets(ctx context.Context, userID string, year int) ([]domain.IndividualTarget, error)
}

// TargetWriterSvc defines write operations for GP targets
type TargetWriterSvc interface {
	// SetCompanyTarget creates or replaces the company target for a year.
	SetCompanyTarget(ctx context.Context, req dto.SetCompanyTargetRequest, setterID string) (*domain.BillingTarget, error)

	// SetIndividualTargets upserts a user's monthly targets for a year.
	SetIndividualTargets(ctx context.Context, userID string, req dto.SetIndividualTargetsRequest, setterID string) ([]domain.IndividualTarget, error)
}

// TargetSvcFacade combines all target-related service interfaces
type TargetSvcFacade interface {
	TargetReaderSvc
	TargetWriterSvc
}
