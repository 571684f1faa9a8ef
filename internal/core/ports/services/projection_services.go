package services

import (
	"context"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
	"github.com/meridianhq/salesops_backend/internal/dto"
)

// ProjectionSvcFacade defines operations for yearly projections.
type ProjectionSvcFacade interface {
	// GetProjectionSummary splits approved-deal value by type for a year,
	// applying stored adjustments, alongside billed GP.
	GetProjectionSummary(ctx context.Context, year int) (*domain.ProjectionSummary, error)

	// UpsertAdjustment creates or replaces a deal's projection adjustment.
	UpsertAdjustment(ctx context.Context, dealID string, req dto.UpsertProjectionAdjustmentRequest, requestingUserID string) (*domain.ProjectionAdjustment, error)
}
