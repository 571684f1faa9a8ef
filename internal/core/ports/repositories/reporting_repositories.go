package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// ReportingReader defines aggregate read operations that join across tables.
// Results are scanned straight into domain report rows.
type ReportingReader interface {
	// GetBillingRecordRows retrieves per-person rollups joined with profile
	// and team names for the billings view.
	GetBillingRecordRows(ctx context.Context, month, year int) ([]domain.BillingRecordRow, error)

	// GetBillingGPTotal sums billing-record GP for a year, in GBP.
	GetBillingGPTotal(ctx context.Context, year int) (decimal.Decimal, error)
}

// ReportingRepositoryFacade combines all reporting repository interfaces
type ReportingRepositoryFacade interface {
	ReportingReader
}
