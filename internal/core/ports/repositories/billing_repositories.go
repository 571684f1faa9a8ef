package repositories

import (
	"context"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// BillingUploadReader defines read operations for billing upload events
type BillingUploadReader interface {
	// FindUploadByID retrieves an upload including its stored rows.
	FindUploadByID(ctx context.Context, uploadID string) (*domain.BillingUpload, error)

	// FindUploadsByYear retrieves upload events for a year, newest first.
	FindUploadsByYear(ctx context.Context, year int) ([]domain.BillingUpload, error)

	// FindOriginalUploadForMonth retrieves the non-correction upload for a
	// month/year, if one exists. Used to link corrections to what they replace.
	FindOriginalUploadForMonth(ctx context.Context, month, year int) (*domain.BillingUpload, error)
}

// BillingUploadWriter defines write operations for billing upload events
type BillingUploadWriter interface {
	// SaveUpload persists a new upload event with its raw rows.
	SaveUpload(ctx context.Context, upload domain.BillingUpload) error
}

// BillingRecordWriter defines write operations for aggregated billing records
type BillingRecordWriter interface {
	// ReplaceRecordsForUpload deletes all records for the upload and inserts
	// the given set in a single transaction. Idempotent replace, not merge.
	ReplaceRecordsForUpload(ctx context.Context, uploadID string, records []domain.BillingRecord) error
}

// BillingRepositoryFacade combines all billing-related repository interfaces
type BillingRepositoryFacade interface {
	BillingUploadReader
	BillingUploadWriter
	BillingRecordWriter
}
