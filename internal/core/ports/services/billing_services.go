package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// RateProvider converts an amount from a currency into GBP.
// Implementations may call an external rate API per lookup.
type RateProvider interface {
	// ConvertToGBP converts an amount from the given currency into GBP.
	// GBP input is returned unchanged without a rate lookup.
	ConvertToGBP(ctx context.Context, amount decimal.Decimal, fromCurrency string) (decimal.Decimal, error)
}

// BillingUploadSvc defines operations for ingesting billing files
type BillingUploadSvc interface {
	// IngestUpload parses and stores a billing file's rows for a month/year.
	// Correction uploads are linked to the original upload they replace.
	IngestUpload(ctx context.Context, fileName string, rows []map[string]string, month, year int, isCorrection bool, correctionReason string, uploaderID string) (*domain.BillingUpload, error)

	// ListUploads retrieves upload events for a year.
	ListUploads(ctx context.Context, year int) ([]domain.BillingUpload, error)
}

// BillingProcessorSvc defines the reconciliation routine
type BillingProcessorSvc interface {
	// ProcessUpload aggregates an upload's rows into per-person billing
	// records for the month/year, replacing any prior records for the upload.
	// Caller must hold a privileged role.
	ProcessUpload(ctx context.Context, uploadID string, month, year int, requestingUserID string) (*domain.BillingProcessResult, error)
}

// BillingRecordReaderSvc defines read operations over aggregated records
type BillingRecordReaderSvc interface {
	// ListRecords retrieves per-person rollups joined with names.
	ListRecords(ctx context.Context, month, year int) ([]domain.BillingRecordRow, error)
}

// BillingSvcFacade combines all billing-related service interfaces
type BillingSvcFacade interface {
	BillingUploadSvc
	BillingProcessorSvc
	BillingRecordReaderSvc
}
