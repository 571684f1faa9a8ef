package services

import (
	"context"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// ExchangeRateSvcFacade defines operations over stored rate snapshots.
type ExchangeRateSvcFacade interface {
	// GetRate retrieves the latest stored rate between two currencies.
	GetRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error)

	// SnapshotRates fetches current rates for the supported currencies and
	// persists them. Run daily by the rate refresh job.
	SnapshotRates(ctx context.Context) error
}
