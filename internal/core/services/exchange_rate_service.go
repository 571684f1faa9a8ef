package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/platform/fxrates"
)

// systemActorID stamps audit fields on rows written by scheduled jobs.
const systemActorID = "system"

var decimalOne = decimal.NewFromInt(1)

// snapshotCurrencies are the non-GBP currencies whose GBP rate is persisted
// by each snapshot run.
var snapshotCurrencies = []domain.CurrencyCode{
	domain.CurrencyUSD,
	domain.CurrencyEUR,
	domain.CurrencySAR,
	domain.CurrencyAED,
}

type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepositoryFacade
	fxClient *fxrates.Client
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, fxClient *fxrates.Client) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo, fxClient: fxClient}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func (s *exchangeRateService) GetRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRate(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "failed to find exchange rate", "from", from, "to", to)
		return nil, err
	}
	return rate, nil
}

// SnapshotRates fetches the current GBP rate for each supported currency and
// stores one row per pair. A failure on one pair does not abort the rest.
func (s *exchangeRateService) SnapshotRates(ctx context.Context) error {
	rates, err := s.fxClient.GetLatestRates(ctx, "GBP")
	if err != nil {
		s.LogError(ctx, err, "failed to fetch latest rates")
		return fmt.Errorf("failed to fetch latest rates: %w", err)
	}

	now := time.Now()
	// Day granularity keeps re-runs on the same day idempotent via the
	// (from, to, date_effective) upsert key.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var firstErr error
	saved := 0
	for _, currency := range snapshotCurrencies {
		gbpPerUnit, ok := rates[string(currency)]
		if !ok || gbpPerUnit.IsZero() {
			s.LogWarn(ctx, "rate snapshot missing currency", "currency", currency)
			continue
		}

		// The provider quotes units of currency per GBP; stored rates are
		// currency -> GBP, so invert.
		rate := domain.ExchangeRate{
			ExchangeRateID:   uuid.NewString(),
			FromCurrencyCode: string(currency),
			ToCurrencyCode:   string(domain.CurrencyGBP),
			Rate:             decimalOne.Div(gbpPerUnit),
			DateEffective:    today,
		}
		rate.CreatedAt = now
		rate.CreatedBy = systemActorID
		rate.LastUpdatedAt = now
		rate.LastUpdatedBy = systemActorID

		if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
			s.LogError(ctx, err, "failed to save exchange rate", "currency", currency)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		saved++
	}

	s.LogInfo(ctx, "exchange rate snapshot complete", "saved", saved, "requested", len(snapshotCurrencies))
	return firstErr
}
