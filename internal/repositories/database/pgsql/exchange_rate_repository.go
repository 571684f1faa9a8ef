package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
	"github.com/meridianhq/salesops_backend/internal/models"
)

// PgxExchangeRateRepository stores daily rate snapshots taken by the refresh job.
type PgxExchangeRateRepository struct {
	db *pgxpool.Pool
}

func newPgxExchangeRateRepository(db *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{db: db}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func toDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:   m.ExchangeRateID,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		Rate:             m.Rate,
		DateEffective:    m.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveExchangeRate inserts a rate snapshot, replacing any snapshot already
// stored for the same pair and effective date.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	from := strings.ToUpper(rate.FromCurrencyCode)
	to := strings.ToUpper(rate.ToCurrencyCode)
	if from == to {
		return fmt.Errorf("from and to currencies cannot be the same: %w", apperrors.ErrValidation)
	}

	query := `
		INSERT INTO exchange_rates (
			exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (from_currency_code, to_currency_code, date_effective) DO UPDATE SET
			rate = EXCLUDED.rate,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		rate.ExchangeRateID, from, to, rate.Rate, rate.DateEffective,
		rate.CreatedAt, rate.CreatedBy, rate.LastUpdatedAt, rate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save exchange rate %s->%s: %w", from, to, err)
	}
	return nil
}

// FindExchangeRate retrieves the most recent stored rate between two currencies.
// Same-currency lookups return a 1:1 rate; a stored inverse pair is used when
// no direct rate exists.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(fromCurrencyCode)
	to := strings.ToUpper(toCurrencyCode)

	if from == to {
		return &domain.ExchangeRate{
			FromCurrencyCode: from,
			ToCurrencyCode:   to,
			Rate:             decimal.NewFromInt(1),
			DateEffective:    time.Now().Truncate(24 * time.Hour),
		}, nil
	}

	direct, err := r.findRate(ctx, from, to)
	if err == nil {
		return direct, nil
	}

	if errors.Is(err, apperrors.ErrNotFound) {
		inverse, inverseErr := r.findRate(ctx, to, from)
		if inverseErr == nil && !inverse.Rate.IsZero() {
			inverse.FromCurrencyCode = from
			inverse.ToCurrencyCode = to
			inverse.Rate = decimal.NewFromInt(1).Div(inverse.Rate)
			return inverse, nil
		}
	}

	return nil, fmt.Errorf("no exchange rate stored for %s->%s: %w", from, to, apperrors.ErrNotFound)
}

func (r *PgxExchangeRateRepository) findRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	query := `
		SELECT
			exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective,
			created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY date_effective DESC
		LIMIT 1;
	`
	var m models.ExchangeRate
	err := r.db.QueryRow(ctx, query, from, to).Scan(
		&m.ExchangeRateID, &m.FromCurrencyCode, &m.ToCurrencyCode,
		&m.Rate, &m.DateEffective, &m.CreatedAt,
		&m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate: %w", err)
	}

	d := toDomainExchangeRate(m)
	return &d, nil
}
