package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
)

type PgxProjectionRepository struct {
	db *pgxpool.Pool
}

func newPgxProjectionRepository(db *pgxpool.Pool) portsrepo.ProjectionRepositoryFacade {
	return &PgxProjectionRepository{db: db}
}

var _ portsrepo.ProjectionRepositoryFacade = (*PgxProjectionRepository)(nil)

func (r *PgxProjectionRepository) UpsertAdjustment(ctx context.Context, adjustment domain.ProjectionAdjustment) error {
	var value decimal.NullDecimal
	if adjustment.ValueThisYearGBP != nil {
		value = decimal.NullDecimal{Decimal: *adjustment.ValueThisYearGBP, Valid: true}
	}
	var mobilisation *time.Time
	if adjustment.MobilisationDate != nil {
		mobilisation = adjustment.MobilisationDate
	}

	query := `
        INSERT INTO projection_adjustments (adjustment_id, deal_id, year, value_this_year_gbp, mobilisation_date,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (deal_id, year) DO UPDATE SET
            value_this_year_gbp = EXCLUDED.value_this_year_gbp,
            mobilisation_date = EXCLUDED.mobilisation_date,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	_, err := r.db.Exec(ctx, query,
		adjustment.AdjustmentID, adjustment.DealID, adjustment.Year, value, mobilisation,
		adjustment.CreatedAt, adjustment.CreatedBy, adjustment.LastUpdatedAt, adjustment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert projection adjustment for deal %s: %w", adjustment.DealID, err)
	}
	return nil
}

func (r *PgxProjectionRepository) FindAdjustment(ctx context.Context, dealID string, year int) (*domain.ProjectionAdjustment, error) {
	query := `
		SELECT adjustment_id, deal_id, year, value_this_year_gbp, mobilisation_date,
			created_at, created_by, last_updated_at, last_updated_by
		FROM projection_adjustments
		WHERE deal_id = $1 AND year = $2;
	`
	a, err := scanProjectionAdjustment(r.db.QueryRow(ctx, query, dealID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find projection adjustment for deal %s: %w", dealID, err)
	}
	return a, nil
}

func (r *PgxProjectionRepository) FindAdjustmentsByYear(ctx context.Context, year int) ([]domain.ProjectionAdjustment, error) {
	query := `
		SELECT adjustment_id, deal_id, year, value_this_year_gbp, mobilisation_date,
			created_at, created_by, last_updated_at, last_updated_by
		FROM projection_adjustments
		WHERE year = $1;
	`
	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query projection adjustments for %d: %w", year, err)
	}
	defer rows.Close()

	adjustments := []domain.ProjectionAdjustment{}
	for rows.Next() {
		a, err := scanProjectionAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan projection adjustment row: %w", err)
		}
		adjustments = append(adjustments, *a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating projection adjustment rows: %w", rows.Err())
	}

	return adjustments, nil
}

func scanProjectionAdjustment(row pgx.Row) (*domain.ProjectionAdjustment, error) {
	var a domain.ProjectionAdjustment
	var value decimal.NullDecimal
	var mobilisation *time.Time
	err := row.Scan(
		&a.AdjustmentID, &a.DealID, &a.Year, &value, &mobilisation,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if value.Valid {
		a.ValueThisYearGBP = &value.Decimal
	}
	a.MobilisationDate = mobilisation
	return &a, nil
}
