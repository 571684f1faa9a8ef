package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
)

// PgxTargetRepository persists company and individual GP targets.
// Targets are simple enough to scan straight into domain types.
type PgxTargetRepository struct {
	BaseRepository
}

func newPgxTargetRepository(db *pgxpool.Pool) portsrepo.TargetRepositoryFacade {
	return &PgxTargetRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.TargetRepositoryFacade = (*PgxTargetRepository)(nil)

func (r *PgxTargetRepository) UpsertCompanyTarget(ctx context.Context, target domain.BillingTarget) error {
	query := `
        INSERT INTO billing_targets (target_id, year, target_gp, set_by, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (year) DO UPDATE SET
            target_gp = EXCLUDED.target_gp,
            set_by = EXCLUDED.set_by,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	_, err := r.Pool.Exec(ctx, query,
		target.TargetID, target.Year, target.TargetGP, target.SetBy,
		target.CreatedAt, target.CreatedBy, target.LastUpdatedAt, target.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert company target for %d: %w", target.Year, err)
	}
	return nil
}

func (r *PgxTargetRepository) FindCompanyTargetByYear(ctx context.Context, year int) (*domain.BillingTarget, error) {
	query := `
		SELECT target_id, year, target_gp, set_by, created_at, created_by, last_updated_at, last_updated_by
		FROM billing_targets
		WHERE year = $1;
	`
	var t domain.BillingTarget
	err := r.Pool.QueryRow(ctx, query, year).Scan(
		&t.TargetID, &t.Year, &t.TargetGP, &t.SetBy,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company target for %d: %w", year, err)
	}
	return &t, nil
}

func (r *PgxTargetRepository) UpsertIndividualTargets(ctx context.Context, targets []domain.IndividualTarget) error {
	if len(targets) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
        INSERT INTO individual_targets (target_id, user_id, year, month, target_gp, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (user_id, year, month) DO UPDATE SET
            target_gp = EXCLUDED.target_gp,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	for _, t := range targets {
		batch.Queue(query,
			t.TargetID, t.UserID, t.Year, t.Month, t.TargetGP,
			t.CreatedAt, t.CreatedBy, t.LastUpdatedAt, t.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range targets {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to upsert individual target: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close individual target batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTargetRepository) FindIndividualTargets(ctx context.Context, userID string, year int) ([]domain.IndividualTarget, error) {
	query := `
		SELECT target_id, user_id, year, month, target_gp, created_at, created_by, last_updated_at, last_updated_by
		FROM individual_targets
		WHERE user_id = $1 AND year = $2
		ORDER BY month ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query individual targets: %w", err)
	}
	return collectIndividualTargets(rows)
}

func (r *PgxTargetRepository) FindIndividualTargetsByYear(ctx context.Context, year int) ([]domain.IndividualTarget, error) {
	query := `
		SELECT target_id, user_id, year, month, target_gp, created_at, created_by, last_updated_at, last_updated_by
		FROM individual_targets
		WHERE year = $1
		ORDER BY user_id, month ASC;
	`
	rows, err := r.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query individual targets for year %d: %w", year, err)
	}
	return collectIndividualTargets(rows)
}

func collectIndividualTargets(rows pgx.Rows) ([]domain.IndividualTarget, error) {
	defer rows.Close()
	targets := []domain.IndividualTarget{}
	for rows.Next() {
		var t domain.IndividualTarget
		err := rows.Scan(
			&t.TargetID, &t.UserID, &t.Year, &t.Month, &t.TargetGP,
			&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan individual target row: %w", err)
		}
		targets = append(targets, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating individual target rows: %w", rows.Err())
	}
	return targets, nil
}
