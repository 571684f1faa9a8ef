package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
	"github.com/meridianhq/salesops_backend/internal/models"
)

type PgxProfileRepository struct {
	db *pgxpool.Pool
}

func newPgxProfileRepository(db *pgxpool.Pool) portsrepo.ProfileRepositoryFacade {
	return &PgxProfileRepository{db: db}
}

// Ensure PgxProfileRepository implements portsrepo.ProfileRepositoryFacade
var _ portsrepo.ProfileRepositoryFacade = (*PgxProfileRepository)(nil)

// Helper to convert domain.Profile to models.Profile
func toModelProfile(d domain.Profile) models.Profile {
	m := models.Profile{
		ProfileID:    d.ProfileID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		RoleType:     string(d.RoleType),
		IsActive:     d.IsActive,
		AuthProvider: string(d.AuthProvider),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
		DeletedAt: d.DeletedAt,
	}
	if d.TeamID != nil {
		m.TeamID = sql.NullString{String: *d.TeamID, Valid: true}
	}
	if d.ProviderUserID != nil {
		m.ProviderUserID = sql.NullString{String: *d.ProviderUserID, Valid: true}
	}
	return m
}

// Helper to convert models.Profile to domain.Profile
func toDomainProfile(m models.Profile) domain.Profile {
	d := domain.Profile{
		ProfileID:    m.ProfileID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		RoleType:     domain.RoleType(m.RoleType),
		IsActive:     m.IsActive,
		AuthProvider: domain.AuthProvider(m.AuthProvider),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		DeletedAt: m.DeletedAt,
	}
	if m.TeamID.Valid {
		d.TeamID = &m.TeamID.String
	}
	if m.ProviderUserID.Valid {
		d.ProviderUserID = &m.ProviderUserID.String
	}
	return d
}

func toDomainProfileSlice(ms []models.Profile) []domain.Profile {
	ds := make([]domain.Profile, len(ms))
	for i, m := range ms {
		ds[i] = toDomainProfile(m)
	}
	return ds
}

const profileColumns = `profile_id, name, email, password_hash, role_type, team_id, is_active, auth_provider, provider_user_id, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanProfile(row pgx.Row) (models.Profile, error) {
	var m models.Profile
	err := row.Scan(
		&m.ProfileID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.RoleType,
		&m.TeamID,
		&m.IsActive,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	m := toModelProfile(profile)
	query := `
        INSERT INTO profiles (` + profileColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.db.Exec(ctx, query,
		m.ProfileID, m.Name, m.Email, m.PasswordHash, m.RoleType, m.TeamID,
		m.IsActive, m.AuthProvider, m.ProviderUserID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("profile with email %s already exists: %w", m.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (r *PgxProfileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE profile_id = $1 AND deleted_at IS NULL;
	`
	m, err := scanProfile(r.db.QueryRow(ctx, query, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile by ID %s: %w", profileID, err)
	}

	d := toDomainProfile(m)
	return &d, nil
}

func (r *PgxProfileRepository) FindProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE lower(email) = lower($1) AND deleted_at IS NULL;
	`
	m, err := scanProfile(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile by email: %w", err)
	}

	d := toDomainProfile(m)
	return &d, nil
}

func (r *PgxProfileRepository) FindProfileByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE auth_provider = $1 AND provider_user_id = $2 AND deleted_at IS NULL;
	`
	m, err := scanProfile(r.db.QueryRow(ctx, query, string(provider), providerUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile by provider ID: %w", err)
	}

	d := toDomainProfile(m)
	return &d, nil
}

func (r *PgxProfileRepository) FindProfiles(ctx context.Context, limit int, offset int) ([]domain.Profile, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + profileColumns + `
        FROM profiles
        WHERE deleted_at IS NULL
        ORDER BY name ASC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	ms := []models.Profile{}
	for rows.Next() {
		m, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", rows.Err())
	}

	return toDomainProfileSlice(ms), nil
}

func (r *PgxProfileRepository) FindActiveProfiles(ctx context.Context) ([]domain.Profile, error) {
	query := `
        SELECT ` + profileColumns + `
        FROM profiles
        WHERE is_active = TRUE AND deleted_at IS NULL
        ORDER BY name ASC;
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active profiles: %w", err)
	}
	defer rows.Close()

	ms := []models.Profile{}
	for rows.Next() {
		m, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		ms = append(ms, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", rows.Err())
	}

	return toDomainProfileSlice(ms), nil
}

func (r *PgxProfileRepository) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	m := toModelProfile(profile)
	query := `
        UPDATE profiles
        SET name = $1, email = $2, password_hash = $3, role_type = $4, team_id = $5,
            is_active = $6, last_updated_at = $7, last_updated_by = $8
        WHERE profile_id = $9 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Name, m.Email, m.PasswordHash, m.RoleType, m.TeamID,
		m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy, m.ProfileID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update profile query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("profile not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxProfileRepository) MarkProfileDeleted(ctx context.Context, profileID string, deletedAt time.Time, deletedBy string) error {
	query := `
        UPDATE profiles
        SET deleted_at = $1, is_active = FALSE, last_updated_at = $1, last_updated_by = $2
        WHERE profile_id = $3 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, deletedAt, deletedBy, profileID)
	if err != nil {
		return fmt.Errorf("failed to mark profile as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("profile not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
