package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
	"github.com/meridianhq/salesops_backend/internal/models"
)

type PgxTeamRepository struct {
	db *pgxpool.Pool
}

func newPgxTeamRepository(db *pgxpool.Pool) portsrepo.TeamRepositoryFacade {
	return &PgxTeamRepository{db: db}
}

var _ portsrepo.TeamRepositoryFacade = (*PgxTeamRepository)(nil)

func toModelTeam(d domain.Team) models.Team {
	m := models.Team{
		TeamID:   d.TeamID,
		Name:     d.Name,
		IsActive: d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.Description != nil {
		m.Description = sql.NullString{String: *d.Description, Valid: true}
	}
	return m
}

func toDomainTeam(m models.Team) domain.Team {
	d := domain.Team{
		TeamID:   m.TeamID,
		Name:     m.Name,
		IsActive: m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.Description.Valid {
		d.Description = &m.Description.String
	}
	return d
}

func (r *PgxTeamRepository) SaveTeam(ctx context.Context, team domain.Team) error {
	m := toModelTeam(team)
	query := `
        INSERT INTO teams (team_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		m.TeamID, m.Name, m.Description, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("team named %q already exists: %w", m.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save team: %w", err)
	}
	return nil
}

func (r *PgxTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	query := `
		SELECT team_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM teams
		WHERE team_id = $1;
	`
	var m models.Team
	err := r.db.QueryRow(ctx, query, teamID).Scan(
		&m.TeamID, &m.Name, &m.Description, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find team by ID %s: %w", teamID, err)
	}

	d := toDomainTeam(m)
	return &d, nil
}

func (r *PgxTeamRepository) FindTeams(ctx context.Context) ([]domain.Team, error) {
	query := `
        SELECT team_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by
        FROM teams
        ORDER BY name ASC;
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := []domain.Team{}
	for rows.Next() {
		var m models.Team
		err := rows.Scan(
			&m.TeamID, &m.Name, &m.Description, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, toDomainTeam(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", rows.Err())
	}

	return teams, nil
}

func (r *PgxTeamRepository) UpdateTeam(ctx context.Context, team domain.Team) error {
	m := toModelTeam(team)
	query := `
        UPDATE teams
        SET name = $1, description = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
        WHERE team_id = $6;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Name, m.Description, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy, m.TeamID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update team query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("team not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
