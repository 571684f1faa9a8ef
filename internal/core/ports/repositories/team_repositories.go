package repositories

import (
	"context"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// TeamReader defines read operations for team data
type TeamReader interface {
	// FindTeamByID retrieves a specific team by its ID.
	FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error)

	// FindTeams retrieves all teams.
	FindTeams(ctx context.Context) ([]domain.Team, error)
}

// TeamWriter defines write operations for team data
type TeamWriter interface {
	// SaveTeam persists a new team.
	SaveTeam(ctx context.Context, team domain.Team) error

	// UpdateTeam updates an existing team's details.
	UpdateTeam(ctx context.Context, team domain.Team) error
}

// TeamRepositoryFacade combines all team-related repository interfaces
type TeamRepositoryFacade interface {
	TeamReader
	TeamWriter
}
