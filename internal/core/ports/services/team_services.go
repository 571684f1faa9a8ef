package services

import (
	"context"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
	"github.com/meridianhq/salesops_backend/internal/dto"
)

// TeamReaderSvc defines read operations for team data
type TeamReaderSvc interface {
	// GetTeamByID retrieves a team by ID.
	GetTeamByID(ctx context.Context, teamID string) (*domain.Team, error)

	// ListTeams retrieves all teams.
	ListTeams(ctx context.Context) ([]domain.Team, error)
}

// TeamWriterSvc defines write operations for team data
type TeamWriterSvc interface {
	// CreateTeam creates a new team.
	CreateTeam(ctx context.Context, req dto.CreateTeamRequest, creatorID string) (*domain.Team, error)

	// UpdateTeam updates an existing team.
	UpdateTeam(ctx context.Context, teamID string, req dto.UpdateTeamRequest, requestingUserID string) (*domain.Team, error)

	// DeactivateTeam marks a team inactive. Teams are never hard-deleted.
	DeactivateTeam(ctx context.Context, teamID string, requestingUserID string) error
}

// TeamSvcFacade combines all team-related service interfaces
type TeamSvcFacade interface {
	TeamReaderSvc
	TeamWriterSvc
}
