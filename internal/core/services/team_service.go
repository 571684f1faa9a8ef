package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/dto"
)

// teamService implements the TeamSvcFacade.
type teamService struct {
	BaseService
	teamRepo    portsrepo.TeamRepositoryFacade
	profileRepo portsrepo.ProfileRepositoryFacade
}

// NewTeamService creates a new team service.
func NewTeamService(teamRepo portsrepo.TeamRepositoryFacade, profileRepo portsrepo.ProfileRepositoryFacade) portssvc.TeamSvcFacade {
	return &teamService{teamRepo: teamRepo, profileRepo: profileRepo}
}

var _ portssvc.TeamSvcFacade = (*teamService)(nil)

// requirePrivileged checks the requesting user holds a role allowed to
// manage teams.
func (s *teamService) requirePrivileged(ctx context.Context, requestingUserID string) error {
	requester, err := s.profileRepo.FindProfileByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrUnauthorized
		}
		return fmt.Errorf("failed to load requesting profile: %w", err)
	}
	if !requester.RoleType.IsPrivileged() {
		return fmt.Errorf("role %s may not manage teams: %w", requester.RoleType, apperrors.ErrForbidden)
	}
	return nil
}

func (s *teamService) CreateTeam(ctx context.Context, req dto.CreateTeamRequest, creatorID string) (*domain.Team, error) {
	if err := s.requirePrivileged(ctx, creatorID); err != nil {
		return nil, err
	}

	now := time.Now()
	team := domain.Team{
		TeamID:      uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.teamRepo.SaveTeam(ctx, team); err != nil {
		s.LogError(ctx, err, "Failed to save team", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Team created", slog.String("team_id", team.TeamID))
	return &team, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, teamID string, req dto.UpdateTeamRequest, requestingUserID string) (*domain.Team, error) {
	if err := s.requirePrivileged(ctx, requestingUserID); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = req.Description
	}
	if req.IsActive != nil {
		team.IsActive = *req.IsActive
	}
	team.LastUpdatedAt = time.Now()
	team.LastUpdatedBy = requestingUserID

	if err := s.teamRepo.UpdateTeam(ctx, *team); err != nil {
		s.LogError(ctx, err, "Failed to update team", slog.String("team_id", teamID))
		return nil, err
	}

	return team, nil
}

func (s *teamService) DeactivateTeam(ctx context.Context, teamID string, requestingUserID string) error {
	if err := s.requirePrivileged(ctx, requestingUserID); err != nil {
		return err
	}

	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return err
	}

	team.IsActive = false
	team.LastUpdatedAt = time.Now()
	team.LastUpdatedBy = requestingUserID

	if err := s.teamRepo.UpdateTeam(ctx, *team); err != nil {
		s.LogError(ctx, err, "Failed to deactivate team", slog.String("team_id", teamID))
		return err
	}

	s.LogInfo(ctx, "Team deactivated", slog.String("team_id", teamID))
	return nil
}

func (s *teamService) GetTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	return s.teamRepo.FindTeamByID(ctx, teamID)
}

func (s *teamService) ListTeams(ctx context.Context) ([]domain.Team, error) {
	return s.teamRepo.FindTeams(ctx)
}
