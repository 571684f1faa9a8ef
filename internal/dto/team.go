package dto

import (
	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// CreateTeamRequest defines the structure for creating a new team.
type CreateTeamRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// UpdateTeamRequest defines the data allowed for updating a team.
type UpdateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// TeamResponse defines the structure for API responses containing team details.
type TeamResponse struct {
	TeamID      string  `json:"teamID"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// ToTeamResponse converts a domain.Team to TeamResponse DTO
func ToTeamResponse(t *domain.Team) TeamResponse {
	return TeamResponse{
		TeamID:      t.TeamID,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
	}
}

// ListTeamsResponse wraps the list of teams.
type ListTeamsResponse struct {
	Teams []TeamResponse `json:"teams"`
}

// ToListTeamsResponse converts a slice of domain.Team to ListTeamsResponse DTO
func ToListTeamsResponse(teams []domain.Team) ListTeamsResponse {
	responses := make([]TeamResponse, len(teams))
	for i, t := range teams {
		responses[i] = ToTeamResponse(&t)
	}
	return ListTeamsResponse{Teams: responses}
}
