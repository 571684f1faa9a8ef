package dto

import (
	"time"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// CreateProfileRequest defines the payload for the privileged user-creation
// endpoint. Passwords are set server-side; the caller supplies the role.
type CreateProfileRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	RoleType string  `json:"roleType" binding:"required,oneof=BD DT 360 Manager CEO Admin"`
	TeamID   *string `json:"teamID"`
}

// UpdateProfileRequest defines the data allowed for updating a profile.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	RoleType *string `json:"roleType" binding:"omitempty,oneof=BD DT 360 Manager CEO Admin"`
	TeamID   *string `json:"teamID"`
	IsActive *bool   `json:"isActive"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// ListProfilesParams defines query parameters for listing profiles.
type ListProfilesParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ProfileResponse defines the structure for API responses containing profile details.
type ProfileResponse struct {
	ProfileID string    `json:"profileID"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	RoleType  string    `json:"roleType"`
	TeamID    *string   `json:"teamID,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToProfileResponse converts a domain.Profile to ProfileResponse DTO
func ToProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ProfileID: p.ProfileID,
		Name:      p.Name,
		Email:     p.Email,
		RoleType:  string(p.RoleType),
		TeamID:    p.TeamID,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}

// ListProfilesResponse wraps the list of profiles.
type ListProfilesResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
}

// ToListProfilesResponse converts a slice of domain.Profile to ListProfilesResponse DTO
func ToListProfilesResponse(profiles []domain.Profile) ListProfilesResponse {
	responses := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		responses[i] = ToProfileResponse(&p)
	}
	return ListProfilesResponse{Profiles: responses}
}
