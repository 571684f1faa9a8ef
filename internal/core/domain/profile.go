package domain

import "time"

// RoleType defines the application role held by a profile.
type RoleType string

const (
	RoleBD      RoleType = "BD"
	RoleDT      RoleType = "DT"
	Role360     RoleType = "360"
	RoleManager RoleType = "Manager"
	RoleCEO     RoleType = "CEO"
	RoleAdmin   RoleType = "Admin"
)

// IsPrivileged reports whether the role may manage users and process billing uploads.
func (r RoleType) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleCEO
}

// AuthProvider identifies how a profile authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// Profile represents a salesperson or manager account in the domain.
type Profile struct {
	ProfileID      string       `json:"profileID"` // Primary Key (UUID)
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"`
	RoleType       RoleType     `json:"roleType"`
	TeamID         *string      `json:"teamID,omitempty"` // Nullable FK -> teams.team_id
	IsActive       bool         `json:"isActive"`
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID *string      `json:"-"` // Subject claim for external providers
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// GoogleUserInfo holds the identity fields extracted from a verified Google ID token.
type GoogleUserInfo struct {
	ProviderUserID string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	EmailVerified  bool   `json:"verified_email"`
}
