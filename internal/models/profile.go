package models

import (
	"database/sql"
	"time"
)

// Profile represents a row in the profiles table.
type Profile struct {
	ProfileID      string         `db:"profile_id"`
	Name           string         `db:"name"`
	Email          string         `db:"email"`
	PasswordHash   string         `db:"password_hash"`
	RoleType       string         `db:"role_type"`
	TeamID         sql.NullString `db:"team_id"`
	IsActive       bool           `db:"is_active"`
	AuthProvider   string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"` // Used for soft delete
}
