package models

import "database/sql"

// Team represents a row in the teams table.
type Team struct {
	TeamID      string         `db:"team_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	IsActive    bool           `db:"is_active"`
	AuditFields
}
