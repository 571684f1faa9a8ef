package domain

// Team groups profiles for team leaderboards and reporting.
type Team struct {
	TeamID      string  `json:"teamID"` // Primary Key (UUID)
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
	AuditFields
}
