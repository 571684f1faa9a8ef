package dto

import (
	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// LeaderboardParams defines query parameters for the leaderboard views.
type LeaderboardParams struct {
	Year int `form:"year"`
}

// IndividualLeaderboardResponse groups individual standings by role.
type IndividualLeaderboardResponse struct {
	Year    int                                  `json:"year"`
	ByRole  map[string][]domain.LeaderboardEntry `json:"byRole"`
	Overall []domain.LeaderboardEntry            `json:"overall"`
}

// TeamLeaderboardResponse wraps team standings for a year.
type TeamLeaderboardResponse struct {
	Year  int                           `json:"year"`
	Teams []domain.TeamLeaderboardEntry `json:"teams"`
}

// TargetLeaderboardParams defines query parameters for the targets leaderboard.
type TargetLeaderboardParams struct {
	Year      int    `form:"year"`
	Period    string `form:"period" binding:"omitempty,oneof=monthly quarterly half-yearly yearly"`
	PeriodNum int    `form:"period_num"`
}

// TargetLeaderboardResponse wraps individual and team target progress.
type TargetLeaderboardResponse struct {
	Year        int                              `json:"year"`
	Period      string                           `json:"period"`
	PeriodNum   int                              `json:"periodNum"`
	Individuals []domain.TargetProgressEntry     `json:"individuals"`
	Teams       []domain.TeamTargetProgressEntry `json:"teams"`
}

// DashboardResponse wraps the caller's dashboard statistics.
type DashboardResponse struct {
	Stats domain.DashboardStats `json:"stats"`
}

// TrendsResponse wraps the monthly trend series for a year.
type TrendsResponse struct {
	Report domain.TrendsReport `json:"report"`
}

// ProjectionSummaryResponse wraps the yearly projection split by deal type.
type ProjectionSummaryResponse struct {
	Summary domain.ProjectionSummary `json:"summary"`
}
