package services

import (
	"context"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// ReportingService defines the leaderboard and analytics read surface.
type ReportingService interface {
	// GetIndividualLeaderboard ranks active profiles by GP added over
	// approved deals in a year.
	GetIndividualLeaderboard(ctx context.Context, year int) (map[string][]domain.LeaderboardEntry, []domain.LeaderboardEntry, error)

	// GetTeamLeaderboard ranks teams by summed member GP contributions.
	GetTeamLeaderboard(ctx context.Context, year int) ([]domain.TeamLeaderboardEntry, error)

	// GetTargetLeaderboard compares actual and projected GP against
	// individual targets over the period's months.
	GetTargetLeaderboard(ctx context.Context, year int, period domain.TargetPeriod, periodNum int) ([]domain.TargetProgressEntry, []domain.TeamTargetProgressEntry, error)

	// GetDashboardStats summarises the caller's deals and peer ranks.
	GetDashboardStats(ctx context.Context, userID string) (*domain.DashboardStats, error)

	// GetTrends returns the monthly approved GP series plus a run-rate.
	GetTrends(ctx context.Context, year int) (*domain.TrendsReport, error)
}
