package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/utils/gpsplit"
)

// reportingService implements the ReportingService leaderboard and
// analytics surface. All monetary math happens on decimals in memory over
// the year's deals.
type reportingService struct {
	BaseService
	dealRepo    portsrepo.DealRepositoryFacade
	profileRepo portsrepo.ProfileRepositoryFacade
	teamRepo    portsrepo.TeamRepositoryFacade
	targetRepo  portsrepo.TargetRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	dealRepo portsrepo.DealRepositoryFacade,
	profileRepo portsrepo.ProfileRepositoryFacade,
	teamRepo portsrepo.TeamRepositoryFacade,
	targetRepo portsrepo.TargetRepositoryFacade,
) portssvc.ReportingService {
	return &reportingService{
		dealRepo:    dealRepo,
		profileRepo: profileRepo,
		teamRepo:    teamRepo,
		targetRepo:  targetRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) teamNames(ctx context.Context) (map[string]string, error) {
	teams, err := s.teamRepo.FindTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.TeamID] = t.Name
	}
	return names, nil
}

// GetIndividualLeaderboard ranks active profiles by GP added over approved
// deals in a year. GP added counts non-renewal deals only; renewals are
// tallied separately.
func (s *reportingService) GetIndividualLeaderboard(ctx context.Context, year int) (map[string][]domain.LeaderboardEntry, []domain.LeaderboardEntry, error) {
	deals, err := s.dealRepo.FindApprovedDealsByYear(ctx, year)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load approved deals for %d: %w", year, err)
	}
	profiles, err := s.profileRepo.FindActiveProfiles(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load active profiles: %w", err)
	}
	teamNames, err := s.teamNames(ctx)
	if err != nil {
		return nil, nil, err
	}

	overall := make([]domain.LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		entry := domain.LeaderboardEntry{
			UserID:   p.ProfileID,
			Name:     p.Name,
			RoleType: p.RoleType,
			GPAdded:  decimal.Zero,
		}
		if p.TeamID != nil {
			entry.TeamName = teamNames[*p.TeamID]
		}

		for _, deal := range deals {
			pct := gpsplit.ParticipantPercent(deal, p.ProfileID)
			if pct.IsZero() {
				continue
			}
			if deal.IsRenewal {
				entry.Renewals++
				continue
			}
			entry.NewPlacements++
			entry.GPAdded = entry.GPAdded.Add(gpsplit.GPShare(deal, p.ProfileID))
		}

		overall = append(overall, entry)
	}

	sort.SliceStable(overall, func(i, j int) bool {
		return overall[i].GPAdded.GreaterThan(overall[j].GPAdded)
	})

	byRole := map[string][]domain.LeaderboardEntry{}
	for _, entry := range overall {
		role := string(entry.RoleType)
		byRole[role] = append(byRole[role], entry)
	}

	return byRole, overall, nil
}

// GetTeamLeaderboard ranks teams by the summed split percentages their
// members hold across approved deals.
func (s *reportingService) GetTeamLeaderboard(ctx context.Context, year int) ([]domain.TeamLeaderboardEntry, error) {
	deals, err := s.dealRepo.FindApprovedDealsByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved deals for %d: %w", year, err)
	}
	profiles, err := s.profileRepo.FindActiveProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active profiles: %w", err)
	}
	teams, err := s.teamRepo.FindTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}

	members := map[string]map[string]struct{}{}
	for _, p := range profiles {
		if p.TeamID == nil {
			continue
		}
		if members[*p.TeamID] == nil {
			members[*p.TeamID] = map[string]struct{}{}
		}
		members[*p.TeamID][p.ProfileID] = struct{}{}
	}

	entries := make([]domain.TeamLeaderboardEntry, 0, len(teams))
	for _, team := range teams {
		memberIDs := members[team.TeamID]
		entry := domain.TeamLeaderboardEntry{
			TeamID:      team.TeamID,
			TeamName:    team.Name,
			MemberCount: len(memberIDs),
			GPAdded:     decimal.Zero,
		}

		for _, deal := range deals {
			pct := gpsplit.TeamPercent(deal, memberIDs)
			if pct.IsZero() {
				continue
			}
			if deal.IsRenewal {
				entry.Renewals++
				continue
			}
			entry.NewPlacements++
			entry.GPAdded = entry.GPAdded.Add(gpsplit.TeamGPShare(deal, memberIDs))
		}

		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].GPAdded.GreaterThan(entries[j].GPAdded)
	})
	return entries, nil
}

// GetTargetLeaderboard compares actual and projected GP against individual
// targets over the months the period covers.
func (s *reportingService) GetTargetLeaderboard(ctx context.Context, year int, period domain.TargetPeriod, periodNum int) ([]domain.TargetProgressEntry, []domain.TeamTargetProgressEntry, error) {
	months := period.Months(periodNum)
	inPeriod := map[int]bool{}
	for _, m := range months {
		inPeriod[m] = true
	}

	deals, err := s.dealRepo.FindDealsByYear(ctx, year)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load deals for %d: %w", year, err)
	}
	profiles, err := s.profileRepo.FindActiveProfiles(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load active profiles: %w", err)
	}
	targets, err := s.targetRepo.FindIndividualTargetsByYear(ctx, year)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load individual targets for %d: %w", year, err)
	}
	teamNames, err := s.teamNames(ctx)
	if err != nil {
		return nil, nil, err
	}

	targetByUser := map[string]decimal.Decimal{}
	hasTarget := map[string]bool{}
	for _, t := range targets {
		if !inPeriod[t.Month] {
			continue
		}
		targetByUser[t.UserID] = targetByUser[t.UserID].Add(t.TargetGP)
		hasTarget[t.UserID] = true
	}

	individuals := make([]domain.TargetProgressEntry, 0, len(profiles))
	for _, p := range profiles {
		entry := domain.TargetProgressEntry{
			UserID:      p.ProfileID,
			Name:        p.Name,
			RoleType:    p.RoleType,
			TargetGP:    targetByUser[p.ProfileID],
			ActualGP:    decimal.Zero,
			ProjectedGP: decimal.Zero,
			HasTarget:   hasTarget[p.ProfileID],
		}
		if p.TeamID != nil {
			entry.TeamID = *p.TeamID
			entry.TeamName = teamNames[*p.TeamID]
		}

		for _, deal := range deals {
			if !inPeriod[deal.SubmittedMonth] {
				continue
			}
			pct := gpsplit.ParticipantPercent(deal, p.ProfileID)
			if pct.IsZero() {
				continue
			}

			// The projected pipeline counts every status, preferring the
			// recorded opportunity estimate over the converted value.
			projected := deal.ProjectionValueGBP().Mul(pct).Div(decimal.NewFromInt(100))
			entry.ProjectedGP = entry.ProjectedGP.Add(projected)

			if deal.Status == domain.StatusApproved && !deal.IsRenewal {
				entry.ActualGP = entry.ActualGP.Add(gpsplit.GPShare(deal, p.ProfileID))
			}
		}

		entry.VariancePct = gpsplit.Variance(entry.ActualGP, entry.TargetGP)
		entry.ProjectedVariance = gpsplit.Variance(entry.ProjectedGP, entry.TargetGP)
		individuals = append(individuals, entry)
	}

	sort.SliceStable(individuals, func(i, j int) bool {
		return individuals[i].ActualGP.GreaterThan(individuals[j].ActualGP)
	})

	// Team rollups sum member metrics.
	teamEntries := map[string]*domain.TeamTargetProgressEntry{}
	teamOrder := []string{}
	for _, p := range profiles {
		if p.TeamID == nil {
			continue
		}
		if _, ok := teamEntries[*p.TeamID]; !ok {
			teamEntries[*p.TeamID] = &domain.TeamTargetProgressEntry{
				TeamID:      *p.TeamID,
				TeamName:    teamNames[*p.TeamID],
				TargetGP:    decimal.Zero,
				ActualGP:    decimal.Zero,
				ProjectedGP: decimal.Zero,
			}
			teamOrder = append(teamOrder, *p.TeamID)
		}
	}
	for _, entry := range individuals {
		if entry.TeamID == "" {
			continue
		}
		te := teamEntries[entry.TeamID]
		te.TargetGP = te.TargetGP.Add(entry.TargetGP)
		te.ActualGP = te.ActualGP.Add(entry.ActualGP)
		te.ProjectedGP = te.ProjectedGP.Add(entry.ProjectedGP)
		if entry.HasTarget {
			te.HasTarget = true
		}
	}

	teams := make([]domain.TeamTargetProgressEntry, 0, len(teamOrder))
	for _, teamID := range teamOrder {
		te := teamEntries[teamID]
		te.VariancePct = gpsplit.Variance(te.ActualGP, te.TargetGP)
		teams = append(teams, *te)
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].ActualGP.GreaterThan(teams[j].ActualGP)
	})

	return individuals, teams, nil
}

// dealTally is one user's deal counts used for dashboard ranking.
type dealTally struct {
	userID   string
	total    int
	approved int
	pending  int
	draft    int
	value    decimal.Decimal
}

// GetDashboardStats summarises the caller's deals for the current year and
// ranks them against users holding the same role. Fewer pending deals ranks
// higher; every other metric ranks descending.
func (s *reportingService) GetDashboardStats(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	caller, err := s.profileRepo.FindProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	year := time.Now().Year()
	deals, err := s.dealRepo.FindDealsByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals for %d: %w", year, err)
	}
	profiles, err := s.profileRepo.FindActiveProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active profiles: %w", err)
	}

	peers := []string{}
	for _, p := range profiles {
		if p.RoleType == caller.RoleType {
			peers = append(peers, p.ProfileID)
		}
	}

	tallies := map[string]*dealTally{}
	for _, id := range peers {
		tallies[id] = &dealTally{userID: id, value: decimal.Zero}
	}
	if _, ok := tallies[userID]; !ok {
		tallies[userID] = &dealTally{userID: userID, value: decimal.Zero}
		peers = append(peers, userID)
	}

	for _, deal := range deals {
		t, ok := tallies[deal.SubmittedBy]
		if !ok {
			continue
		}
		t.total++
		switch deal.Status {
		case domain.StatusApproved:
			t.approved++
			t.value = t.value.Add(deal.ValueGBP)
		case domain.StatusSubmitted, domain.StatusUnderReview:
			t.pending++
		case domain.StatusDraft:
			t.draft++
		}
	}

	mine := tallies[userID]
	stats := &domain.DashboardStats{
		TotalDeals:       mine.total,
		ApprovedDeals:    mine.approved,
		PendingDeals:     mine.pending,
		DraftDeals:       mine.draft,
		ApprovedValueGBP: mine.value,
	}

	stats.TotalRank = rankAmong(peers, tallies, userID, func(t *dealTally) decimal.Decimal {
		return decimal.NewFromInt(int64(t.total))
	}, false)
	stats.ApprovedRank = rankAmong(peers, tallies, userID, func(t *dealTally) decimal.Decimal {
		return decimal.NewFromInt(int64(t.approved))
	}, false)
	stats.PendingRank = rankAmong(peers, tallies, userID, func(t *dealTally) decimal.Decimal {
		return decimal.NewFromInt(int64(t.pending))
	}, true)
	stats.ValueRank = rankAmong(peers, tallies, userID, func(t *dealTally) decimal.Decimal {
		return t.value
	}, false)

	return stats, nil
}

// rankAmong returns the 1-based position of userID when peers are ordered by
// metric. ascending=true ranks smaller values first.
func rankAmong(peers []string, tallies map[string]*dealTally, userID string, metric func(*dealTally) decimal.Decimal, ascending bool) domain.MetricRank {
	mine := metric(tallies[userID])
	rank := 1
	for _, id := range peers {
		if id == userID {
			continue
		}
		other := metric(tallies[id])
		if ascending {
			if other.LessThan(mine) {
				rank++
			}
		} else {
			if other.GreaterThan(mine) {
				rank++
			}
		}
	}
	return domain.MetricRank{Rank: rank, Total: len(peers)}
}

// GetTrends returns the monthly GP-added series over approved deals plus a
// naive run-rate: the average of months with activity times twelve.
func (s *reportingService) GetTrends(ctx context.Context, year int) (*domain.TrendsReport, error) {
	deals, err := s.dealRepo.FindApprovedDealsByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved deals for %d: %w", year, err)
	}

	report := &domain.TrendsReport{
		Year:              year,
		Months:            make([]domain.MonthlyTrend, 12),
		TotalGPAdded:      decimal.Zero,
		ProjectedAnnualGP: decimal.Zero,
	}
	for i := range report.Months {
		report.Months[i] = domain.MonthlyTrend{Month: i + 1, Year: year, GPAdded: decimal.Zero}
	}

	for _, deal := range deals {
		if deal.SubmittedMonth < 1 || deal.SubmittedMonth > 12 {
			continue
		}
		m := &report.Months[deal.SubmittedMonth-1]
		m.DealCount++
		if !deal.IsRenewal {
			m.GPAdded = m.GPAdded.Add(deal.ValueGBP)
			report.TotalGPAdded = report.TotalGPAdded.Add(deal.ValueGBP)
		}
	}

	activeMonths := 0
	for _, m := range report.Months {
		if m.DealCount > 0 {
			activeMonths++
		}
	}
	if activeMonths > 0 {
		report.ProjectedAnnualGP = report.TotalGPAdded.
			Div(decimal.NewFromInt(int64(activeMonths))).
			Mul(decimal.NewFromInt(12))
	}

	return report, nil
}
