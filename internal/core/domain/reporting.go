package domain

import (
	"github.com/shopspring/decimal"
)

// TargetPeriod selects the month window a targets leaderboard covers.
type TargetPeriod string

const (
	PeriodMonthly    TargetPeriod = "monthly"
	PeriodQuarterly  TargetPeriod = "quarterly"
	PeriodHalfYearly TargetPeriod = "half-yearly"
	PeriodYearly     TargetPeriod = "yearly"
)

// Months returns the calendar months covered by the period instance
// (periodNum is 1-based: month number, quarter number, or half number).
// An unknown period yields the full year.
func (p TargetPeriod) Months(periodNum int) []int {
	switch p {
	case PeriodMonthly:
		if periodNum >= 1 && periodNum <= 12 {
			return []int{periodNum}
		}
	case PeriodQuarterly:
		if periodNum >= 1 && periodNum <= 4 {
			start := (periodNum-1)*3 + 1
			return []int{start, start + 1, start + 2}
		}
	case PeriodHalfYearly:
		if periodNum == 1 {
			return []int{1, 2, 3, 4, 5, 6}
		}
		if periodNum == 2 {
			return []int{7, 8, 9, 10, 11, 12}
		}
	}
	return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
}

// LeaderboardEntry is one individual's standing for a year.
type LeaderboardEntry struct {
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	RoleType      RoleType        `json:"roleType"`
	TeamName      string          `json:"teamName,omitempty"`
	GPAdded       decimal.Decimal `json:"gpAdded"`
	NewPlacements int             `json:"newPlacements"`
	Renewals      int             `json:"renewals"`
}

// TeamLeaderboardEntry is one team's standing for a year.
type TeamLeaderboardEntry struct {
	TeamID        string          `json:"teamID"`
	TeamName      string          `json:"teamName"`
	MemberCount   int             `json:"memberCount"`
	GPAdded       decimal.Decimal `json:"gpAdded"`
	NewPlacements int             `json:"newPlacements"`
	Renewals      int             `json:"renewals"`
}

// TargetProgressEntry compares one individual's GP against their targets
// for a period.
type TargetProgressEntry struct {
	UserID            string          `json:"userID"`
	Name              string          `json:"name"`
	RoleType          RoleType        `json:"roleType"`
	TeamID            string          `json:"teamID,omitempty"`
	TeamName          string          `json:"teamName,omitempty"`
	TargetGP          decimal.Decimal `json:"targetGP"`
	ActualGP          decimal.Decimal `json:"actualGP"`
	ProjectedGP       decimal.Decimal `json:"projectedGP"`
	VariancePct       decimal.Decimal `json:"variancePct"`
	ProjectedVariance decimal.Decimal `json:"projectedVariancePct"`
	HasTarget         bool            `json:"hasTarget"`
}

// TeamTargetProgressEntry rolls member target progress up to team level.
type TeamTargetProgressEntry struct {
	TeamID      string          `json:"teamID"`
	TeamName    string          `json:"teamName"`
	TargetGP    decimal.Decimal `json:"targetGP"`
	ActualGP    decimal.Decimal `json:"actualGP"`
	ProjectedGP decimal.Decimal `json:"projectedGP"`
	VariancePct decimal.Decimal `json:"variancePct"`
	HasTarget   bool            `json:"hasTarget"`
}

// MetricRank is a 1-based position among peers sharing the caller's role.
type MetricRank struct {
	Rank  int `json:"rank"`
	Total int `json:"total"`
}

// DashboardStats summarises the caller's own deals plus their standing
// against users with the same role.
type DashboardStats struct {
	TotalDeals       int             `json:"totalDeals"`
	ApprovedDeals    int             `json:"approvedDeals"`
	PendingDeals     int             `json:"pendingDeals"`
	DraftDeals       int             `json:"draftDeals"`
	ApprovedValueGBP decimal.Decimal `json:"approvedValueGBP"`
	TotalRank        MetricRank      `json:"totalRank"`
	ApprovedRank     MetricRank      `json:"approvedRank"`
	PendingRank      MetricRank      `json:"pendingRank"` // Fewer pending ranks higher
	ValueRank        MetricRank      `json:"valueRank"`
}

// MonthlyTrend is one month's approved activity in a trends series.
type MonthlyTrend struct {
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	GPAdded   decimal.Decimal `json:"gpAdded"`
	DealCount int             `json:"dealCount"`
}

// TrendsReport is the full-year monthly series plus a naive run-rate.
type TrendsReport struct {
	Year              int             `json:"year"`
	Months            []MonthlyTrend  `json:"months"`
	TotalGPAdded      decimal.Decimal `json:"totalGPAdded"`
	ProjectedAnnualGP decimal.Decimal `json:"projectedAnnualGP"` // Average month x 12
}

// ProjectionSummary splits projected yearly value by deal type alongside
// actual billed GP.
type ProjectionSummary struct {
	Year        int             `json:"year"`
	ServicesGBP decimal.Decimal `json:"servicesGBP"`
	StaffGBP    decimal.Decimal `json:"staffGBP"`
	ContractGBP decimal.Decimal `json:"contractGBP"`
	BillingsGBP decimal.Decimal `json:"billingsGBP"` // From billing_records GP
	TotalGBP    decimal.Decimal `json:"totalGBP"`
}

// BillingRecordRow is a per-person rollup joined with profile and team
// names for the billings view.
type BillingRecordRow struct {
	RecordID   string          `json:"recordID"`
	UserID     string          `json:"userID"`
	UserName   string          `json:"userName"`
	TeamName   string          `json:"teamName,omitempty"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	RevenueGBP decimal.Decimal `json:"revenueGBP"`
	GPGBP      decimal.Decimal `json:"gpGBP"`
	NPGBP      decimal.Decimal `json:"npGBP"`
}
