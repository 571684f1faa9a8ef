package gpsplit

import (
	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

// ParticipantPercent returns the credit-split percentage a user holds on a
// deal across the bd/dt/360 slots. A user occupying more than one slot has
// the percentages added. Percentages are trusted input and may not sum to 100.
func ParticipantPercent(deal domain.Deal, userID string) decimal.Decimal {
	pct := decimal.Zero
	if deal.BDUserID != nil && *deal.BDUserID == userID && deal.BDPercent != nil {
		pct = pct.Add(*deal.BDPercent)
	}
	if deal.DTUserID != nil && *deal.DTUserID == userID && deal.DTPercent != nil {
		pct = pct.Add(*deal.DTPercent)
	}
	if deal.User360ID != nil && *deal.User360ID == userID && deal.Percent360 != nil {
		pct = pct.Add(*deal.Percent360)
	}
	return pct
}

// GPShare returns the GBP value credited to a user for a deal:
// value_converted_gbp x participant percent / 100.
func GPShare(deal domain.Deal, userID string) decimal.Decimal {
	pct := ParticipantPercent(deal, userID)
	if pct.IsZero() {
		return decimal.Zero
	}
	return deal.ValueGBP.Mul(pct).Div(hundred)
}

// TeamPercent sums the split percentages held on a deal by any member of the
// given set.
func TeamPercent(deal domain.Deal, memberIDs map[string]struct{}) decimal.Decimal {
	pct := decimal.Zero
	if deal.BDUserID != nil && deal.BDPercent != nil {
		if _, ok := memberIDs[*deal.BDUserID]; ok {
			pct = pct.Add(*deal.BDPercent)
		}
	}
	if deal.DTUserID != nil && deal.DTPercent != nil {
		if _, ok := memberIDs[*deal.DTUserID]; ok {
			pct = pct.Add(*deal.DTPercent)
		}
	}
	if deal.User360ID != nil && deal.Percent360 != nil {
		if _, ok := memberIDs[*deal.User360ID]; ok {
			pct = pct.Add(*deal.Percent360)
		}
	}
	return pct
}

// TeamGPShare returns the GBP value credited to a team for a deal.
func TeamGPShare(deal domain.Deal, memberIDs map[string]struct{}) decimal.Decimal {
	pct := TeamPercent(deal, memberIDs)
	if pct.IsZero() {
		return decimal.Zero
	}
	return deal.ValueGBP.Mul(pct).Div(hundred)
}

// Variance returns (actual-target)/target x 100, or zero when target is not
// positive.
func Variance(actual, target decimal.Decimal) decimal.Decimal {
	if target.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return actual.Sub(target).Div(target).Mul(hundred)
}
