package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

func TestTargetPeriod_Months(t *testing.T) {
	fullYear := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	tests := []struct {
		name      string
		period    domain.TargetPeriod
		periodNum int
		want      []int
	}{
		{"single month", domain.PeriodMonthly, 6, []int{6}},
		{"month out of range falls back to year", domain.PeriodMonthly, 13, fullYear},
		{"first quarter", domain.PeriodQuarterly, 1, []int{1, 2, 3}},
		{"second quarter", domain.PeriodQuarterly, 2, []int{4, 5, 6}},
		{"fourth quarter", domain.PeriodQuarterly, 4, []int{10, 11, 12}},
		{"quarter out of range falls back to year", domain.PeriodQuarterly, 5, fullYear},
		{"first half", domain.PeriodHalfYearly, 1, []int{1, 2, 3, 4, 5, 6}},
		{"second half", domain.PeriodHalfYearly, 2, []int{7, 8, 9, 10, 11, 12}},
		{"yearly ignores period number", domain.PeriodYearly, 3, fullYear},
		{"unknown period yields full year", domain.TargetPeriod("weekly"), 1, fullYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.period.Months(tt.periodNum)
			assert.Equal(t, tt.want, got)
		})
	}
}
