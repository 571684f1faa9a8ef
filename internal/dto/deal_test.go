package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
	"github.com/meridianhq/salesops_backend/internal/dto"
)

func TestListDealsParams_StatusList(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		want    []domain.DealStatus
		wantErr bool
	}{
		{
			name:   "empty filter means no statuses",
			status: "",
			want:   nil,
		},
		{
			name:   "single status",
			status: "Approved",
			want:   []domain.DealStatus{domain.StatusApproved},
		},
		{
			name:   "comma-separated list",
			status: "Submitted,Under Review",
			want:   []domain.DealStatus{domain.StatusSubmitted, domain.StatusUnderReview},
		},
		{
			name:   "whitespace around entries is tolerated",
			status: " Draft , Revision Required ",
			want:   []domain.DealStatus{domain.StatusDraft, domain.StatusRevisionRequired},
		},
		{
			name:    "unknown status is rejected",
			status:  "Approved,Archived",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := dto.ListDealsParams{Status: tt.status}
			got, err := params.StatusList()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
