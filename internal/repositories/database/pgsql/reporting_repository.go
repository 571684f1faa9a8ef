package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingReader interface.
// Aggregate queries scan straight into domain report rows.
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetBillingRecordRows retrieves per-person monthly rollups joined with
// profile and team names for the billings view.
func (r *reportingRepository) GetBillingRecordRows(ctx context.Context, month, year int) ([]domain.BillingRecordRow, error) {
	query := `
		SELECT
			br.record_id,
			br.user_id,
			p.name AS user_name,
			COALESCE(t.name, '') AS team_name,
			br.month,
			br.year,
			br.revenue_gbp,
			br.gp_gbp,
			br.np_gbp
		FROM billing_records br
		JOIN profiles p ON br.user_id = p.profile_id
		LEFT JOIN teams t ON p.team_id = t.team_id
		WHERE br.month = $1 AND br.year = $2
		ORDER BY br.gp_gbp DESC
	`

	rows, err := r.Pool.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("error querying billing record rows: %w", err)
	}
	defer rows.Close()

	var result []domain.BillingRecordRow
	for rows.Next() {
		var row domain.BillingRecordRow
		if err := rows.Scan(
			&row.RecordID,
			&row.UserID,
			&row.UserName,
			&row.TeamName,
			&row.Month,
			&row.Year,
			&row.RevenueGBP,
			&row.GPGBP,
			&row.NPGBP,
		); err != nil {
			return nil, fmt.Errorf("error scanning billing record row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating billing record rows: %w", err)
	}

	if len(result) == 0 {
		return []domain.BillingRecordRow{}, nil
	}
	return result, nil
}

// GetBillingGPTotal sums billing-record GP for a year, in GBP.
func (r *reportingRepository) GetBillingGPTotal(ctx context.Context, year int) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(gp_gbp), 0)
		FROM billing_records
		WHERE year = $1
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, year).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("error querying billing GP total: %w", err)
	}
	return total, nil
}
