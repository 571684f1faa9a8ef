package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
	"github.com/meridianhq/salesops_backend/internal/models"
)

type PgxDealRepository struct {
	db *pgxpool.Pool
}

func newPgxDealRepository(db *pgxpool.Pool) portsrepo.DealRepositoryFacade {
	return &PgxDealRepository{db: db}
}

var _ portsrepo.DealRepositoryFacade = (*PgxDealRepository)(nil)

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt32(i *int) sql.NullInt32 {
	if i == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*i), Valid: true}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func intPtr(ni sql.NullInt32) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int32)
	return &v
}

func decimalPtr(nd decimal.NullDecimal) *decimal.Decimal {
	if !nd.Valid {
		return nil
	}
	return &nd.Decimal
}

// Helper to convert domain.Deal to models.Deal
func toModelDeal(d domain.Deal) models.Deal {
	return models.Deal{
		DealID:                  d.DealID,
		DealType:                string(d.DealType),
		Client:                  d.Client,
		Location:                d.Location,
		Currency:                string(d.Currency),
		ValueOriginal:           d.ValueOriginal,
		ValueGBP:                d.ValueGBP,
		Status:                  string(d.Status),
		SubmittedBy:             d.SubmittedBy,
		SubmittedMonth:          d.SubmittedMonth,
		SubmittedYear:           d.SubmittedYear,
		BDUserID:                nullString(d.BDUserID),
		BDPercent:               nullDecimal(d.BDPercent),
		DTUserID:                nullString(d.DTUserID),
		DTPercent:               nullDecimal(d.DTPercent),
		User360ID:               nullString(d.User360ID),
		Percent360:              nullDecimal(d.Percent360),
		IsRenewal:               d.IsRenewal,
		RenewalCount:            d.RenewalCount,
		PlacementID:             nullString(d.PlacementID),
		WorkerName:              nullString(d.WorkerName),
		GPDaily:                 nullDecimal(d.GPDaily),
		DurationDays:            nullInt32(d.DurationDays),
		ServiceName:             nullString(d.ServiceName),
		ServiceDescription:      nullString(d.ServiceDescription),
		RevisionComment:         nullString(d.RevisionComment),
		VoidReason:              nullString(d.VoidReason),
		ReasonForBackdate:       nullString(d.ReasonForBackdate),
		ApprovedBy:              nullString(d.ApprovedBy),
		VoidedBy:                nullString(d.VoidedBy),
		EstimatedDays:           nullInt32(d.EstimatedDays),
		EstimatedOpportunityGBP: nullDecimal(d.EstimatedOpportunityGBP),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Deal to domain.Deal
func toDomainDeal(m models.Deal) domain.Deal {
	return domain.Deal{
		DealID:                  m.DealID,
		DealType:                domain.DealType(m.DealType),
		Client:                  m.Client,
		Location:                m.Location,
		Currency:                domain.CurrencyCode(m.Currency),
		ValueOriginal:           m.ValueOriginal,
		ValueGBP:                m.ValueGBP,
		Status:                  domain.DealStatus(m.Status),
		SubmittedBy:             m.SubmittedBy,
		SubmittedMonth:          m.SubmittedMonth,
		SubmittedYear:           m.SubmittedYear,
		BDUserID:                stringPtr(m.BDUserID),
		BDPercent:               decimalPtr(m.BDPercent),
		DTUserID:                stringPtr(m.DTUserID),
		DTPercent:               decimalPtr(m.DTPercent),
		User360ID:               stringPtr(m.User360ID),
		Percent360:              decimalPtr(m.Percent360),
		IsRenewal:               m.IsRenewal,
		RenewalCount:            m.RenewalCount,
		PlacementID:             stringPtr(m.PlacementID),
		WorkerName:              stringPtr(m.WorkerName),
		GPDaily:                 decimalPtr(m.GPDaily),
		DurationDays:            intPtr(m.DurationDays),
		ServiceName:             stringPtr(m.ServiceName),
		ServiceDescription:      stringPtr(m.ServiceDescription),
		RevisionComment:         stringPtr(m.RevisionComment),
		VoidReason:              stringPtr(m.VoidReason),
		ReasonForBackdate:       stringPtr(m.ReasonForBackdate),
		ApprovedBy:              stringPtr(m.ApprovedBy),
		VoidedBy:                stringPtr(m.VoidedBy),
		EstimatedDays:           intPtr(m.EstimatedDays),
		EstimatedOpportunityGBP: decimalPtr(m.EstimatedOpportunityGBP),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const dealColumns = `deal_id, deal_type, client, location, currency, value_original, value_converted_gbp,
		status, submitted_by, submitted_month, submitted_year,
		bd_user_id, bd_percent, dt_user_id, dt_percent, user_360_id, percent_360,
		is_renewal, renewal_count, placement_id, worker_name, gp_daily, duration_days,
		service_name, service_description, revision_comment, void_reason, reason_for_backdate,
		approved_by, voided_by, estimated_days, total_estimated_opportunity_gbp,
		created_at, created_by, last_updated_at, last_updated_by`

func scanDeal(row pgx.Row) (models.Deal, error) {
	var m models.Deal
	err := row.Scan(
		&m.DealID, &m.DealType, &m.Client, &m.Location, &m.Currency, &m.ValueOriginal, &m.ValueGBP,
		&m.Status, &m.SubmittedBy, &m.SubmittedMonth, &m.SubmittedYear,
		&m.BDUserID, &m.BDPercent, &m.DTUserID, &m.DTPercent, &m.User360ID, &m.Percent360,
		&m.IsRenewal, &m.RenewalCount, &m.PlacementID, &m.WorkerName, &m.GPDaily, &m.DurationDays,
		&m.ServiceName, &m.ServiceDescription, &m.RevisionComment, &m.VoidReason, &m.ReasonForBackdate,
		&m.ApprovedBy, &m.VoidedBy, &m.EstimatedDays, &m.EstimatedOpportunityGBP,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxDealRepository) collectDeals(rows pgx.Rows) ([]domain.Deal, error) {
	defer rows.Close()
	deals := []domain.Deal{}
	for rows.Next() {
		m, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal row: %w", err)
		}
		deals = append(deals, toDomainDeal(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating deal rows: %w", rows.Err())
	}
	return deals, nil
}

func (r *PgxDealRepository) SaveDeal(ctx context.Context, deal domain.Deal) error {
	m := toModelDeal(deal)
	query := `
        INSERT INTO deals (` + dealColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
                $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36);
    `
	_, err := r.db.Exec(ctx, query,
		m.DealID, m.DealType, m.Client, m.Location, m.Currency, m.ValueOriginal, m.ValueGBP,
		m.Status, m.SubmittedBy, m.SubmittedMonth, m.SubmittedYear,
		m.BDUserID, m.BDPercent, m.DTUserID, m.DTPercent, m.User360ID, m.Percent360,
		m.IsRenewal, m.RenewalCount, m.PlacementID, m.WorkerName, m.GPDaily, m.DurationDays,
		m.ServiceName, m.ServiceDescription, m.RevisionComment, m.VoidReason, m.ReasonForBackdate,
		m.ApprovedBy, m.VoidedBy, m.EstimatedDays, m.EstimatedOpportunityGBP,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save deal: %w", err)
	}
	return nil
}

func (r *PgxDealRepository) FindDealByID(ctx context.Context, dealID string) (*domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE deal_id = $1;`
	m, err := scanDeal(r.db.QueryRow(ctx, query, dealID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find deal by ID %s: %w", dealID, err)
	}

	d := toDomainDeal(m)
	return &d, nil
}

func (r *PgxDealRepository) FindDeals(ctx context.Context, filter portsrepo.DealListFilter) ([]domain.Deal, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + dealColumns + ` FROM deals WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query += fmt.Sprintf(" AND status = ANY($%d)", argNum)
		args = append(args, statuses)
		argNum++
	}
	if filter.Year != 0 {
		query += fmt.Sprintf(" AND submitted_year = $%d", argNum)
		args = append(args, filter.Year)
		argNum++
	}
	if filter.Month != 0 {
		query += fmt.Sprintf(" AND submitted_month = $%d", argNum)
		args = append(args, filter.Month)
		argNum++
	}
	if filter.SubmittedBy != "" {
		query += fmt.Sprintf(" AND submitted_by = $%d", argNum)
		args = append(args, filter.SubmittedBy)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d;", argNum, argNum+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deals: %w", err)
	}
	return r.collectDeals(rows)
}

func (r *PgxDealRepository) FindDealsByYear(ctx context.Context, year int) ([]domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE submitted_year = $1 ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query deals for year %d: %w", year, err)
	}
	return r.collectDeals(rows)
}

func (r *PgxDealRepository) FindApprovedDealsByYear(ctx context.Context, year int) ([]domain.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE submitted_year = $1 AND status = 'Approved' ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved deals for year %d: %w", year, err)
	}
	return r.collectDeals(rows)
}

func (r *PgxDealRepository) UpdateDeal(ctx context.Context, deal domain.Deal) error {
	m := toModelDeal(deal)
	query := `
        UPDATE deals
        SET deal_type = $1, client = $2, location = $3, currency = $4,
            value_original = $5, value_converted_gbp = $6, status = $7,
            submitted_month = $8, submitted_year = $9,
            bd_user_id = $10, bd_percent = $11, dt_user_id = $12, dt_percent = $13,
            user_360_id = $14, percent_360 = $15, is_renewal = $16, renewal_count = $17,
            placement_id = $18, worker_name = $19, gp_daily = $20, duration_days = $21,
            service_name = $22, service_description = $23, revision_comment = $24,
            void_reason = $25, reason_for_backdate = $26, approved_by = $27, voided_by = $28,
            estimated_days = $29, total_estimated_opportunity_gbp = $30,
            last_updated_at = $31, last_updated_by = $32
        WHERE deal_id = $33;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.DealType, m.Client, m.Location, m.Currency,
		m.ValueOriginal, m.ValueGBP, m.Status,
		m.SubmittedMonth, m.SubmittedYear,
		m.BDUserID, m.BDPercent, m.DTUserID, m.DTPercent,
		m.User360ID, m.Percent360, m.IsRenewal, m.RenewalCount,
		m.PlacementID, m.WorkerName, m.GPDaily, m.DurationDays,
		m.ServiceName, m.ServiceDescription, m.RevisionComment,
		m.VoidReason, m.ReasonForBackdate, m.ApprovedBy, m.VoidedBy,
		m.EstimatedDays, m.EstimatedOpportunityGBP,
		m.LastUpdatedAt, m.LastUpdatedBy, m.DealID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update deal query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("deal not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxDealRepository) DeleteDeal(ctx context.Context, dealID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM deals WHERE deal_id = $1;`, dealID)
	if err != nil {
		return fmt.Errorf("failed to delete deal %s: %w", dealID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("deal not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
