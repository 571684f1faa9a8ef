package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
	"github.com/meridianhq/salesops_backend/internal/models"
)

type PgxBillingRepository struct {
	BaseRepository
}

func newPgxBillingRepository(db *pgxpool.Pool) portsrepo.BillingRepositoryFacade {
	return &PgxBillingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.BillingRepositoryFacade = (*PgxBillingRepository)(nil)

// Helper to convert domain.BillingUpload to models.BillingUpload.
// The raw rows are serialised to JSONB.
func toModelBillingUpload(d domain.BillingUpload) (models.BillingUpload, error) {
	fileData, err := json.Marshal(d.Rows)
	if err != nil {
		return models.BillingUpload{}, fmt.Errorf("failed to marshal upload rows: %w", err)
	}
	m := models.BillingUpload{
		UploadID:         d.UploadID,
		Month:            d.Month,
		Year:             d.Year,
		FileName:         d.FileName,
		FileData:         fileData,
		UploadedBy:       d.UploadedBy,
		IsCorrection:     d.IsCorrection,
		CorrectionReason: nullString(d.CorrectionReason),
		ReplacedUploadID: nullString(d.ReplacedUploadID),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	return m, nil
}

// Helper to convert models.BillingUpload to domain.BillingUpload
func toDomainBillingUpload(m models.BillingUpload) (domain.BillingUpload, error) {
	var rows []map[string]string
	if len(m.FileData) > 0 {
		if err := json.Unmarshal(m.FileData, &rows); err != nil {
			return domain.BillingUpload{}, fmt.Errorf("failed to unmarshal rows for upload %s: %w", m.UploadID, err)
		}
	}
	return domain.BillingUpload{
		UploadID:         m.UploadID,
		Month:            m.Month,
		Year:             m.Year,
		FileName:         m.FileName,
		Rows:             rows,
		UploadedBy:       m.UploadedBy,
		IsCorrection:     m.IsCorrection,
		CorrectionReason: stringPtr(m.CorrectionReason),
		ReplacedUploadID: stringPtr(m.ReplacedUploadID),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

const billingUploadColumns = `upload_id, month, year, file_name, file_data, uploaded_by, is_correction, correction_reason, replaced_upload_id, created_at, created_by, last_updated_at, last_updated_by`

func scanBillingUpload(row pgx.Row) (models.BillingUpload, error) {
	var m models.BillingUpload
	err := row.Scan(
		&m.UploadID, &m.Month, &m.Year, &m.FileName, &m.FileData,
		&m.UploadedBy, &m.IsCorrection, &m.CorrectionReason, &m.ReplacedUploadID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxBillingRepository) SaveUpload(ctx context.Context, upload domain.BillingUpload) error {
	m, err := toModelBillingUpload(upload)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO billing_uploads (` + billingUploadColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `
	_, err = r.Pool.Exec(ctx, query,
		m.UploadID, m.Month, m.Year, m.FileName, m.FileData,
		m.UploadedBy, m.IsCorrection, m.CorrectionReason, m.ReplacedUploadID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save billing upload: %w", err)
	}
	return nil
}

func (r *PgxBillingRepository) FindUploadByID(ctx context.Context, uploadID string) (*domain.BillingUpload, error) {
	query := `SELECT ` + billingUploadColumns + ` FROM billing_uploads WHERE upload_id = $1;`
	m, err := scanBillingUpload(r.Pool.QueryRow(ctx, query, uploadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find billing upload %s: %w", uploadID, err)
	}

	d, err := toDomainBillingUpload(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxBillingRepository) FindUploadsByYear(ctx context.Context, year int) ([]domain.BillingUpload, error) {
	query := `SELECT ` + billingUploadColumns + ` FROM billing_uploads WHERE year = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query billing uploads for year %d: %w", year, err)
	}
	defer rows.Close()

	uploads := []domain.BillingUpload{}
	for rows.Next() {
		m, err := scanBillingUpload(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan billing upload row: %w", err)
		}
		d, err := toDomainBillingUpload(m)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating billing upload rows: %w", rows.Err())
	}

	return uploads, nil
}

func (r *PgxBillingRepository) FindOriginalUploadForMonth(ctx context.Context, month, year int) (*domain.BillingUpload, error) {
	query := `
		SELECT ` + billingUploadColumns + `
		FROM billing_uploads
		WHERE month = $1 AND year = $2 AND is_correction = FALSE
		ORDER BY created_at DESC
		LIMIT 1;
	`
	m, err := scanBillingUpload(r.Pool.QueryRow(ctx, query, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find upload for %d/%d: %w", month, year, err)
	}

	d, err := toDomainBillingUpload(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ReplaceRecordsForUpload deletes all records for the upload and inserts the
// given set inside one transaction, so a failed re-process never leaves a
// month half written.
func (r *PgxBillingRepository) ReplaceRecordsForUpload(ctx context.Context, uploadID string, records []domain.BillingRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored if the transaction commits

	if _, err := tx.Exec(ctx, `DELETE FROM billing_records WHERE upload_id = $1;`, uploadID); err != nil {
		return fmt.Errorf("failed to delete prior records for upload %s: %w", uploadID, err)
	}

	if len(records) > 0 {
		batch := &pgx.Batch{}
		insertQuery := `
			INSERT INTO billing_records (record_id, upload_id, user_id, month, year, revenue_gbp, gp_gbp, np_gbp,
				created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`
		for _, rec := range records {
			batch.Queue(insertQuery,
				rec.RecordID, rec.UploadID, rec.UserID, rec.Month, rec.Year,
				rec.RevenueGBP, rec.GPGBP, rec.NPGBP,
				rec.CreatedAt, rec.CreatedBy, rec.LastUpdatedAt, rec.LastUpdatedBy,
			)
		}

		br := tx.SendBatch(ctx, batch)
		for range records {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("failed to insert billing record for upload %s: %w", uploadID, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close billing record batch: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}
