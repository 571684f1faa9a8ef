package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// BillingUpload represents a row in the billing_uploads table. FileData holds
// the raw parsed rows as JSONB so an upload can be re-processed later.
type BillingUpload struct {
	UploadID         string         `db:"upload_id"`
	Month            int            `db:"month"`
	Year             int            `db:"year"`
	FileName         string         `db:"file_name"`
	FileData         []byte         `db:"file_data"` // JSONB: array of row objects
	UploadedBy       string         `db:"uploaded_by"`
	IsCorrection     bool           `db:"is_correction"`
	CorrectionReason sql.NullString `db:"correction_reason"`
	ReplacedUploadID sql.NullString `db:"replaced_upload_id"`
	AuditFields
}

// BillingRecord represents a row in the billing_records table.
type BillingRecord struct {
	RecordID   string          `db:"record_id"`
	UploadID   string          `db:"upload_id"`
	UserID     string          `db:"user_id"`
	Month      int             `db:"month"`
	Year       int             `db:"year"`
	RevenueGBP decimal.Decimal `db:"revenue_gbp"`
	GPGBP      decimal.Decimal `db:"gp_gbp"`
	NPGBP      decimal.Decimal `db:"np_gbp"`
	AuditFields
}
