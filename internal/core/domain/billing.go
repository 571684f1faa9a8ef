package domain

import (
	"github.com/shopspring/decimal"
)

// BillingUpload records one billing file ingestion event. The parsed rows are
// kept verbatim so an upload can be re-processed without the original file.
type BillingUpload struct {
	UploadID         string              `json:"uploadID"` // Primary Key (UUID)
	Month            int                 `json:"month"`
	Year             int                 `json:"year"`
	FileName         string              `json:"fileName"`
	Rows             []map[string]string `json:"rows"` // Raw parsed file content
	UploadedBy       string              `json:"uploadedBy"`
	IsCorrection     bool                `json:"isCorrection"`
	CorrectionReason *string             `json:"correctionReason,omitempty"`
	ReplacedUploadID *string             `json:"replacedUploadID,omitempty"` // Upload this correction supersedes
	AuditFields
}

// BillingRecord is one aggregated per-person, per-month monetary rollup
// produced by processing a BillingUpload. All amounts are GBP.
type BillingRecord struct {
	RecordID   string          `json:"recordID"` // Primary Key (UUID)
	UploadID   string          `json:"uploadID"` // FK -> billing_uploads.upload_id
	UserID     string          `json:"userID"`   // FK -> profiles.profile_id
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	RevenueGBP decimal.Decimal `json:"revenueGBP"`
	GPGBP      decimal.Decimal `json:"gpGBP"`
	NPGBP      decimal.Decimal `json:"npGBP"`
	AuditFields
}

// BillingProcessResult summarises one run of the reconciliation routine.
type BillingProcessResult struct {
	UploadID       string   `json:"uploadID"`
	RecordsWritten int      `json:"recordsWritten"`
	RowsRead       int      `json:"rowsRead"`
	RowsUnmatched  int      `json:"rowsUnmatched"`
	UnmatchedNames []string `json:"unmatchedNames,omitempty"`
}
