package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
)

// UploadBillingFileForm carries the multipart form fields accompanying a
// billing file upload. The file itself arrives as the "file" form part.
type UploadBillingFileForm struct {
	Month            int    `form:"month" binding:"required,min=1,max=12"`
	Year             int    `form:"year" binding:"required,min=2000"`
	IsCorrection     bool   `form:"isCorrection"`
	CorrectionReason string `form:"correctionReason"`
}

// ProcessBillingUploadRequest selects the month/year an upload is processed
// into. They normally match the upload but may be overridden.
type ProcessBillingUploadRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=2000"`
}

// ProcessBillingUploadResponse reports the outcome of a reconciliation run.
type ProcessBillingUploadResponse struct {
	Success          bool `json:"success"`
	RecordsProcessed int  `json:"records_processed"`
}

// BillingUploadResponse defines the API representation of an upload event.
// Raw row content is deliberately not echoed back.
type BillingUploadResponse struct {
	UploadID         string    `json:"uploadID"`
	Month            int       `json:"month"`
	Year             int       `json:"year"`
	FileName         string    `json:"fileName"`
	RowCount         int       `json:"rowCount"`
	UploadedBy       string    `json:"uploadedBy"`
	IsCorrection     bool      `json:"isCorrection"`
	CorrectionReason *string   `json:"correctionReason,omitempty"`
	ReplacedUploadID *string   `json:"replacedUploadID,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToBillingUploadResponse converts a domain.BillingUpload to BillingUploadResponse DTO
func ToBillingUploadResponse(u *domain.BillingUpload) BillingUploadResponse {
	return BillingUploadResponse{
		UploadID:         u.UploadID,
		Month:            u.Month,
		Year:             u.Year,
		FileName:         u.FileName,
		RowCount:         len(u.Rows),
		UploadedBy:       u.UploadedBy,
		IsCorrection:     u.IsCorrection,
		CorrectionReason: u.CorrectionReason,
		ReplacedUploadID: u.ReplacedUploadID,
		CreatedAt:        u.CreatedAt,
	}
}

// ListBillingUploadsResponse wraps the list of uploads.
type ListBillingUploadsResponse struct {
	Uploads []BillingUploadResponse `json:"uploads"`
}

// ToListBillingUploadsResponse converts a slice of domain.BillingUpload to ListBillingUploadsResponse DTO
func ToListBillingUploadsResponse(uploads []domain.BillingUpload) ListBillingUploadsResponse {
	responses := make([]BillingUploadResponse, len(uploads))
	for i, u := range uploads {
		responses[i] = ToBillingUploadResponse(&u)
	}
	return ListBillingUploadsResponse{Uploads: responses}
}

// BillingRecordResponse is one per-person rollup joined with names.
type BillingRecordResponse struct {
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

// ListBillingRecordsResponse wraps the billing records view.
type ListBillingRecordsResponse struct {
	Records []BillingRecordResponse `json:"records"`
}

// ToListBillingRecordsResponse converts reporting rows to the records view DTO.
func ToListBillingRecordsResponse(rows []domain.BillingRecordRow) ListBillingRecordsResponse {
	responses := make([]BillingRecordResponse, len(rows))
	for i, r := range rows {
		responses[i] = BillingRecordResponse{
			RecordID:   r.RecordID,
			UserID:     r.UserID,
			UserName:   r.UserName,
			TeamName:   r.TeamName,
			Month:      r.Month,
			Year:       r.Year,
			RevenueGBP: r.RevenueGBP,
			GPGBP:      r.GPGBP,
			NPGBP:      r.NPGBP,
		}
	}
	return ListBillingRecordsResponse{Records: responses}
}
