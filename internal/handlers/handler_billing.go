package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/dto"
	"github.com/meridianhq/salesops_backend/internal/middleware"
)

// maxBillingFileSize caps uploaded billing files at 10 MiB.
const maxBillingFileSize = 10 << 20

// billingHandler handles billing file uploads, reconciliation runs and
// aggregated record reads.
type billingHandler struct {
	billingService portssvc.BillingSvcFacade
}

func newBillingHandler(bs portssvc.BillingSvcFacade) *billingHandler {
	return &billingHandler{billingService: bs}
}

// RegisterBillingRoutes registers all billing-related routes.
func RegisterBillingRoutes(rg *gin.RouterGroup, billingService portssvc.BillingSvcFacade) {
	h := newBillingHandler(billingService)

	billing := rg.Group("/billing")
	{
		billing.POST("/uploads", h.uploadFile)
		billing.GET("/uploads", h.listUploads)
		billing.POST("/uploads/:id/process", h.processUpload) // Privileged only
		billing.GET("/records", h.listRecords)
	}
}

// parseBillingFile converts an uploaded CSV or XLSX file into header-keyed
// rows. The first row is treated as the header; fully empty rows are skipped.
func parseBillingFile(fileHeader *multipart.FileHeader) ([]map[string]string, error) {
	if fileHeader.Size > maxBillingFileSize {
		return nil, fmt.Errorf("file exceeds the %d byte limit", maxBillingFileSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		return parseCSVRows(file)
	case ".xlsx":
		return parseXLSXRows(file)
	default:
		return nil, fmt.Errorf("unsupported file type %q, expected .csv or .xlsx", filepath.Ext(fileHeader.Filename))
	}
}

func parseCSVRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rowsFromCells(records), nil
}

func parseXLSXRows(r io.Reader) ([]map[string]string, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XLSX: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook contains no sheets")
	}

	cells, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rowsFromCells(cells), nil
}

// rowsFromCells maps a header row plus data rows into header-keyed maps.
func rowsFromCells(cells [][]string) []map[string]string {
	if len(cells) == 0 {
		return nil
	}

	headers := cells[0]
	rows := make([]map[string]string, 0, len(cells)-1)
	for _, cellRow := range cells[1:] {
		row := make(map[string]string, len(headers))
		empty := true
		for i, header := range headers {
			value := ""
			if i < len(cellRow) {
				value = cellRow[i]
			}
			if strings.TrimSpace(value) != "" {
				empty = false
			}
			row[header] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

// uploadFile godoc
// @Summary Upload a billing file
// @Description Accepts a CSV or XLSX file plus month/year form fields and
// stores its raw rows as an upload event. Corrections reference the original
// upload for the same month.
// @Tags billing
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Billing file (.csv or .xlsx)"
// @Param   month formData int true "Billing month (1-12)"
// @Param   year formData int true "Billing year"
// @Param   isCorrection formData bool false "Correction upload"
// @Param   correctionReason formData string false "Reason for the correction"
// @Success 201 {object} dto.BillingUploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /billing/uploads [post]
func (h *billingHandler) uploadFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var form dto.UploadBillingFileForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid form fields: " + err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A billing file is required"})
		return
	}

	uploaderID, ok := requireUserID(c)
	if !ok {
		return
	}

	rows, err := parseBillingFile(fileHeader)
	if err != nil {
		logger.Warn("Failed to parse billing file", slog.String("file", fileHeader.Filename), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	upload, err := h.billingService.IngestUpload(
		c.Request.Context(),
		fileHeader.Filename,
		rows,
		form.Month,
		form.Year,
		form.IsCorrection,
		form.CorrectionReason,
		uploaderID,
	)
	if err != nil {
		respondWithError(c, err, "Failed to store billing upload")
		return
	}

	logger.Info("Billing file uploaded",
		slog.String("upload_id", upload.UploadID),
		slog.Int("rows", len(upload.Rows)))
	c.JSON(http.StatusCreated, dto.ToBillingUploadResponse(upload))
}

// listUploads godoc
// @Summary List billing uploads
// @Description Retrieves upload events for a year, newest first.
// @Tags billing
// @Produce  json
// @Param   year query int true "Billing year"
// @Success 200 {object} dto.ListBillingUploadsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /billing/uploads [get]
func (h *billingHandler) listUploads(c *gin.Context) {
	var params struct {
		Year int `form:"year" binding:"required,min=2000"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A valid year is required"})
		return
	}

	uploads, err := h.billingService.ListUploads(c.Request.Context(), params.Year)
	if err != nil {
		respondWithError(c, err, "Failed to list billing uploads")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBillingUploadsResponse(uploads))
}

// processUpload godoc
// @Summary Process a billing upload
// @Description Aggregates an upload's rows into per-person GBP billing
// records for the month, replacing any prior records from the same upload.
// Caller must hold a privileged role.
// @Tags billing
// @Accept  json
// @Produce  json
// @Param   id path string true "Upload ID"
// @Param   request body dto.ProcessBillingUploadRequest true "Target month/year"
// @Success 200 {object} dto.ProcessBillingUploadResponse
// @Failure 400 {object} ErrorResponse "Missing name column or empty upload"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /billing/uploads/{id}/process [post]
func (h *billingHandler) processUpload(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ProcessBillingUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requesterID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.billingService.ProcessUpload(c.Request.Context(), c.Param("id"), req.Month, req.Year, requesterID)
	if err != nil {
		respondWithError(c, err, "Failed to process billing upload")
		return
	}

	logger.Info("Billing upload processed",
		slog.String("upload_id", result.UploadID),
		slog.Int("records_written", result.RecordsWritten),
		slog.Int("rows_unmatched", result.RowsUnmatched))
	c.JSON(http.StatusOK, dto.ProcessBillingUploadResponse{
		Success:          true,
		RecordsProcessed: result.RecordsWritten,
	})
}

// listRecords godoc
// @Summary List billing records
// @Description Retrieves per-person aggregated billing records for a month,
// joined with profile and team names, highest GP first.
// @Tags billing
// @Produce  json
// @Param   month query int true "Billing month (1-12)"
// @Param   year query int true "Billing year"
// @Success 200 {object} dto.ListBillingRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /billing/records [get]
func (h *billingHandler) listRecords(c *gin.Context) {
	var params struct {
		Month int `form:"month" binding:"required,min=1,max=12"`
		Year  int `form:"year" binding:"required,min=2000"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Valid month and year are required"})
		return
	}

	records, err := h.billingService.ListRecords(c.Request.Context(), params.Month, params.Year)
	if err != nil {
		respondWithError(c, err, "Failed to list billing records")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBillingRecordsResponse(records))
}
