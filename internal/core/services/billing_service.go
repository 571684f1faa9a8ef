package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
)

// Column alias sets used to discover the relevant columns in an uploaded
// billing file. Headers are normalised before matching; first match wins.
var (
	nameAliases     = []string{"name", "employee", "person", "worker", "salesperson"}
	revenueAliases  = []string{"revenue", "rev"}
	gpAliases       = []string{"gp", "grossprofit", "gross"}
	npAliases       = []string{"np", "netprofit", "net"}
	currencyAliases = []string{"currency", "curr", "ccy"}
)

// billingService implements the BillingSvcFacade.
type billingService struct {
	BaseService
	billingRepo   portsrepo.BillingRepositoryFacade
	profileRepo   portsrepo.ProfileRepositoryFacade
	reportingRepo portsrepo.ReportingRepositoryFacade
	rates         portssvc.RateProvider
}

// NewBillingService creates a new billing service.
func NewBillingService(
	billingRepo portsrepo.BillingRepositoryFacade,
	profileRepo portsrepo.ProfileRepositoryFacade,
	reportingRepo portsrepo.ReportingRepositoryFacade,
	rates portssvc.RateProvider,
) portssvc.BillingSvcFacade {
	return &billingService{
		billingRepo:   billingRepo,
		profileRepo:   profileRepo,
		reportingRepo: reportingRepo,
		rates:         rates,
	}
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

func (s *billingService) IngestUpload(ctx context.Context, fileName string, rows []map[string]string, month, year int, isCorrection bool, correctionReason string, uploaderID string) (*domain.BillingUpload, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: uploaded file contains no data rows", apperrors.ErrValidation)
	}

	now := time.Now()
	upload := domain.BillingUpload{
		UploadID:     uuid.NewString(),
		Month:        month,
		Year:         year,
		FileName:     fileName,
		Rows:         rows,
		UploadedBy:   uploaderID,
		IsCorrection: isCorrection,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     uploaderID,
			LastUpdatedAt: now,
			LastUpdatedBy: uploaderID,
		},
	}

	if isCorrection {
		if correctionReason != "" {
			upload.CorrectionReason = &correctionReason
		}
		original, err := s.billingRepo.FindOriginalUploadForMonth(ctx, month, year)
		if err == nil {
			upload.ReplacedUploadID = &original.UploadID
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up original upload for %d/%d: %w", month, year, err)
		}
	}

	if err := s.billingRepo.SaveUpload(ctx, upload); err != nil {
		s.LogError(ctx, err, "Failed to save billing upload", slog.String("file", fileName))
		return nil, err
	}

	s.LogInfo(ctx, "Billing upload stored",
		slog.String("upload_id", upload.UploadID),
		slog.Int("rows", len(rows)),
		slog.Bool("correction", isCorrection))
	return &upload, nil
}

func (s *billingService) ListUploads(ctx context.Context, year int) ([]domain.BillingUpload, error) {
	return s.billingRepo.FindUploadsByYear(ctx, year)
}

func (s *billingService) ListRecords(ctx context.Context, month, year int) ([]domain.BillingRecordRow, error) {
	return s.reportingRepo.GetBillingRecordRows(ctx, month, year)
}

// ProcessUpload runs the reconciliation routine: it aggregates the upload's
// raw rows into per-person GBP rollups and replaces any records previously
// produced from this upload. All failures happen before any write.
func (s *billingService) ProcessUpload(ctx context.Context, uploadID string, month, year int, requestingUserID string) (*domain.BillingProcessResult, error) {
	requester, err := s.profileRepo.FindProfileByID(ctx, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load requesting profile: %w", err)
	}
	if !requester.RoleType.IsPrivileged() {
		return nil, fmt.Errorf("role %s may not process billing uploads: %w", requester.RoleType, apperrors.ErrForbidden)
	}

	upload, err := s.billingRepo.FindUploadByID(ctx, uploadID)
	if err != nil {
		return nil, err
	}
	if len(upload.Rows) == 0 {
		return nil, fmt.Errorf("%w: upload %s has no stored rows", apperrors.ErrValidation, uploadID)
	}

	cols, err := discoverColumns(upload.Rows[0])
	if err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.FindActiveProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active profiles: %w", err)
	}

	type rollup struct {
		revenue decimal.Decimal
		gp      decimal.Decimal
		np      decimal.Decimal
	}
	totals := map[string]*rollup{}
	order := []string{}
	unmatched := []string{}
	rowsRead := 0

	for _, row := range upload.Rows {
		name := strings.TrimSpace(row[cols.name])
		if name == "" {
			continue
		}
		rowsRead++

		profile := matchProfileByName(name, profiles)
		if profile == nil {
			s.LogWarn(ctx, "No profile match for billing row; dropping",
				slog.String("name", name), slog.String("upload_id", uploadID))
			unmatched = append(unmatched, name)
			continue
		}

		currency := "GBP"
		if cols.currency != "" {
			if c := strings.TrimSpace(row[cols.currency]); c != "" {
				currency = strings.ToUpper(c)
			}
		}

		revenue, err := s.convertCell(ctx, row, cols.revenue, currency)
		if err != nil {
			return nil, err
		}
		gp, err := s.convertCell(ctx, row, cols.gp, currency)
		if err != nil {
			return nil, err
		}
		np, err := s.convertCell(ctx, row, cols.np, currency)
		if err != nil {
			return nil, err
		}

		t, ok := totals[profile.ProfileID]
		if !ok {
			t = &rollup{}
			totals[profile.ProfileID] = t
			order = append(order, profile.ProfileID)
		}
		t.revenue = t.revenue.Add(revenue)
		t.gp = t.gp.Add(gp)
		t.np = t.np.Add(np)
	}

	now := time.Now()
	records := make([]domain.BillingRecord, 0, len(totals))
	for _, profileID := range order {
		t := totals[profileID]
		records = append(records, domain.BillingRecord{
			RecordID:   uuid.NewString(),
			UploadID:   uploadID,
			UserID:     profileID,
			Month:      month,
			Year:       year,
			RevenueGBP: t.revenue,
			GPGBP:      t.gp,
			NPGBP:      t.np,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		})
	}

	if err := s.billingRepo.ReplaceRecordsForUpload(ctx, uploadID, records); err != nil {
		s.LogError(ctx, err, "Failed to replace billing records", slog.String("upload_id", uploadID))
		return nil, err
	}

	s.LogInfo(ctx, "Billing upload processed",
		slog.String("upload_id", uploadID),
		slog.Int("records", len(records)),
		slog.Int("unmatched", len(unmatched)))

	return &domain.BillingProcessResult{
		UploadID:       uploadID,
		RecordsWritten: len(records),
		RowsRead:       rowsRead,
		RowsUnmatched:  len(unmatched),
		UnmatchedNames: unmatched,
	}, nil
}

// convertCell parses the cell under key (when present) and converts it to GBP.
// A missing column or blank cell contributes zero.
func (s *billingService) convertCell(ctx context.Context, row map[string]string, key, currency string) (decimal.Decimal, error) {
	if key == "" {
		return decimal.Zero, nil
	}
	amount := parseAmount(row[key])
	if amount.IsZero() {
		return decimal.Zero, nil
	}
	converted, err := s.rates.ConvertToGBP(ctx, amount, currency)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to convert %s %s to GBP: %w", amount, currency, err)
	}
	return converted, nil
}

// billingColumns holds the original header names resolved for each concern.
// Only name is mandatory.
type billingColumns struct {
	name     string
	revenue  string
	gp       string
	np       string
	currency string
}

// discoverColumns resolves which headers of the first row carry the name,
// money, and currency values.
func discoverColumns(firstRow map[string]string) (billingColumns, error) {
	cols := billingColumns{
		name:     findColumn(firstRow, nameAliases),
		revenue:  findColumn(firstRow, revenueAliases),
		gp:       findColumn(firstRow, gpAliases),
		np:       findColumn(firstRow, npAliases),
		currency: findColumn(firstRow, currencyAliases),
	}
	if cols.name == "" {
		return cols, fmt.Errorf("%w: could not find a name column in the uploaded file", apperrors.ErrValidation)
	}
	return cols, nil
}

// normalizeColumnName lowercases a header and strips every non-alphanumeric
// character, so "Gross Profit (GBP)" matches "grossprofit...".
func normalizeColumnName(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(header) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// findColumn returns the original header whose normalised form equals one of
// the aliases. Aliases are tried in order; the first one with a match wins.
func findColumn(row map[string]string, aliases []string) string {
	for _, alias := range aliases {
		for header := range row {
			if normalizeColumnName(header) == alias {
				return header
			}
		}
	}
	return ""
}

// matchProfileByName resolves a billing row name to an active profile by
// case-insensitive substring containment in either direction, falling back to
// a surname-plus-leading-name token match so an initialled form like
// "J Smith" resolves to "John Smith". First match wins; there is no
// disambiguation of ties.
func matchProfileByName(name string, profiles []domain.Profile) *domain.Profile {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i := range profiles {
		candidate := strings.ToLower(strings.TrimSpace(profiles[i].Name))
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			return &profiles[i]
		}
		if nameTokensMatch(needle, candidate) {
			return &profiles[i]
		}
	}
	return nil
}

// nameTokensMatch reports whether two multi-word lowercased names share the
// same final token (surname) with one leading token a prefix of the other.
func nameTokensMatch(a, b string) bool {
	at := strings.Fields(a)
	bt := strings.Fields(b)
	if len(at) < 2 || len(bt) < 2 {
		return false
	}
	if at[len(at)-1] != bt[len(bt)-1] {
		return false
	}
	return strings.HasPrefix(at[0], bt[0]) || strings.HasPrefix(bt[0], at[0])
}

// parseAmount reads a money cell, tolerating currency symbols, commas, and
// surrounding whitespace. Unparseable cells contribute zero.
func parseAmount(cell string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, cell)
	if cleaned == "" || cleaned == "-" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
