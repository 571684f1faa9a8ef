package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/core/services"
)

// --- Mock BillingRepository (based on BillingService usage) ---
type MockBillingRepository struct {
	mock.Mock
	FindUploadByIDFn             func(ctx context.Context, uploadID string) (*domain.BillingUpload, error)
	FindUploadsByYearFn          func(ctx context.Context, year int) ([]domain.BillingUpload, error)
	FindOriginalUploadForMonthFn func(ctx context.Context, month, year int) (*domain.BillingUpload, error)
	SaveUploadFn                 func(ctx context.Context, upload domain.BillingUpload) error
	ReplaceRecordsForUploadFn    func(ctx context.Context, uploadID string, records []domain.BillingRecord) error
}

func (m *MockBillingRepository) FindUploadByID(ctx context.Context, uploadID string) (*domain.BillingUpload, error) {
	if m.FindUploadByIDFn != nil {
		return m.FindUploadByIDFn(ctx, uploadID)
	}
	args := m.Called(ctx, uploadID)
	var upload *domain.BillingUpload
	if args.Get(0) != nil {
		upload = args.Get(0).(*domain.BillingUpload)
	}
	return upload, args.Error(1)
}

func (m *MockBillingRepository) FindUploadsByYear(ctx context.Context, year int) ([]domain.BillingUpload, error) {
	if m.FindUploadsByYearFn != nil {
		return m.FindUploadsByYearFn(ctx, year)
	}
	args := m.Called(ctx, year)
	var uploads []domain.BillingUpload
	if args.Get(0) != nil {
		uploads = args.Get(0).([]domain.BillingUpload)
	}
	return uploads, args.Error(1)
}

func (m *MockBillingRepository) FindOriginalUploadForMonth(ctx context.Context, month, year int) (*domain.BillingUpload, error) {
	if m.FindOriginalUploadForMonthFn != nil {
		return m.FindOriginalUploadForMonthFn(ctx, month, year)
	}
	args := m.Called(ctx, month, year)
	var upload *domain.BillingUpload
	if args.Get(0) != nil {
		upload = args.Get(0).(*domain.BillingUpload)
	}
	return upload, args.Error(1)
}

func (m *MockBillingRepository) SaveUpload(ctx context.Context, upload domain.BillingUpload) error {
	if m.SaveUploadFn != nil {
		return m.SaveUploadFn(ctx, upload)
	}
	args := m.Called(ctx, upload)
	return args.Error(0)
}

func (m *MockBillingRepository) ReplaceRecordsForUpload(ctx context.Context, uploadID string, records []domain.BillingRecord) error {
	if m.ReplaceRecordsForUploadFn != nil {
		return m.ReplaceRecordsForUploadFn(ctx, uploadID, records)
	}
	args := m.Called(ctx, uploadID, records)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
	GetBillingRecordRowsFn func(ctx context.Context, month, year int) ([]domain.BillingRecordRow, error)
	GetBillingGPTotalFn    func(ctx context.Context, year int) (decimal.Decimal, error)
}

func (m *MockReportingRepository) GetBillingRecordRows(ctx context.Context, month, year int) ([]domain.BillingRecordRow, error) {
	if m.GetBillingRecordRowsFn != nil {
		return m.GetBillingRecordRowsFn(ctx, month, year)
	}
	args := m.Called(ctx, month, year)
	var rows []domain.BillingRecordRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.BillingRecordRow)
	}
	return rows, args.Error(1)
}

func (m *MockReportingRepository) GetBillingGPTotal(ctx context.Context, year int) (decimal.Decimal, error) {
	if m.GetBillingGPTotalFn != nil {
		return m.GetBillingGPTotalFn(ctx, year)
	}
	args := m.Called(ctx, year)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock RateProvider ---
// Converts using a fixed per-currency rate table and records every call, so
// tests can assert which conversions actually happened.
type MockRateProvider struct {
	Rates          map[string]decimal.Decimal
	Calls          []string
	ConvertToGBPFn func(ctx context.Context, amount decimal.Decimal, fromCurrency string) (decimal.Decimal, error)
}

func (m *MockRateProvider) ConvertToGBP(ctx context.Context, amount decimal.Decimal, fromCurrency string) (decimal.Decimal, error) {
	m.Calls = append(m.Calls, fromCurrency)
	if m.ConvertToGBPFn != nil {
		return m.ConvertToGBPFn(ctx, amount, fromCurrency)
	}
	if fromCurrency == "GBP" {
		return amount, nil
	}
	rate, ok := m.Rates[fromCurrency]
	if !ok {
		return decimal.Zero, apperrors.ErrNotFound
	}
	return amount.Mul(rate), nil
}

// --- Test Suite ---
type BillingServiceTestSuite struct {
	suite.Suite
	mockBillingRepo   *MockBillingRepository
	mockProfileRepo   *MockProfileRepository
	mockReportingRepo *MockReportingRepository
	mockRates         *MockRateProvider
	service           portssvc.BillingSvcFacade

	adminID string
	admin   *domain.Profile
}

func (suite *BillingServiceTestSuite) SetupTest() {
	suite.mockBillingRepo = new(MockBillingRepository)
	suite.mockProfileRepo = new(MockProfileRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockRates = &MockRateProvider{Rates: map[string]decimal.Decimal{
		"USD": decimal.RequireFromString("0.8"),
		"EUR": decimal.RequireFromString("0.85"),
	}}
	suite.service = services.NewBillingService(suite.mockBillingRepo, suite.mockProfileRepo, suite.mockReportingRepo, suite.mockRates)

	suite.adminID = uuid.NewString()
	suite.admin = &domain.Profile{
		ProfileID: suite.adminID,
		Name:      "Billing Admin",
		RoleType:  domain.RoleAdmin,
		IsActive:  true,
	}
}

func (suite *BillingServiceTestSuite) activeProfiles(names ...string) []domain.Profile {
	profiles := make([]domain.Profile, 0, len(names))
	for _, name := range names {
		profiles = append(profiles, domain.Profile{
			ProfileID: uuid.NewString(),
			Name:      name,
			RoleType:  domain.RoleBD,
			IsActive:  true,
		})
	}
	return profiles
}

// expectProcessSetup wires the happy-path lookups shared by ProcessUpload tests.
func (suite *BillingServiceTestSuite) expectProcessSetup(upload *domain.BillingUpload, profiles []domain.Profile) {
	ctx := context.Background()
	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(suite.admin, nil).Once()
	suite.mockBillingRepo.On("FindUploadByID", ctx, upload.UploadID).Return(upload, nil).Once()
	suite.mockProfileRepo.On("FindActiveProfiles", ctx).Return(profiles, nil).Once()
}

// --- IngestUpload Tests ---

func (suite *BillingServiceTestSuite) TestIngestUpload_Success() {
	ctx := context.Background()
	rows := []map[string]string{
		{"Name": "John Smith", "Revenue": "100", "GP": "40"},
	}

	suite.mockBillingRepo.On("SaveUpload", ctx, mock.MatchedBy(func(u domain.BillingUpload) bool {
		return u.Month == 6 && u.Year == 2026 && u.FileName == "june.csv" &&
			len(u.Rows) == 1 && !u.IsCorrection && u.UploadedBy == suite.adminID
	})).Return(nil).Once()

	upload, err := suite.service.IngestUpload(ctx, "june.csv", rows, 6, 2026, false, "", suite.adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(upload)
	suite.NotEmpty(upload.UploadID)
	suite.Nil(upload.ReplacedUploadID)
	suite.mockBillingRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestIngestUpload_EmptyFile() {
	upload, err := suite.service.IngestUpload(context.Background(), "empty.csv", nil, 6, 2026, false, "", suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(upload)
	suite.mockBillingRepo.AssertNotCalled(suite.T(), "SaveUpload", mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestIngestUpload_CorrectionLinksOriginal() {
	ctx := context.Background()
	originalID := uuid.NewString()
	reason := "Finance restated June GP"
	rows := []map[string]string{{"Name": "John Smith", "GP": "40"}}

	suite.mockBillingRepo.On("FindOriginalUploadForMonth", ctx, 6, 2026).
		Return(&domain.BillingUpload{UploadID: originalID, Month: 6, Year: 2026}, nil).Once()
	suite.mockBillingRepo.On("SaveUpload", ctx, mock.MatchedBy(func(u domain.BillingUpload) bool {
		return u.IsCorrection && u.ReplacedUploadID != nil && *u.ReplacedUploadID == originalID &&
			u.CorrectionReason != nil && *u.CorrectionReason == reason
	})).Return(nil).Once()

	upload, err := suite.service.IngestUpload(ctx, "june-fix.csv", rows, 6, 2026, true, reason, suite.adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(upload.ReplacedUploadID)
	suite.Equal(originalID, *upload.ReplacedUploadID)
	suite.mockBillingRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestIngestUpload_CorrectionWithoutOriginal() {
	ctx := context.Background()
	rows := []map[string]string{{"Name": "John Smith", "GP": "40"}}

	// A correction for a month with no prior upload is still accepted; it
	// just has nothing to supersede.
	suite.mockBillingRepo.On("FindOriginalUploadForMonth", ctx, 2, 2026).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBillingRepo.On("SaveUpload", ctx, mock.MatchedBy(func(u domain.BillingUpload) bool {
		return u.IsCorrection && u.ReplacedUploadID == nil
	})).Return(nil).Once()

	upload, err := suite.service.IngestUpload(ctx, "feb-fix.csv", rows, 2, 2026, true, "", suite.adminID)

	suite.Require().NoError(err)
	suite.Nil(upload.ReplacedUploadID)
	suite.mockBillingRepo.AssertExpectations(suite.T())
}

// --- ProcessUpload Tests ---

func (suite *BillingServiceTestSuite) TestProcessUpload_AggregatesPerPerson() {
	ctx := context.Background()
	profiles := suite.activeProfiles("John Smith", "Priya Patel")
	upload := &domain.BillingUpload{
		UploadID: uuid.NewString(),
		Month:    6,
		Year:     2026,
		Rows: []map[string]string{
			{"Name": "John Smith", "Revenue": "1,000", "GP": "£400", "NP": "200"},
			{"Name": "Priya Patel", "Revenue": "500", "GP": "150", "NP": "75"},
		},
	}
	suite.expectProcessSetup(upload, profiles)

	var written []domain.BillingRecord
	suite.mockBillingRepo.ReplaceRecordsForUploadFn = func(ctx context.Context, uploadID string, records []domain.BillingRecord) error {
		suite.Equal(upload.UploadID, uploadID)
		written = records
		return nil
	}

	result, err := suite.service.ProcessUpload(ctx, upload.UploadID, 6, 2026, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(2, result.RecordsWritten)
	suite.Equal(2, result.RowsRead)
	suite.Equal(0, result.RowsUnmatched)
	suite.Require().Len(written, 2)
	suite.Equal(profiles[0].ProfileID, written[0].UserID)
	suite.True(written[0].RevenueGBP.Equal(decimal.NewFromInt(1000)), "revenue %s", written[0].RevenueGBP)
	suite.True(written[0].GPGBP.Equal(decimal.NewFromInt(400)))
	suite.True(written[0].NPGBP.Equal(decimal.NewFromInt(200)))
	suite.Equal(profiles[1].ProfileID, written[1].UserID)
	suite.True(written[1].GPGBP.Equal(decimal.NewFromInt(150)))
	suite.Equal(6, written[0].Month)
	suite.Equal(2026, written[0].Year)
	suite.mockProfileRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestProcessUpload_SumsRowsMatchingSameProfile() {
	ctx := context.Background()
	profiles := suite.activeProfiles("John Smith")
	upload := &domain.BillingUpload{
		UploadID: uuid.NewString(),
		Month:    6,
		Year:     2026,
		Rows: []map[string]string{
			{"Name": "John Smith", "GP": "100"},
			{"Name": "J Smith", "GP": "50"}, // initialled form resolves onto the same profile
		},
	}
	suite.expectProcessSetup(upload, profiles)

	var written []domain.BillingRecord
	suite.mockBillingRepo.ReplaceRecordsForUploadFn = func(ctx context.Context, uploadID string, records []domain.BillingRecord) error {
		written = records
		return nil
	}

	result, err := suite.service.ProcessUpload(ctx, upload.UploadID, 6, 2026, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(1, result.RecordsWritten)
	suite.Equal(2, result.RowsRead)
	suite.Require().Len(written, 1)
	suite.True(written[0].GPGBP.Equal(decimal.NewFromInt(150)), "summed GP %s", written[0].GPGBP)
}

func (suite *BillingServiceTestSuite) TestProcessUpload_InitialledNameMatchesOnSurname() {
	ctx := context.Background()
	profiles := suite.activeProfiles("John Smith")
	upload := &domain.BillingUpload{
		UploadID: uuid.NewString(),
		Month:    6,
		Year:     2026,
		Rows: []map[string]string{
			{"Name": "J Smith", "GP": "50"},   // leading initial matches "John"
			{"Name": "K Smith", "GP": "25"},   // shared surname alone is not enough
			{"Name": "J Smithers", "GP": "5"}, // different surname
		},
	}
	suite.expectProcessSetup(upload, profiles)

	var written []domain.BillingRecord
	suite.mockBillingRepo.ReplaceRecordsForUploadFn = func(ctx context.Context, uploadID string, records []domain.BillingRecord) error {
		written = records
		return nil
	}

	result, err := suite.service.ProcessUpload(ctx, upload.UploadID, 6, 2026, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(3, result.RowsRead)
	suite.Equal(2, result.RowsUnmatched)
	suite.Equal([]string{"K Smith", "J Smithers"}, result.UnmatchedNames)
	suite.Require().Len(written, 1)
	suite.Equal(profiles[0].ProfileID, written[0].UserID)
	suite.True(written[0].GPGBP.Equal(decimal.NewFromInt(50)))
}

func (suite *BillingServiceTestSuite) TestProcessUpload_ConvertsForeignCurrency() {
	ctx := context.Background()
	profiles := suite.activeProfiles("John Smith", "Priya Patel")
	upload := &domain.BillingUpload{
		UploadID: uuid.NewString(),
		Month:    6,
		Year:     2026,
		Rows: []map[string]string{
			{"Name": "John Smith", "GP": "100", "Currency": "usd"},
			{"Name": "Priya Patel", "GP": "100"}, // no currency cell defaults to GBP
		},
	}
	suite.expectProcessSetup(upload, profiles)

	var written []domain.BillingRecord
	suite.mockBillingRepo.ReplaceRecordsForUploadFn = func(ctx context.Context, uploadID string, records []domain.BillingRecord) error {
		written = records
		return nil
	}

	_, err := suite.service.ProcessUpload(ctx, upload.UploadID, 6, 2026, suite.adminID)

	suite.Require().NoError(err)
	suite.Require().Len(written, 2)
	suite.True(written[0].GPGBP.Equal(decimal.NewFromInt(80)), "USD row converted at 0.8, got %s", written[0].GPGBP)
	suite.True(written[1].GPGBP.Equal(decimal.NewFromInt(100)))
	suite.Contains(suite.mockRates.Calls, "USD", "currency codes are uppercased before conversion")
}

func (suite *BillingServiceTestSuite) TestProcessUpload_UnmatchedNamesDropped() {
	ctx := context.Background()
	profiles := suite.activeProfiles("John Smith")
	upload := &domain.BillingUpload{
		UploadID: uuid.NewString(),
		Month:    6,
		Year:     2026,
		Rows: []map[string]string{
			{"Name": "John Smith", "GP": "100"},
			{"Name": "Nobody Known", "GP": "999"},
		},
	}
	suite.expectProcessSetup(upload, profiles)

	var written []domain.BillingRecord
	suite.mockBillingRepo.ReplaceRecordsForUploadFn = func(ctx context.Context, uploadID string, records []domain.BillingRecord) error {
		written = records
		return nil
	}

	result, err := suite.service.ProcessUpload(ctx, upload.UploadID, 6, 2026, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(1, result.RecordsWritten)
	suite.Equal(2, result.RowsRead)
	suite.Equal(1, result.RowsUnmatched)
	suite.Equal([]string{"Nobody Known"}, result.UnmatchedNames)
	suite.Require().Len(written, 1)
	suite.True(written[0].GPGBP.Equal(decimal.NewFromInt(100)), "dropped row must not contribute")
}

func (suite *BillingServiceTestSuite) TestProcessUpload_HeaderAliasDiscovery() {
	ctx := context.Background()
	profiles := suite.activeProfiles("John Smith")
	upload := &domain.BillingUpload{
		UploadID: uuid.NewString(),
		Month:    6,
		Year:     2026,
		Rows: []map[string]string{
			{"Employee": "John Smith", "Rev.": "200", "Gross Profit": "80", "Net Profit": "40", "CCY ": "GBP"},
		},
	}
	suite.expectProcessSetup(upload, profiles)

	var written []domain.BillingRecord
	suite.mockBillingRepo.ReplaceRecordsForUploadFn = func(ctx context.Context, uploadID string, records []domain.BillingRecord) error {
		written = records
		return nil
	}

	_, err := suite.service.ProcessUpload(ctx, upload.UploadID, 6, 2026, suite.adminID)

	suite.Require().NoError(err)
	suite.Require().Len(written, 1)
	suite.True(written[0].RevenueGBP.Equal(decimal.NewFromInt(200)))
	suite.True(written[0].GPGBP.Equal(decimal.NewFromInt(80)))
	suite.True(written[0].NPGBP.Equal(decimal.NewFromInt(40)))
}

func (suite *BillingServiceTestSuite) TestProcessUpload_MissingNameColumn() {
	ctx := context.Background()
	upload := &domain.BillingUpload{
		UploadID: uuid.NewString(),
		Month:    6,
		Year:     2026,
		Rows: []map[string]string{
			{"Revenue": "100", "GP": "40"},
		},
	}
	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(suite.admin, nil).Once()
	suite.mockBillingRepo.On("FindUploadByID", ctx, upload.UploadID).Return(upload, nil).Once()

	result, err := suite.service.ProcessUpload(ctx, upload.UploadID, 6, 2026, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockBillingRepo.AssertNotCalled(suite.T(), "ReplaceRecordsForUpload", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestProcessUpload_ConversionFailureWritesNothing() {
	ctx := context.Background()
	profiles := suite.activeProfiles("John Smith")
	upload := &domain.BillingUpload{
		UploadID: uuid.NewString(),
		Month:    6,
		Year:     2026,
		Rows: []map[string]string{
			{"Name": "John Smith", "GP": "100", "Currency": "XXX"},
		},
	}
	suite.expectProcessSetup(upload, profiles)

	replaceCalled := false
	suite.mockBillingRepo.ReplaceRecordsForUploadFn = func(ctx context.Context, uploadID string, records []domain.BillingRecord) error {
		replaceCalled = true
		return nil
	}

	result, err := suite.service.ProcessUpload(ctx, upload.UploadID, 6, 2026, suite.adminID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.False(replaceCalled, "a failed conversion must abort before any write")
}

func (suite *BillingServiceTestSuite) TestProcessUpload_NonPrivilegedForbidden() {
	ctx := context.Background()
	salesperson := &domain.Profile{ProfileID: suite.adminID, Name: "BD User", RoleType: domain.RoleBD, IsActive: true}
	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(salesperson, nil).Once()

	result, err := suite.service.ProcessUpload(ctx, uuid.NewString(), 6, 2026, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
	suite.mockBillingRepo.AssertNotCalled(suite.T(), "FindUploadByID", mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestProcessUpload_UnknownRequesterUnauthorized() {
	ctx := context.Background()
	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.ProcessUpload(ctx, uuid.NewString(), 6, 2026, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(result)
}

func (suite *BillingServiceTestSuite) TestProcessUpload_EmptyStoredRows() {
	ctx := context.Background()
	upload := &domain.BillingUpload{UploadID: uuid.NewString(), Month: 6, Year: 2026}
	suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(suite.admin, nil).Once()
	suite.mockBillingRepo.On("FindUploadByID", ctx, upload.UploadID).Return(upload, nil).Once()

	result, err := suite.service.ProcessUpload(ctx, upload.UploadID, 6, 2026, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
}

func (suite *BillingServiceTestSuite) TestProcessUpload_ReprocessReplacesRecords() {
	ctx := context.Background()
	profiles := suite.activeProfiles("John Smith")
	upload := &domain.BillingUpload{
		UploadID: uuid.NewString(),
		Month:    6,
		Year:     2026,
		Rows:     []map[string]string{{"Name": "John Smith", "GP": "100"}},
	}

	// Process the same upload twice; each run must go through the
	// delete-then-insert path so the totals never double.
	for run := 0; run < 2; run++ {
		suite.mockProfileRepo.On("FindProfileByID", ctx, suite.adminID).Return(suite.admin, nil).Once()
		suite.mockBillingRepo.On("FindUploadByID", ctx, upload.UploadID).Return(upload, nil).Once()
		suite.mockProfileRepo.On("FindActiveProfiles", ctx).Return(profiles, nil).Once()
	}

	replaceCalls := 0
	suite.mockBillingRepo.ReplaceRecordsForUploadFn = func(ctx context.Context, uploadID string, records []domain.BillingRecord) error {
		replaceCalls++
		suite.Require().Len(records, 1)
		suite.True(records[0].GPGBP.Equal(decimal.NewFromInt(100)))
		return nil
	}

	first, err := suite.service.ProcessUpload(ctx, upload.UploadID, 6, 2026, suite.adminID)
	suite.Require().NoError(err)
	second, err := suite.service.ProcessUpload(ctx, upload.UploadID, 6, 2026, suite.adminID)
	suite.Require().NoError(err)

	suite.Equal(2, replaceCalls)
	suite.Equal(first.RecordsWritten, second.RecordsWritten)
}

// --- ListUploads / ListRecords Tests ---

func (suite *BillingServiceTestSuite) TestListUploads() {
	ctx := context.Background()
	uploads := []domain.BillingUpload{{UploadID: uuid.NewString(), Month: 6, Year: 2026}}
	suite.mockBillingRepo.On("FindUploadsByYear", ctx, 2026).Return(uploads, nil).Once()

	got, err := suite.service.ListUploads(ctx, 2026)

	suite.Require().NoError(err)
	suite.Equal(uploads, got)
}

func (suite *BillingServiceTestSuite) TestListRecords() {
	ctx := context.Background()
	rows := []domain.BillingRecordRow{{UserName: "John Smith", GPGBP: decimal.NewFromInt(400)}}
	suite.mockReportingRepo.On("GetBillingRecordRows", ctx, 6, 2026).Return(rows, nil).Once()

	got, err := suite.service.ListRecords(ctx, 6, 2026)

	suite.Require().NoError(err)
	suite.Equal(rows, got)
}

func TestBillingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillingServiceTestSuite))
}
