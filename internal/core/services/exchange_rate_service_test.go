package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/meridianhq/salesops_backend/internal/apperrors"
	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/core/services"
	"github.com/meridianhq/salesops_backend/internal/platform/fxrates"
)

// --- Mock ExchangeRateRepository (based on ExchangeRateService usage) ---
type MockExchangeRateRepository struct {
	mock.Mock
	FindExchangeRateFn func(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)
	SaveExchangeRateFn func(ctx context.Context, rate domain.ExchangeRate) error
}

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	if m.FindExchangeRateFn != nil {
		return m.FindExchangeRateFn(ctx, fromCurrencyCode, toCurrencyCode)
	}
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode)
	var rate *domain.ExchangeRate
	if args.Get(0) != nil {
		rate = args.Get(0).(*domain.ExchangeRate)
	}
	return rate, args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	if m.SaveExchangeRateFn != nil {
		return m.SaveExchangeRateFn(ctx, rate)
	}
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	server       *httptest.Server
	service      portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	// Serves the latest-rates payload the snapshot run fetches for base GBP.
	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"GBP","date":"2026-08-31","rates":{"USD":1.25,"EUR":1.16,"SAR":4.0,"AED":5.0}}`))
	}))
	fxClient := fxrates.NewClient(suite.server.URL, time.Second)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, fxClient)
}

func (suite *ExchangeRateServiceTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "GBP", Rate: decimal.RequireFromString("0.8")}
	suite.mockRateRepo.On("FindExchangeRate", ctx, "USD", "GBP").Return(stored, nil).Once()

	rate, err := suite.service.GetRate(ctx, "USD", "GBP")

	suite.Require().NoError(err)
	suite.Equal(stored, rate)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_NotFound() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "JPY", "GBP").Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.GetRate(ctx, "JPY", "GBP")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(rate)
}

func (suite *ExchangeRateServiceTestSuite) TestSnapshotRates_StoresInvertedDailyRates() {
	ctx := context.Background()

	saved := map[string]domain.ExchangeRate{}
	suite.mockRateRepo.SaveExchangeRateFn = func(ctx context.Context, rate domain.ExchangeRate) error {
		saved[rate.FromCurrencyCode] = rate
		return nil
	}

	err := suite.service.SnapshotRates(ctx)

	suite.Require().NoError(err)
	suite.Len(saved, 4)

	usd := saved["USD"]
	suite.Equal("GBP", usd.ToCurrencyCode)
	// The provider quotes 1.25 USD per GBP; the stored USD->GBP rate is 1/1.25.
	suite.True(usd.Rate.Equal(decimal.RequireFromString("0.8")), "usd rate %s", usd.Rate)
	suite.True(saved["SAR"].Rate.Equal(decimal.RequireFromString("0.25")))

	// Date granularity is a UTC day so same-day re-runs upsert in place.
	suite.Equal(time.UTC, usd.DateEffective.Location())
	suite.Zero(usd.DateEffective.Hour())
	suite.Zero(usd.DateEffective.Minute())
	suite.NotEmpty(usd.ExchangeRateID)
}

func (suite *ExchangeRateServiceTestSuite) TestSnapshotRates_ContinuesPastSaveFailure() {
	ctx := context.Background()

	var saves int
	suite.mockRateRepo.SaveExchangeRateFn = func(ctx context.Context, rate domain.ExchangeRate) error {
		saves++
		if rate.FromCurrencyCode == "USD" {
			return apperrors.ErrDuplicate
		}
		return nil
	}

	err := suite.service.SnapshotRates(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal(4, saves, "one failing pair must not stop the rest")
}

func (suite *ExchangeRateServiceTestSuite) TestSnapshotRates_FetchFailure() {
	ctx := context.Background()
	suite.server.Close()

	err := suite.service.SnapshotRates(ctx)

	suite.Require().Error(err)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
