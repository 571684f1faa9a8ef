package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	profileRepo := newPgxProfileRepository(dbPool)
	teamRepo := newPgxTeamRepository(dbPool)
	dealRepo := newPgxDealRepository(dbPool)
	billingRepo := newPgxBillingRepository(dbPool)
	targetRepo := newPgxTargetRepository(dbPool)
	projectionRepo := newPgxProjectionRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ProfileRepo:      profileRepo,
		TeamRepo:         teamRepo,
		DealRepo:         dealRepo,
		BillingRepo:      billingRepo,
		TargetRepo:       targetRepo,
		ProjectionRepo:   projectionRepo,
		ExchangeRateRepo: exchangeRateRepo,
		ReportingRepo:    reportingRepo,
	}
}
