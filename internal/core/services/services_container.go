package services

import (
	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/platform/config"
	"github.com/meridianhq/salesops_backend/internal/platform/fxrates"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The rate client backs both deal submission conversion and billing
	// upload processing.
	fxClient := fxrates.NewClient(cfg.FxRateBaseURL, cfg.FxRateTimeout)

	container.Profile = NewProfileService(repos.ProfileRepo, repos.TeamRepo)
	container.Team = NewTeamService(repos.TeamRepo, repos.ProfileRepo)
	container.Deal = NewDealService(repos.DealRepo, repos.ProfileRepo, fxClient)
	container.Billing = NewBillingService(repos.BillingRepo, repos.ProfileRepo, repos.ReportingRepo, fxClient)
	container.Target = NewTargetService(repos.TargetRepo, repos.ProfileRepo)
	container.Projection = NewProjectionService(repos.ProjectionRepo, repos.DealRepo, repos.ReportingRepo)
	container.Reporting = NewReportingService(repos.DealRepo, repos.ProfileRepo, repos.TeamRepo, repos.TargetRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, fxClient)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}
