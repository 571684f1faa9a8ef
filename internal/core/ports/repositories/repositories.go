package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ProfileRepo      ProfileRepositoryFacade
	TeamRepo         TeamRepositoryFacade
	DealRepo         DealRepositoryFacade
	BillingRepo      BillingRepositoryFacade
	TargetRepo       TargetRepositoryFacade
	ProjectionRepo   ProjectionRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	ReportingRepo    ReportingRepositoryFacade
}
