package repositories

// RepositoryProvider bundles all repository facades for dependency injection
// into the service container.
type RepositoryProvider struct {
	BudgetRequestRepo   BudgetRequestRepositoryFacade
	FinancialReportRepo FinancialReportRepositoryFacade
	UserRepo            UserRepositoryFacade
}
