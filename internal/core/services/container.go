package services

import (
	portsrepo "github.com/dahira-app/dahira_backend/internal/core/ports/repositories"
	portssvc "github.com/dahira-app/dahira_backend/internal/core/ports/services"
	"github.com/dahira-app/dahira_backend/internal/core/workflow"
)

// NewContainer creates a service container with properly initialized dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider, engine workflow.Engine) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		BudgetRequest:   NewBudgetRequestService(engine, repos.BudgetRequestRepo),
		FinancialReport: NewFinancialReportService(repos.FinancialReportRepo),
		User:            NewUserService(repos.UserRepo),
	}
}
