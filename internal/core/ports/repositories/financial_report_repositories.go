package repositories

import (
	"context"

	"github.com/dahira-app/dahira_backend/internal/core/domain"
)

// FinancialReportReader defines read operations for financial report data.
type FinancialReportReader interface {
	// FindFinancialReportByID retrieves a specific report by its unique identifier.
	FindFinancialReportByID(ctx context.Context, reportID string) (*domain.CommissionFinancialReport, error)

	// ListFinancialReportsByCommission retrieves reports for a commission,
	// newest first. An empty commission lists reports across all commissions.
	ListFinancialReportsByCommission(ctx context.Context, commission domain.Commission, limit int, offset int) ([]domain.CommissionFinancialReport, error)
}

// FinancialReportWriter defines write operations for financial report data.
type FinancialReportWriter interface {
	// SaveFinancialReport persists a newly created report.
	SaveFinancialReport(ctx context.Context, report domain.CommissionFinancialReport) error

	// UpdateFinancialReport persists expense-line and derived-field changes on a draft report.
	UpdateFinancialReport(ctx context.Context, report domain.CommissionFinancialReport) error

	// UpdateFinancialReportStatus persists a status transition, guarded on
	// expectedStatus like BudgetRequestWriter.UpdateBudgetRequestStatus.
	UpdateFinancialReportStatus(ctx context.Context, report domain.CommissionFinancialReport, expectedStatus domain.ReportStatus) error
}

// FinancialReportRepositoryFacade combines all financial report repository interfaces.
type FinancialReportRepositoryFacade interface {
	FinancialReportReader
	FinancialReportWriter
}
