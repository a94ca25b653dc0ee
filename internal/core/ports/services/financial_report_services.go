package services

import (
	"context"

	"github.com/dahira-app/dahira_backend/internal/core/domain"
	"github.com/dahira-app/dahira_backend/internal/dto"
)

// FinancialReportReaderSvc defines read operations for financial reports.
type FinancialReportReaderSvc interface {
	// GetFinancialReportByID retrieves a specific report by its ID.
	GetFinancialReportByID(ctx context.Context, reportID string) (*domain.CommissionFinancialReport, error)

	// ListFinancialReports retrieves reports, optionally narrowed to a commission.
	ListFinancialReports(ctx context.Context, params dto.ListFinancialReportsParams) ([]domain.CommissionFinancialReport, error)
}

// FinancialReportWriterSvc defines lifecycle operations for financial reports.
type FinancialReportWriterSvc interface {
	// CreateFinancialReport persists a new draft report with derived totals computed.
	CreateFinancialReport(ctx context.Context, req dto.CreateFinancialReportRequest, submitterUserID string) (*domain.CommissionFinancialReport, error)

	// ReplaceExpenses swaps the expense lines of a draft report and recomputes
	// total expenses and balance.
	ReplaceExpenses(ctx context.Context, reportID string, req dto.ReplaceExpensesRequest, userID string) (*domain.CommissionFinancialReport, error)

	// SubmitFinancialReport moves a draft report into the review queue.
	SubmitFinancialReport(ctx context.Context, reportID string, userID string) (*domain.CommissionFinancialReport, error)

	// DecideOnReport validates or rejects a submitted report.
	DecideOnReport(ctx context.Context, reportID string, req dto.ReportDecisionRequest, reviewerUserID string) (*domain.CommissionFinancialReport, error)
}

// FinancialReportSvcFacade combines all financial report service interfaces.
type FinancialReportSvcFacade interface {
	FinancialReportReaderSvc
	FinancialReportWriterSvc
}
