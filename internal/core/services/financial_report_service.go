package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dahira-app/dahira_backend/internal/apperrors"
	"github.com/dahira-app/dahira_backend/internal/core/domain"
	portsrepo "github.com/dahira-app/dahira_backend/internal/core/ports/repositories"
	portssvc "github.com/dahira-app/dahira_backend/internal/core/ports/services"
	"github.com/dahira-app/dahira_backend/internal/core/workflow"
	"github.com/dahira-app/dahira_backend/internal/dto"
	"github.com/dahira-app/dahira_backend/internal/middleware"
)

// financialReportService orchestrates financial report persistence around
// the pure workflow engine.
type financialReportService struct {
	reportRepo portsrepo.FinancialReportRepositoryFacade
}

// NewFinancialReportService creates a new financial report service.
func NewFinancialReportService(reportRepo portsrepo.FinancialReportRepositoryFacade) portssvc.FinancialReportSvcFacade {
	return &financialReportService{reportRepo: reportRepo}
}

var _ portssvc.FinancialReportSvcFacade = (*financialReportService)(nil)

func toExpenseLines(lines []dto.ExpenseLineRequest) ([]domain.ExpenseLine, error) {
	expenses := make([]domain.ExpenseLine, len(lines))
	for i, line := range lines {
		if line.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: expense amount %s is negative for %q", apperrors.ErrValidation, line.Amount, line.Category)
		}
		expenses[i] = domain.ExpenseLine{
			Category:    line.Category,
			Description: line.Description,
			Amount:      line.Amount,
			Date:        line.Date,
		}
	}
	return expenses, nil
}

// CreateFinancialReport persists a new draft report with derived totals computed.
func (s *financialReportService) CreateFinancialReport(ctx context.Context, req dto.CreateFinancialReportRequest, submitterUserID string) (*domain.CommissionFinancialReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Commission.IsValid() {
		return nil, fmt.Errorf("%w: unknown commission %q", apperrors.ErrValidation, req.Commission)
	}
	if req.TotalBudgetAllocated.IsNegative() {
		return nil, fmt.Errorf("%w: allocated budget must not be negative", apperrors.ErrValidation)
	}

	expenses, err := toExpenseLines(req.Expenses)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	report := domain.CommissionFinancialReport{
		ReportID:             uuid.NewString(),
		Commission:           req.Commission,
		Period:               req.Period,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		TotalBudgetAllocated: req.TotalBudgetAllocated,
		Expenses:             expenses,
		Status:               domain.ReportDraft,
		SubmittedBy:          submitterUserID,
		SubmittedAt:          now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     submitterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: submitterUserID,
		},
	}
	report.TotalExpenses, report.Balance = workflow.ComputeReportBalance(report)

	if err := s.reportRepo.SaveFinancialReport(ctx, report); err != nil {
		logger.Error("Failed to save financial report", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save financial report: %w", err)
	}

	logger.Info("Financial report created",
		slog.String("report_id", report.ReportID),
		slog.String("commission", string(report.Commission)),
		slog.String("period", report.Period),
	)
	return &report, nil
}

// GetFinancialReportByID retrieves a specific report by its ID.
func (s *financialReportService) GetFinancialReportByID(ctx context.Context, reportID string) (*domain.CommissionFinancialReport, error) {
	report, err := s.reportRepo.FindFinancialReportByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to get financial report %s: %w", reportID, err)
	}
	return report, nil
}

// ListFinancialReports retrieves reports, optionally narrowed to a commission.
func (s *financialReportService) ListFinancialReports(ctx context.Context, params dto.ListFinancialReportsParams) ([]domain.CommissionFinancialReport, error) {
	var commission domain.Commission
	if params.Commission != "" {
		commission = domain.Commission(params.Commission)
		if !commission.IsValid() {
			return nil, fmt.Errorf("%w: unknown commission %q", apperrors.ErrValidation, params.Commission)
		}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	reports, err := s.reportRepo.ListFinancialReportsByCommission(ctx, commission, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list financial reports: %w", err)
	}
	return reports, nil
}

// ReplaceExpenses swaps the expense lines of a draft report and recomputes
// total expenses and balance.
func (s *financialReportService) ReplaceExpenses(ctx context.Context, reportID string, req dto.ReplaceExpensesRequest, userID string) (*domain.CommissionFinancialReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	report, err := s.reportRepo.FindFinancialReportByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to get financial report %s: %w", reportID, err)
	}
	if report.Status != domain.ReportDraft {
		return nil, fmt.Errorf("%w: expenses can only be edited on a draft report (status %s)",
			apperrors.ErrInvalidTransition, report.Status)
	}

	expenses, err := toExpenseLines(req.Expenses)
	if err != nil {
		return nil, err
	}

	updated := *report
	updated.Expenses = expenses
	updated.TotalExpenses, updated.Balance = workflow.ComputeReportBalance(updated)

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.reportRepo.UpdateFinancialReport(ctx, updated); err != nil {
		logger.Error("Failed to update financial report expenses", slog.String("report_id", reportID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update financial report %s: %w", reportID, err)
	}

	logger.Info("Financial report expenses replaced",
		slog.String("report_id", reportID),
		slog.String("total_expenses", updated.TotalExpenses.String()),
		slog.String("balance", updated.Balance.String()),
	)
	return &updated, nil
}

// SubmitFinancialReport moves a draft report into the review queue.
func (s *financialReportService) SubmitFinancialReport(ctx context.Context, reportID string, userID string) (*domain.CommissionFinancialReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	report, err := s.reportRepo.FindFinancialReportByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to get financial report %s: %w", reportID, err)
	}

	previousStatus := report.Status
	submitted, err := workflow.SubmitReport(*report)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	submitted.LastUpdatedAt = now
	submitted.LastUpdatedBy = userID

	if err := s.reportRepo.UpdateFinancialReportStatus(ctx, submitted, previousStatus); err != nil {
		logger.Error("Failed to submit financial report", slog.String("report_id", reportID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Financial report submitted", slog.String("report_id", reportID))
	return &submitted, nil
}

// DecideOnReport validates or rejects a submitted report. Reports have a
// single review stage; there is no escalation threshold.
func (s *financialReportService) DecideOnReport(ctx context.Context, reportID string, req dto.ReportDecisionRequest, reviewerUserID string) (*domain.CommissionFinancialReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	report, err := s.reportRepo.FindFinancialReportByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to get financial report %s: %w", reportID, err)
	}

	previousStatus := report.Status
	decided, err := workflow.DecideOnReport(*report, workflow.ReportDecision(req.Decision), req.ReviewNote)
	if err != nil {
		logger.Warn("Financial report decision refused",
			slog.String("report_id", reportID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	now := time.Now().UTC()
	decided.LastUpdatedAt = now
	decided.LastUpdatedBy = reviewerUserID

	if err := s.reportRepo.UpdateFinancialReportStatus(ctx, decided, previousStatus); err != nil {
		logger.Error("Failed to persist financial report decision", slog.String("report_id", reportID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Financial report decided",
		slog.String("report_id", reportID),
		slog.String("status", string(decided.Status)),
	)
	return &decided, nil
}
