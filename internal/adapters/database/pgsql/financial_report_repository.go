package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dahira-app/dahira_backend/internal/apperrors"
	"github.com/dahira-app/dahira_backend/internal/core/domain"
	portsrepo "github.com/dahira-app/dahira_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type financialReportRepository struct {
	baseRepository
}

// NewFinancialReportRepository creates a new repository for financial report data.
func NewFinancialReportRepository(pool *pgxpool.Pool) portsrepo.FinancialReportRepositoryFacade {
	return &financialReportRepository{baseRepository{pool: pool}}
}

var _ portsrepo.FinancialReportRepositoryFacade = (*financialReportRepository)(nil)

const financialReportColumns = `
	report_id, commission, period, start_date, end_date,
	total_budget_allocated, expenses, total_expenses, balance,
	status, review_note, submitted_by, submitted_at,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveFinancialReport inserts a new draft report. Expense lines are stored as JSONB.
func (r *financialReportRepository) SaveFinancialReport(ctx context.Context, report domain.CommissionFinancialReport) error {
	expensesJSON, err := json.Marshal(report.Expenses)
	if err != nil {
		return fmt.Errorf("failed to marshal expenses for report %s: %w", report.ReportID, err)
	}

	query := `
		INSERT INTO financial_reports (` + financialReportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = r.pool.Exec(ctx, query,
		report.ReportID,
		report.Commission,
		report.Period,
		report.StartDate,
		report.EndDate,
		report.TotalBudgetAllocated,
		expensesJSON,
		report.TotalExpenses,
		report.Balance,
		report.Status,
		nullableString(report.ReviewNote),
		report.SubmittedBy,
		report.SubmittedAt,
		report.CreatedAt,
		report.CreatedBy,
		report.LastUpdatedAt,
		report.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save financial report %s: %w", report.ReportID, err)
	}
	return nil
}

func scanFinancialReport(row pgx.Row) (*domain.CommissionFinancialReport, error) {
	var report domain.CommissionFinancialReport
	var expensesJSON []byte
	var reviewNote *string

	err := row.Scan(
		&report.ReportID,
		&report.Commission,
		&report.Period,
		&report.StartDate,
		&report.EndDate,
		&report.TotalBudgetAllocated,
		&expensesJSON,
		&report.TotalExpenses,
		&report.Balance,
		&report.Status,
		&reviewNote,
		&report.SubmittedBy,
		&report.SubmittedAt,
		&report.CreatedAt,
		&report.CreatedBy,
		&report.LastUpdatedAt,
		&report.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(expensesJSON, &report.Expenses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal expenses for report %s: %w", report.ReportID, err)
	}
	if reviewNote != nil {
		report.ReviewNote = *reviewNote
	}
	return &report, nil
}

// FindFinancialReportByID retrieves a report by its ID.
func (r *financialReportRepository) FindFinancialReportByID(ctx context.Context, reportID string) (*domain.CommissionFinancialReport, error) {
	query := `SELECT ` + financialReportColumns + ` FROM financial_reports WHERE report_id = $1;`

	report, err := scanFinancialReport(r.pool.QueryRow(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: financial report %s", apperrors.ErrNotFound, reportID)
		}
		return nil, fmt.Errorf("failed to find financial report %s: %w", reportID, err)
	}
	return report, nil
}

// ListFinancialReportsByCommission retrieves reports newest first. An empty
// commission lists reports across all commissions.
func (r *financialReportRepository) ListFinancialReportsByCommission(ctx context.Context, commission domain.Commission, limit int, offset int) ([]domain.CommissionFinancialReport, error) {
	query := `SELECT ` + financialReportColumns + ` FROM financial_reports`
	args := []interface{}{}
	argPos := 1

	if commission != "" {
		query += fmt.Sprintf(" WHERE commission = $%d", argPos)
		args = append(args, commission)
		argPos++
	}
	query += fmt.Sprintf(" ORDER BY submitted_at DESC, report_id DESC LIMIT $%d OFFSET $%d;", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list financial reports: %w", err)
	}
	defer rows.Close()

	reports := make([]domain.CommissionFinancialReport, 0, limit)
	for rows.Next() {
		report, err := scanFinancialReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan financial report row: %w", err)
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating financial report rows: %w", err)
	}
	return reports, nil
}

// UpdateFinancialReport persists expense-line and derived-field changes on a draft report.
func (r *financialReportRepository) UpdateFinancialReport(ctx context.Context, report domain.CommissionFinancialReport) error {
	expensesJSON, err := json.Marshal(report.Expenses)
	if err != nil {
		return fmt.Errorf("failed to marshal expenses for report %s: %w", report.ReportID, err)
	}

	query := `
		UPDATE financial_reports
		SET expenses = $1, total_expenses = $2, balance = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE report_id = $6 AND status = $7;
	`
	tag, err := r.pool.Exec(ctx, query,
		expensesJSON,
		report.TotalExpenses,
		report.Balance,
		report.LastUpdatedAt,
		report.LastUpdatedBy,
		report.ReportID,
		domain.ReportDraft,
	)
	if err != nil {
		return fmt.Errorf("failed to update financial report %s: %w", report.ReportID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: financial report %s is not editable", apperrors.ErrInvalidTransition, report.ReportID)
	}
	return nil
}

// UpdateFinancialReportStatus persists a status transition, guarded on the expected prior status.
func (r *financialReportRepository) UpdateFinancialReportStatus(ctx context.Context, report domain.CommissionFinancialReport, expectedStatus domain.ReportStatus) error {
	query := `
		UPDATE financial_reports
		SET status = $1, review_note = $2, last_updated_at = $3, last_updated_by = $4
		WHERE report_id = $5 AND status = $6;
	`
	tag, err := r.pool.Exec(ctx, query,
		report.Status,
		nullableString(report.ReviewNote),
		report.LastUpdatedAt,
		report.LastUpdatedBy,
		report.ReportID,
		expectedStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to update financial report %s: %w", report.ReportID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: financial report %s is no longer in status %s",
			apperrors.ErrInvalidTransition, report.ReportID, expectedStatus)
	}
	return nil
}
