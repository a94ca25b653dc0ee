package dto

import (
	"time"

	"github.com/dahira-app/dahira_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseLineRequest is one expense entry supplied by a commission.
type ExpenseLineRequest struct {
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
}

// CreateFinancialReportRequest defines the data needed to open a draft report.
type CreateFinancialReportRequest struct {
	Commission           domain.Commission    `json:"commission" binding:"required"`
	Period               string               `json:"period" binding:"required"`
	StartDate            time.Time            `json:"startDate" binding:"required"`
	EndDate              time.Time            `json:"endDate" binding:"required,gtefield=StartDate"`
	TotalBudgetAllocated decimal.Decimal      `json:"totalBudgetAllocated" binding:"required"`
	Expenses             []ExpenseLineRequest `json:"expenses"`
}

// ReplaceExpensesRequest swaps the full expense list of a draft report.
type ReplaceExpensesRequest struct {
	Expenses []ExpenseLineRequest `json:"expenses" binding:"required"`
}

// ReportDecisionRequest defines the finance verdict on a submitted report.
type ReportDecisionRequest struct {
	Decision   string `json:"decision" binding:"required,oneof=VALIDATE REJECT"`
	ReviewNote string `json:"reviewNote"`
}

// ListFinancialReportsParams defines query parameters for listing reports.
type ListFinancialReportsParams struct {
	Commission string `form:"commission"`
	Limit      int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset     int    `form:"offset,default=0" binding:"omitempty,min=0"`
}

// FinancialReportResponse defines the data returned for a financial report.
type FinancialReportResponse struct {
	ReportID             string               `json:"reportID"`
	Commission           domain.Commission    `json:"commission"`
	Period               string               `json:"period"`
	StartDate            time.Time            `json:"startDate"`
	EndDate              time.Time            `json:"endDate"`
	TotalBudgetAllocated decimal.Decimal      `json:"totalBudgetAllocated"`
	Expenses             []domain.ExpenseLine `json:"expenses"`
	TotalExpenses        decimal.Decimal      `json:"totalExpenses"`
	Balance              decimal.Decimal      `json:"balance"`
	Status               domain.ReportStatus  `json:"status"`
	ReviewNote           string               `json:"reviewNote,omitempty"`
	SubmittedBy          string               `json:"submittedBy"`
	SubmittedAt          time.Time            `json:"submittedAt"`
}

// ToFinancialReportResponse converts a domain report to its response DTO.
func ToFinancialReportResponse(report *domain.CommissionFinancialReport) FinancialReportResponse {
	return FinancialReportResponse{
		ReportID:             report.ReportID,
		Commission:           report.Commission,
		Period:               report.Period,
		StartDate:            report.StartDate,
		EndDate:              report.EndDate,
		TotalBudgetAllocated: report.TotalBudgetAllocated,
		Expenses:             report.Expenses,
		TotalExpenses:        report.TotalExpenses,
		Balance:              report.Balance,
		Status:               report.Status,
		ReviewNote:           report.ReviewNote,
		SubmittedBy:          report.SubmittedBy,
		SubmittedAt:          report.SubmittedAt,
	}
}

// ToListFinancialReportsResponse converts a slice of domain reports to response DTOs.
func ToListFinancialReportsResponse(reports []domain.CommissionFinancialReport) []FinancialReportResponse {
	res := make([]FinancialReportResponse, len(reports))
	for i := range reports {
		res[i] = ToFinancialReportResponse(&reports[i])
	}
	return res
}
