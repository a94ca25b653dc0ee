package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportStatus indicates the state of a commission financial report.
type ReportStatus string

const (
	ReportDraft              ReportStatus = "DRAFT"
	ReportSubmitted          ReportStatus = "SUBMITTED"
	ReportUnderFinanceReview ReportStatus = "UNDER_FINANCE_REVIEW"
	ReportClosed             ReportStatus = "CLOSED"
	ReportRejected           ReportStatus = "REJECTED"
)

// ExpenseLine is one recorded expense within a financial report.
type ExpenseLine struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}

// CommissionFinancialReport summarizes a commission's spending over a period
// against its allocated budget. TotalExpenses and Balance are derived; the
// workflow engine recomputes them whenever the expense lines change.
type CommissionFinancialReport struct {
	ReportID             string          `json:"reportID"` // Primary Key (UUID)
	Commission           Commission      `json:"commission"`
	Period               string          `json:"period"` // e.g. "2025-Q3"
	StartDate            time.Time       `json:"startDate"`
	EndDate              time.Time       `json:"endDate"`
	TotalBudgetAllocated decimal.Decimal `json:"totalBudgetAllocated"`
	Expenses             []ExpenseLine   `json:"expenses"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses"` // Derived: sum of expense amounts
	Balance              decimal.Decimal `json:"balance"`       // Derived: allocated - expenses, may be negative
	Status               ReportStatus    `json:"status"`
	ReviewNote           string          `json:"reviewNote,omitempty"` // Reviewer feedback on validate/reject
	SubmittedBy          string          `json:"submittedBy"`
	SubmittedAt          time.Time       `json:"submittedAt"`
	AuditFields
}
