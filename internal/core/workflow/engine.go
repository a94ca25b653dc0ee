// Package workflow implements the budget request and financial report
// approval state machines together with every derived monetary computation.
// All functions are pure: they operate on the values passed in and return new
// records; callers own persistence. A failed call returns the zero value and
// an error, never a partially updated record.
package workflow

import (
	"fmt"

	"github.com/dahira-app/dahira_backend/internal/apperrors"
	"github.com/dahira-app/dahira_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultBureauEscalationThreshold is the monetary cutoff above which
// finance approval alone is insufficient and bureau approval is required.
// The unit is currency-agnostic.
var DefaultBureauEscalationThreshold = decimal.NewFromInt(50000)

// Decision is a reviewer's verdict on a budget request.
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// ReportDecision is the finance commission's verdict on a financial report.
type ReportDecision string

const (
	ReportValidate ReportDecision = "VALIDATE"
	ReportReject   ReportDecision = "REJECT"
)

// DecisionParams carries the payload of a request decision: an approved
// amount for approvals, a reason for rejections.
type DecisionParams struct {
	AmountApproved  *decimal.Decimal
	RejectionReason string
}

// Engine evaluates request and report transitions against a configured
// bureau escalation threshold. The zero value is not usable; construct
// with NewEngine.
type Engine struct {
	threshold decimal.Decimal
}

// NewEngine returns an Engine using the given escalation threshold.
// A non-positive threshold falls back to the default.
func NewEngine(threshold decimal.Decimal) Engine {
	if threshold.LessThanOrEqual(decimal.Zero) {
		threshold = DefaultBureauEscalationThreshold
	}
	return Engine{threshold: threshold}
}

// Threshold returns the engine's bureau escalation threshold.
func (e Engine) Threshold() decimal.Decimal {
	return e.threshold
}

// RequiresBureauApproval reports whether a request of the given total needs a
// second approval stage. The comparison is strict: a total exactly at the
// threshold does not escalate. The check always uses amountRequested, never
// amountApproved, since it determines whether the bureau ever sees the request.
func (e Engine) RequiresBureauApproval(amountRequested decimal.Decimal) bool {
	return amountRequested.GreaterThan(e.threshold)
}

// ComputeBreakdownLine returns quantity * unitCost for a single line.
// Negative inputs are rejected rather than clamped.
func ComputeBreakdownLine(quantity, unitCost decimal.Decimal) (decimal.Decimal, error) {
	if quantity.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: quantity %s is negative", apperrors.ErrInvalidBreakdownLine, quantity)
	}
	if unitCost.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: unit cost %s is negative", apperrors.ErrInvalidBreakdownLine, unitCost)
	}
	return quantity.Mul(unitCost), nil
}

// ComputeRequestTotal sums the line totals of a breakdown.
// An empty breakdown yields zero.
func ComputeRequestTotal(breakdown []domain.BreakdownLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range breakdown {
		total = total.Add(line.Total)
	}
	return total
}

// NormalizeBreakdown recomputes every line total and returns the normalized
// lines with the resulting request total. The input slice is not modified.
// An empty breakdown is accepted and yields a zero total.
func NormalizeBreakdown(breakdown []domain.BreakdownLine) ([]domain.BreakdownLine, decimal.Decimal, error) {
	normalized := make([]domain.BreakdownLine, len(breakdown))
	total := decimal.Zero
	for i, line := range breakdown {
		lineTotal, err := ComputeBreakdownLine(line.Quantity, line.UnitCost)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("line %d (%s): %w", i, line.Item, err)
		}
		line.Total = lineTotal
		normalized[i] = line
		total = total.Add(lineTotal)
	}
	return normalized, total, nil
}

// IsTerminal reports whether a request status admits no further decisions.
func IsTerminal(status domain.RequestStatus) bool {
	switch status {
	case domain.StatusApproved, domain.StatusPartiallyApproved, domain.StatusRejected:
		return true
	}
	return false
}

// BeginFinanceReview marks a freshly submitted request as being reviewed by
// the finance commission.
func BeginFinanceReview(request domain.BudgetRequest) (domain.BudgetRequest, error) {
	if request.Status != domain.StatusSubmittedFinance {
		return domain.BudgetRequest{}, fmt.Errorf("%w: cannot begin finance review from status %s",
			apperrors.ErrInvalidTransition, request.Status)
	}
	request.Status = domain.StatusUnderFinanceReview
	return request, nil
}

// DecideOnRequest applies a reviewer's decision to a budget request and
// returns the updated record.
//
// Finance acts on SUBMITTED_FINANCE / UNDER_FINANCE_REVIEW requests: a
// rejection is terminal, an approval either finalizes the request or, when
// amountRequested exceeds the escalation threshold, forwards it to the
// bureau with the finance-approved amount recorded provisionally. The bureau
// acts on SUBMITTED_BUREAU requests: approving the full requested amount
// yields APPROVED, any other amount yields PARTIALLY_APPROVED.
func (e Engine) DecideOnRequest(request domain.BudgetRequest, role domain.ReviewerRole, decision Decision, params DecisionParams) (domain.BudgetRequest, error) {
	if IsTerminal(request.Status) {
		return domain.BudgetRequest{}, fmt.Errorf("%w: request %s is already %s",
			apperrors.ErrInvalidTransition, request.RequestID, request.Status)
	}

	switch request.Status {
	case domain.StatusSubmittedFinance, domain.StatusUnderFinanceReview:
		if role != domain.RoleFinance {
			return domain.BudgetRequest{}, fmt.Errorf("%w: role %s may not act on a request in status %s",
				apperrors.ErrInvalidTransition, role, request.Status)
		}
	case domain.StatusSubmittedBureau:
		if role != domain.RoleBureau {
			return domain.BudgetRequest{}, fmt.Errorf("%w: role %s may not act on a request in status %s",
				apperrors.ErrInvalidTransition, role, request.Status)
		}
	default:
		return domain.BudgetRequest{}, fmt.Errorf("%w: unknown request status %s",
			apperrors.ErrInvalidTransition, request.Status)
	}

	switch decision {
	case DecisionReject:
		if params.RejectionReason == "" {
			return domain.BudgetRequest{}, fmt.Errorf("%w: rejection requires a non-empty reason", apperrors.ErrInvalidDecision)
		}
		request.Status = domain.StatusRejected
		request.RejectionReason = params.RejectionReason
		return request, nil

	case DecisionApprove:
		if params.AmountApproved == nil || params.AmountApproved.IsNegative() {
			return domain.BudgetRequest{}, fmt.Errorf("%w: approval requires a non-negative approved amount", apperrors.ErrInvalidDecision)
		}
		approved := *params.AmountApproved
		request.AmountApproved = &approved

		if role == domain.RoleFinance {
			if e.RequiresBureauApproval(request.AmountRequested) {
				request.Status = domain.StatusSubmittedBureau
			} else {
				request.Status = domain.StatusApproved
			}
			return request, nil
		}

		// Bureau decision: final disposition depends on whether the full
		// requested amount was granted.
		if approved.Equal(request.AmountRequested) {
			request.Status = domain.StatusApproved
		} else {
			request.Status = domain.StatusPartiallyApproved
		}
		return request, nil

	default:
		return domain.BudgetRequest{}, fmt.Errorf("%w: unknown decision %q", apperrors.ErrInvalidDecision, decision)
	}
}

// SubmitReport moves a draft financial report into the review queue.
func SubmitReport(report domain.CommissionFinancialReport) (domain.CommissionFinancialReport, error) {
	if report.Status != domain.ReportDraft {
		return domain.CommissionFinancialReport{}, fmt.Errorf("%w: cannot submit a report in status %s",
			apperrors.ErrInvalidTransition, report.Status)
	}
	report.Status = domain.ReportSubmitted
	return report, nil
}

// DecideOnReport applies the finance commission's verdict to a submitted
// report. Validation closes the report regardless of a negative balance;
// there is no escalation stage for reports.
func DecideOnReport(report domain.CommissionFinancialReport, decision ReportDecision, reviewNote string) (domain.CommissionFinancialReport, error) {
	switch report.Status {
	case domain.ReportSubmitted, domain.ReportUnderFinanceReview:
	default:
		return domain.CommissionFinancialReport{}, fmt.Errorf("%w: cannot decide on a report in status %s",
			apperrors.ErrInvalidTransition, report.Status)
	}

	switch decision {
	case ReportValidate:
		report.Status = domain.ReportClosed
	case ReportReject:
		report.Status = domain.ReportRejected
	default:
		return domain.CommissionFinancialReport{}, fmt.Errorf("%w: unknown report decision %q", apperrors.ErrInvalidDecision, decision)
	}
	report.ReviewNote = reviewNote
	return report, nil
}

// ComputeReportBalance returns the total expenses and the remaining balance
// of a report. The balance may be negative (overspend); it is never clamped.
func ComputeReportBalance(report domain.CommissionFinancialReport) (totalExpenses, balance decimal.Decimal) {
	totalExpenses = decimal.Zero
	for _, expense := range report.Expenses {
		totalExpenses = totalExpenses.Add(expense.Amount)
	}
	return totalExpenses, report.TotalBudgetAllocated.Sub(totalExpenses)
}

// FilterRequestsByCommission returns the requests submitted by the given
// commission, preserving order.
func FilterRequestsByCommission(requests []domain.BudgetRequest, commission domain.Commission) []domain.BudgetRequest {
	filtered := make([]domain.BudgetRequest, 0, len(requests))
	for _, request := range requests {
		if request.Commission == commission {
			filtered = append(filtered, request)
		}
	}
	return filtered
}

// PendingRequests returns the requests still awaiting a finance decision.
func PendingRequests(requests []domain.BudgetRequest) []domain.BudgetRequest {
	pending := make([]domain.BudgetRequest, 0, len(requests))
	for _, request := range requests {
		switch request.Status {
		case domain.StatusSubmittedFinance, domain.StatusUnderFinanceReview:
			pending = append(pending, request)
		}
	}
	return pending
}

// ProcessedRequests returns the complement of PendingRequests. Requests
// escalated to the bureau count as processed: finance has moved them along
// even though their final disposition is still pending.
func ProcessedRequests(requests []domain.BudgetRequest) []domain.BudgetRequest {
	processed := make([]domain.BudgetRequest, 0, len(requests))
	for _, request := range requests {
		switch request.Status {
		case domain.StatusSubmittedFinance, domain.StatusUnderFinanceReview:
		default:
			processed = append(processed, request)
		}
	}
	return processed
}
