package workflow_test

import (
	"testing"

	"github.com/dahira-app/dahira_backend/internal/apperrors"
	"github.com/dahira-app/dahira_backend/internal/core/domain"
	"github.com/dahira-app/dahira_backend/internal/core/workflow"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func pendingRequest(amount int64) domain.BudgetRequest {
	return domain.BudgetRequest{
		RequestID:       "req-1",
		Commission:      domain.CommissionHealth,
		Title:           "Medical supplies",
		Category:        domain.CategoryEquipment,
		Priority:        domain.PriorityHigh,
		AmountRequested: dec(amount),
		Status:          domain.StatusSubmittedFinance,
	}
}

func TestComputeBreakdownLine(t *testing.T) {
	total, err := workflow.ComputeBreakdownLine(dec(2), dec(15000))
	require.NoError(t, err)
	assert.True(t, total.Equal(dec(30000)))

	total, err = workflow.ComputeBreakdownLine(decimal.Zero, dec(500))
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	_, err = workflow.ComputeBreakdownLine(dec(-1), dec(500))
	assert.ErrorIs(t, err, apperrors.ErrInvalidBreakdownLine)

	_, err = workflow.ComputeBreakdownLine(dec(1), dec(-500))
	assert.ErrorIs(t, err, apperrors.ErrInvalidBreakdownLine)
}

func TestNormalizeBreakdown(t *testing.T) {
	lines := []domain.BreakdownLine{
		{Item: "Chairs", Quantity: dec(10), UnitCost: dec(2500)},
		{Item: "Sound system", Quantity: dec(1), UnitCost: dec(45000), Total: dec(999)}, // stale total
	}

	normalized, total, err := workflow.NormalizeBreakdown(lines)
	require.NoError(t, err)
	require.Len(t, normalized, 2)
	assert.True(t, normalized[0].Total.Equal(dec(25000)))
	assert.True(t, normalized[1].Total.Equal(dec(45000)))
	assert.True(t, total.Equal(dec(70000)))

	// Input slice untouched.
	assert.True(t, lines[1].Total.Equal(dec(999)))
}

func TestNormalizeBreakdown_Empty(t *testing.T) {
	normalized, total, err := workflow.NormalizeBreakdown(nil)
	require.NoError(t, err)
	assert.Empty(t, normalized)
	assert.True(t, total.IsZero())
}

func TestComputeRequestTotal_MatchesLineProducts(t *testing.T) {
	lines := []domain.BreakdownLine{
		{Quantity: dec(3), UnitCost: dec(1200)},
		{Quantity: dec(7), UnitCost: dec(850)},
		{Quantity: dec(2), UnitCost: dec(40000)},
	}
	normalized, total, err := workflow.NormalizeBreakdown(lines)
	require.NoError(t, err)

	expected := decimal.Zero
	for _, line := range lines {
		expected = expected.Add(line.Quantity.Mul(line.UnitCost))
	}
	assert.True(t, total.Equal(expected))
	assert.True(t, workflow.ComputeRequestTotal(normalized).Equal(expected))
}

func TestThresholdBoundary(t *testing.T) {
	engine := workflow.NewEngine(workflow.DefaultBureauEscalationThreshold)

	// Exactly at the threshold: no escalation.
	atThreshold := pendingRequest(50000)
	decided, err := engine.DecideOnRequest(atThreshold, domain.RoleFinance, workflow.DecisionApprove,
		workflow.DecisionParams{AmountApproved: decPtr(50000)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, decided.Status)

	// One unit above: escalated to the bureau.
	aboveThreshold := pendingRequest(50001)
	decided, err = engine.DecideOnRequest(aboveThreshold, domain.RoleFinance, workflow.DecisionApprove,
		workflow.DecisionParams{AmountApproved: decPtr(50001)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmittedBureau, decided.Status)
}

func TestEscalationUsesRequestedAmountNotApproved(t *testing.T) {
	engine := workflow.NewEngine(workflow.DefaultBureauEscalationThreshold)

	// Finance trims the approved amount under the threshold, but the
	// requested amount decides escalation.
	request := pendingRequest(120000)
	decided, err := engine.DecideOnRequest(request, domain.RoleFinance, workflow.DecisionApprove,
		workflow.DecisionParams{AmountApproved: decPtr(40000)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmittedBureau, decided.Status)
	require.NotNil(t, decided.AmountApproved)
	assert.True(t, decided.AmountApproved.Equal(dec(40000)))
}

func TestScenarioA_UnderThresholdApproval(t *testing.T) {
	engine := workflow.NewEngine(workflow.DefaultBureauEscalationThreshold)

	lines := []domain.BreakdownLine{{Item: "Banners", Quantity: dec(2), UnitCost: dec(15000)}}
	normalized, total, err := workflow.NormalizeBreakdown(lines)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec(30000)))

	request := pendingRequest(0)
	request.Breakdown = normalized
	request.AmountRequested = total

	decided, err := engine.DecideOnRequest(request, domain.RoleFinance, workflow.DecisionApprove,
		workflow.DecisionParams{AmountApproved: decPtr(30000)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, decided.Status)
	require.NotNil(t, decided.AmountApproved)
	assert.True(t, decided.AmountApproved.Equal(dec(30000)))
}

func TestScenarioB_BureauPartialApproval(t *testing.T) {
	engine := workflow.NewEngine(workflow.DefaultBureauEscalationThreshold)

	request := pendingRequest(120000)
	escalated, err := engine.DecideOnRequest(request, domain.RoleFinance, workflow.DecisionApprove,
		workflow.DecisionParams{AmountApproved: decPtr(100000)})
	require.NoError(t, err)
	require.Equal(t, domain.StatusSubmittedBureau, escalated.Status)

	final, err := engine.DecideOnRequest(escalated, domain.RoleBureau, workflow.DecisionApprove,
		workflow.DecisionParams{AmountApproved: decPtr(100000)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPartiallyApproved, final.Status)
	require.NotNil(t, final.AmountApproved)
	assert.True(t, final.AmountApproved.Equal(dec(100000)))
}

func TestScenarioC_BureauFullApproval(t *testing.T) {
	engine := workflow.NewEngine(workflow.DefaultBureauEscalationThreshold)

	request := pendingRequest(120000)
	escalated, err := engine.DecideOnRequest(request, domain.RoleFinance, workflow.DecisionApprove,
		workflow.DecisionParams{AmountApproved: decPtr(100000)})
	require.NoError(t, err)

	final, err := engine.DecideOnRequest(escalated, domain.RoleBureau, workflow.DecisionApprove,
		workflow.DecisionParams{AmountApproved: decPtr(120000)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, final.Status)
}

func TestScenarioD_RejectionIsTerminal(t *testing.T) {
	engine := workflow.NewEngine(workflow.DefaultBureauEscalationThreshold)

	request := pendingRequest(25000)
	rejected, err := engine.DecideOnRequest(request, domain.RoleFinance, workflow.DecisionReject,
		workflow.DecisionParams{RejectionReason: "Budget insuffisant"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
	assert.Equal(t, "Budget insuffisant", rejected.RejectionReason)

	// Identical second call fails; nothing is double-applied.
	_, err = engine.DecideOnRequest(rejected, domain.RoleFinance, workflow.DecisionReject,
		workflow.DecisionParams{RejectionReason: "Budget insuffisant"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestDecideOnRequest_TerminalStates(t *testing.T) {
	engine := workflow.NewEngine(workflow.DefaultBureauEscalationThreshold)

	for _, status := range []domain.RequestStatus{
		domain.StatusApproved,
		domain.StatusPartiallyApproved,
		domain.StatusRejected,
	} {
		request := pendingRequest(10000)
		request.Status = status
		_, err := engine.DecideOnRequest(request, domain.RoleFinance, workflow.DecisionApprove,
			workflow.DecisionParams{AmountApproved: decPtr(10000)})
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "status %s", status)
	}
}

func TestDecideOnRequest_RoleStateMismatch(t *testing.T) {
	engine := workflow.NewEngine(workflow.DefaultBureauEscalationThreshold)

	// Bureau may not act on a finance-pending request.
	request := pendingRequest(10000)
	_, err := engine.DecideOnRequest(request, domain.RoleBureau, workflow.DecisionApprove,
		workflow.DecisionParams{AmountApproved: decPtr(10000)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	// Finance may not act on an escalated request.
	request.Status = domain.StatusSubmittedBureau
	_, err = engine.DecideOnRequest(request, domain.RoleFinance, workflow.DecisionApprove,
		workflow.DecisionParams{AmountApproved: decPtr(10000)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestDecideOnRequest_InvalidDecisions(t *testing.T) {
	engine := workflow.NewEngine(workflow.DefaultBureauEscalationThreshold)
	request := pendingRequest(10000)

	_, err := engine.DecideOnRequest(request, domain.RoleFinance, workflow.DecisionReject,
		workflow.DecisionParams{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDecision)

	_, err = engine.DecideOnRequest(request, domain.RoleFinance, workflow.DecisionApprove,
		workflow.DecisionParams{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDecision)

	_, err = engine.DecideOnRequest(request, domain.RoleFinance, workflow.DecisionApprove,
		workflow.DecisionParams{AmountApproved: decPtr(-5)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDecision)

	// The input record is untouched by a failed decision.
	assert.Equal(t, domain.StatusSubmittedFinance, request.Status)
	assert.Nil(t, request.AmountApproved)
}

func TestBeginFinanceReview(t *testing.T) {
	request := pendingRequest(10000)
	reviewed, err := workflow.BeginFinanceReview(request)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnderFinanceReview, reviewed.Status)

	_, err = workflow.BeginFinanceReview(reviewed)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestDecideOnRequest_FromUnderFinanceReview(t *testing.T) {
	engine := workflow.NewEngine(workflow.DefaultBureauEscalationThreshold)

	request := pendingRequest(20000)
	request.Status = domain.StatusUnderFinanceReview
	decided, err := engine.DecideOnRequest(request, domain.RoleFinance, workflow.DecisionApprove,
		workflow.DecisionParams{AmountApproved: decPtr(20000)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, decided.Status)
}

func TestScenarioE_NegativeBalanceReportStillCloses(t *testing.T) {
	report := domain.CommissionFinancialReport{
		ReportID:             "rep-1",
		Commission:           domain.CommissionSocial,
		TotalBudgetAllocated: dec(500000),
		Expenses: []domain.ExpenseLine{
			{Category: "aid", Amount: dec(400000)},
			{Category: "transport", Amount: dec(220000)},
		},
		Status: domain.ReportSubmitted,
	}

	totalExpenses, balance := workflow.ComputeReportBalance(report)
	assert.True(t, totalExpenses.Equal(dec(620000)))
	assert.True(t, balance.Equal(dec(-120000)))

	closed, err := workflow.DecideOnReport(report, workflow.ReportValidate, "")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportClosed, closed.Status)
}

func TestDecideOnReport_RejectRecordsNote(t *testing.T) {
	report := domain.CommissionFinancialReport{
		ReportID: "rep-2",
		Status:   domain.ReportUnderFinanceReview,
	}

	rejected, err := workflow.DecideOnReport(report, workflow.ReportReject, "Justificatifs manquants")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportRejected, rejected.Status)
	assert.Equal(t, "Justificatifs manquants", rejected.ReviewNote)

	_, err = workflow.DecideOnReport(rejected, workflow.ReportValidate, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestSubmitReport(t *testing.T) {
	report := domain.CommissionFinancialReport{ReportID: "rep-3", Status: domain.ReportDraft}

	submitted, err := workflow.SubmitReport(report)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportSubmitted, submitted.Status)

	_, err = workflow.SubmitReport(submitted)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestRequestPartitioning(t *testing.T) {
	requests := []domain.BudgetRequest{
		{RequestID: "a", Commission: domain.CommissionHealth, Status: domain.StatusSubmittedFinance},
		{RequestID: "b", Commission: domain.CommissionCulture, Status: domain.StatusUnderFinanceReview},
		{RequestID: "c", Commission: domain.CommissionHealth, Status: domain.StatusSubmittedBureau},
		{RequestID: "d", Commission: domain.CommissionHealth, Status: domain.StatusApproved},
		{RequestID: "e", Commission: domain.CommissionTransport, Status: domain.StatusRejected},
	}

	pending := workflow.PendingRequests(requests)
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].RequestID)
	assert.Equal(t, "b", pending[1].RequestID)

	// Escalated requests count as processed: finance has moved them along.
	processed := workflow.ProcessedRequests(requests)
	require.Len(t, processed, 3)
	assert.Equal(t, "c", processed[0].RequestID)

	health := workflow.FilterRequestsByCommission(requests, domain.CommissionHealth)
	require.Len(t, health, 3)
	assert.Equal(t, "a", health[0].RequestID)
	assert.Equal(t, "c", health[1].RequestID)
	assert.Equal(t, "d", health[2].RequestID)
}

func TestEngineDefaultThresholdFallback(t *testing.T) {
	engine := workflow.NewEngine(decimal.Zero)
	assert.True(t, engine.Threshold().Equal(workflow.DefaultBureauEscalationThreshold))
}
