package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus indicates where a budget request sits in the approval lifecycle.
type RequestStatus string

const (
	StatusSubmittedFinance   RequestStatus = "SUBMITTED_FINANCE"
	StatusUnderFinanceReview RequestStatus = "UNDER_FINANCE_REVIEW"
	StatusSubmittedBureau    RequestStatus = "SUBMITTED_BUREAU"
	StatusApproved           RequestStatus = "APPROVED"
	StatusPartiallyApproved  RequestStatus = "PARTIALLY_APPROVED"
	StatusRejected           RequestStatus = "REJECTED"
)

// RequestCategory classifies what a budget request pays for.
type RequestCategory string

const (
	CategoryEvent     RequestCategory = "EVENT"
	CategoryProject   RequestCategory = "PROJECT"
	CategoryEquipment RequestCategory = "EQUIPMENT"
	CategoryEmergency RequestCategory = "EMERGENCY"
)

// RequestPriority expresses how urgently the submitting commission needs the funds.
type RequestPriority string

const (
	PriorityLow    RequestPriority = "LOW"
	PriorityMedium RequestPriority = "MEDIUM"
	PriorityHigh   RequestPriority = "HIGH"
	PriorityUrgent RequestPriority = "URGENT"
)

// ReviewerRole identifies which review body is acting on a request.
type ReviewerRole string

const (
	RoleFinance ReviewerRole = "FINANCE"
	RoleBureau  ReviewerRole = "BUREAU"
)

// BreakdownLine is one itemized cost entry within a budget request.
// Total must always equal Quantity * UnitCost; the workflow engine
// recomputes it on every mutation.
type BreakdownLine struct {
	Item          string          `json:"item"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	Total         decimal.Decimal `json:"total"`
	Justification string          `json:"justification"`
}

// Timeline is the planned execution window of a request, when provided.
type Timeline struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// BudgetRequest represents a commission's funding request moving through
// finance review and, above the escalation threshold, bureau review.
type BudgetRequest struct {
	RequestID        string           `json:"requestID"` // Primary Key (UUID)
	Commission       Commission       `json:"commission"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Category         RequestCategory  `json:"category"`
	Priority         RequestPriority  `json:"priority"`
	Breakdown        []BreakdownLine  `json:"breakdown"`
	AmountRequested  decimal.Decimal  `json:"amountRequested"`           // Derived: sum of breakdown totals
	AmountApproved   *decimal.Decimal `json:"amountApproved,omitempty"`  // Set only by a decision
	Status           RequestStatus    `json:"status"`
	RejectionReason  string           `json:"rejectionReason,omitempty"` // Set only on rejection
	SubmittedBy      string           `json:"submittedBy"`               // UserID, immutable after creation
	SubmittedAt      time.Time        `json:"submittedAt"`
	Timeline         *Timeline        `json:"timeline,omitempty"`
	ExpectedOutcomes string           `json:"expectedOutcomes"`
	AuditFields
}
