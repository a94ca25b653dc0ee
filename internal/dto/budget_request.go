package dto

import (
	"time"

	"github.com/dahira-app/dahira_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BreakdownLineRequest is one itemized cost entry in a submission.
// Line totals are derived server-side; any client-supplied total is ignored.
type BreakdownLineRequest struct {
	Item          string          `json:"item" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost      decimal.Decimal `json:"unitCost" binding:"required"`
	Justification string          `json:"justification"`
}

// TimelineRequest is the optional planned execution window.
type TimelineRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required,gtefield=StartDate"`
}

// CreateBudgetRequestRequest defines the data needed to submit a budget request.
// An empty breakdown is accepted and yields a requested amount of zero.
type CreateBudgetRequestRequest struct {
	Commission       domain.Commission      `json:"commission" binding:"required"`
	Title            string                 `json:"title" binding:"required"`
	Description      string                 `json:"description"`
	Category         domain.RequestCategory `json:"category" binding:"required,oneof=EVENT PROJECT EQUIPMENT EMERGENCY"`
	Priority         domain.RequestPriority `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH URGENT"`
	Breakdown        []BreakdownLineRequest `json:"breakdown"`
	Timeline         *TimelineRequest       `json:"timeline"`
	ExpectedOutcomes string                 `json:"expectedOutcomes"`
}

// RequestDecisionRequest defines a reviewer decision on a budget request.
type RequestDecisionRequest struct {
	ReviewerRole    domain.ReviewerRole `json:"reviewerRole" binding:"required,oneof=FINANCE BUREAU"`
	Decision        string              `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	AmountApproved  *decimal.Decimal    `json:"amountApproved"`
	RejectionReason string              `json:"rejectionReason"`
}

// ListBudgetRequestsParams defines query parameters for listing budget requests.
// View narrows to "pending" (awaiting a finance decision) or "processed"
// (everything else, escalated requests included).
type ListBudgetRequestsParams struct {
	Commission string  `form:"commission"`
	View       string  `form:"view" binding:"omitempty,oneof=pending processed"`
	Limit      int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  *string `form:"nextToken"`
}

// BudgetRequestResponse defines the data returned for a budget request.
type BudgetRequestResponse struct {
	RequestID        string                 `json:"requestID"`
	Commission       domain.Commission      `json:"commission"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	Category         domain.RequestCategory `json:"category"`
	Priority         domain.RequestPriority `json:"priority"`
	Breakdown        []domain.BreakdownLine `json:"breakdown"`
	AmountRequested  decimal.Decimal        `json:"amountRequested"`
	AmountApproved   *decimal.Decimal       `json:"amountApproved,omitempty"`
	Status           domain.RequestStatus   `json:"status"`
	RejectionReason  string                 `json:"rejectionReason,omitempty"`
	SubmittedBy      string                 `json:"submittedBy"`
	SubmittedAt      time.Time              `json:"submittedAt"`
	Timeline         *domain.Timeline       `json:"timeline,omitempty"`
	ExpectedOutcomes string                 `json:"expectedOutcomes"`
	LastUpdatedAt    time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy    string                 `json:"lastUpdatedBy"`
}

// ListBudgetRequestsResponse wraps a page of budget requests.
type ListBudgetRequestsResponse struct {
	Requests  []BudgetRequestResponse `json:"requests"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToBudgetRequestResponse converts a domain.BudgetRequest to its response DTO.
func ToBudgetRequestResponse(request *domain.BudgetRequest) BudgetRequestResponse {
	return BudgetRequestResponse{
		RequestID:        request.RequestID,
		Commission:       request.Commission,
		Title:            request.Title,
		Description:      request.Description,
		Category:         request.Category,
		Priority:         request.Priority,
		Breakdown:        request.Breakdown,
		AmountRequested:  request.AmountRequested,
		AmountApproved:   request.AmountApproved,
		Status:           request.Status,
		RejectionReason:  request.RejectionReason,
		SubmittedBy:      request.SubmittedBy,
		SubmittedAt:      request.SubmittedAt,
		Timeline:         request.Timeline,
		ExpectedOutcomes: request.ExpectedOutcomes,
		LastUpdatedAt:    request.LastUpdatedAt,
		LastUpdatedBy:    request.LastUpdatedBy,
	}
}

// ToListBudgetRequestsResponse converts a page of domain requests to the list DTO.
func ToListBudgetRequestsResponse(requests []domain.BudgetRequest, nextToken *string) *ListBudgetRequestsResponse {
	res := make([]BudgetRequestResponse, len(requests))
	for i := range requests {
		res[i] = ToBudgetRequestResponse(&requests[i])
	}
	return &ListBudgetRequestsResponse{Requests: res, NextToken: nextToken}
}
