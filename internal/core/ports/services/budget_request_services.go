package services

import (
	"context"

	"github.com/dahira-app/dahira_backend/internal/core/domain"
	"github.com/dahira-app/dahira_backend/internal/dto"
)

// BudgetRequestReaderSvc defines read operations for budget requests.
type BudgetRequestReaderSvc interface {
	// GetBudgetRequestByID retrieves a specific budget request by its ID.
	GetBudgetRequestByID(ctx context.Context, requestID string) (*domain.BudgetRequest, error)

	// ListBudgetRequests retrieves a paginated list of budget requests,
	// optionally narrowed to a commission and a pending/processed view.
	ListBudgetRequests(ctx context.Context, params dto.ListBudgetRequestsParams) (*dto.ListBudgetRequestsResponse, error)
}

// BudgetRequestWriterSvc defines lifecycle operations for budget requests.
type BudgetRequestWriterSvc interface {
	// SubmitBudgetRequest normalizes the breakdown, derives the requested
	// amount, and persists a new request in SUBMITTED_FINANCE status.
	SubmitBudgetRequest(ctx context.Context, req dto.CreateBudgetRequestRequest, submitterUserID string) (*domain.BudgetRequest, error)

	// BeginFinanceReview marks a submitted request as under finance review.
	BeginFinanceReview(ctx context.Context, requestID string, reviewerUserID string) (*domain.BudgetRequest, error)

	// DecideOnRequest applies a reviewer decision and persists the transition.
	DecideOnRequest(ctx context.Context, requestID string, req dto.RequestDecisionRequest, reviewerUserID string) (*domain.BudgetRequest, error)
}

// BudgetRequestSvcFacade combines all budget request service interfaces.
type BudgetRequestSvcFacade interface {
	BudgetRequestReaderSvc
	BudgetRequestWriterSvc
}
