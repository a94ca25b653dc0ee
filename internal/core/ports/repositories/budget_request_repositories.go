package repositories

import (
	"context"

	"github.com/dahira-app/dahira_backend/internal/core/domain"
)

// BudgetRequestFilter narrows a budget request listing. Zero values mean
// "no constraint" for that field.
type BudgetRequestFilter struct {
	Commission domain.Commission
	Statuses   []domain.RequestStatus
}

// BudgetRequestReader defines read operations for budget request data.
type BudgetRequestReader interface {
	// FindBudgetRequestByID retrieves a specific budget request by its unique identifier.
	FindBudgetRequestByID(ctx context.Context, requestID string) (*domain.BudgetRequest, error)

	// ListBudgetRequests retrieves a paginated list of budget requests matching the
	// filter, newest first, using token-based pagination. It returns the requests,
	// a token for the next page, and an error.
	ListBudgetRequests(ctx context.Context, filter BudgetRequestFilter, limit int, nextToken *string) ([]domain.BudgetRequest, *string, error)
}

// BudgetRequestWriter defines write operations for budget request data.
type BudgetRequestWriter interface {
	// SaveBudgetRequest persists a newly submitted budget request.
	SaveBudgetRequest(ctx context.Context, request domain.BudgetRequest) error

	// UpdateBudgetRequestStatus persists a status transition. The update is guarded
	// on expectedStatus: if the stored record has moved on in the meantime the
	// update applies to zero rows and apperrors.ErrInvalidTransition is returned.
	UpdateBudgetRequestStatus(ctx context.Context, request domain.BudgetRequest, expectedStatus domain.RequestStatus) error
}

// BudgetRequestRepositoryFacade combines all budget request repository interfaces.
type BudgetRequestRepositoryFacade interface {
	BudgetRequestReader
	BudgetRequestWriter
}
