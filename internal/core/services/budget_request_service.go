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

// budgetRequestService orchestrates budget request persistence around the
// pure workflow engine: it fetches the current record, applies the engine's
// transition, and writes back the result.
type budgetRequestService struct {
	engine      workflow.Engine
	requestRepo portsrepo.BudgetRequestRepositoryFacade
}

// NewBudgetRequestService creates a new budget request service.
func NewBudgetRequestService(engine workflow.Engine, requestRepo portsrepo.BudgetRequestRepositoryFacade) portssvc.BudgetRequestSvcFacade {
	return &budgetRequestService{
		engine:      engine,
		requestRepo: requestRepo,
	}
}

var _ portssvc.BudgetRequestSvcFacade = (*budgetRequestService)(nil)

// SubmitBudgetRequest normalizes the breakdown, derives the requested amount,
// and persists a new request in SUBMITTED_FINANCE status. The submitter
// identity is supplied by the caller; the service never resolves it itself.
func (s *budgetRequestService) SubmitBudgetRequest(ctx context.Context, req dto.CreateBudgetRequestRequest, submitterUserID string) (*domain.BudgetRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Commission.IsValid() {
		return nil, fmt.Errorf("%w: unknown commission %q", apperrors.ErrValidation, req.Commission)
	}

	breakdown := make([]domain.BreakdownLine, len(req.Breakdown))
	for i, line := range req.Breakdown {
		breakdown[i] = domain.BreakdownLine{
			Item:          line.Item,
			Quantity:      line.Quantity,
			UnitCost:      line.UnitCost,
			Justification: line.Justification,
		}
	}

	// Line totals and the requested amount are always derived here, never
	// taken from the client.
	normalized, amountRequested, err := workflow.NormalizeBreakdown(breakdown)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	request := domain.BudgetRequest{
		RequestID:        uuid.NewString(),
		Commission:       req.Commission,
		Title:            req.Title,
		Description:      req.Description,
		Category:         req.Category,
		Priority:         req.Priority,
		Breakdown:        normalized,
		AmountRequested:  amountRequested,
		Status:           domain.StatusSubmittedFinance,
		SubmittedBy:      submitterUserID,
		SubmittedAt:      now,
		ExpectedOutcomes: req.ExpectedOutcomes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     submitterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: submitterUserID,
		},
	}
	if req.Timeline != nil {
		request.Timeline = &domain.Timeline{
			StartDate: req.Timeline.StartDate,
			EndDate:   req.Timeline.EndDate,
		}
	}

	if err := s.requestRepo.SaveBudgetRequest(ctx, request); err != nil {
		logger.Error("Failed to save budget request", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save budget request: %w", err)
	}

	logger.Info("Budget request submitted",
		slog.String("request_id", request.RequestID),
		slog.String("commission", string(request.Commission)),
		slog.String("amount_requested", request.AmountRequested.String()),
	)
	return &request, nil
}

// GetBudgetRequestByID retrieves a specific budget request by its ID.
func (s *budgetRequestService) GetBudgetRequestByID(ctx context.Context, requestID string) (*domain.BudgetRequest, error) {
	request, err := s.requestRepo.FindBudgetRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget request %s: %w", requestID, err)
	}
	return request, nil
}

// ListBudgetRequests retrieves a paginated list of budget requests.
func (s *budgetRequestService) ListBudgetRequests(ctx context.Context, params dto.ListBudgetRequestsParams) (*dto.ListBudgetRequestsResponse, error) {
	filter := portsrepo.BudgetRequestFilter{}

	if params.Commission != "" {
		commission := domain.Commission(params.Commission)
		if !commission.IsValid() {
			return nil, fmt.Errorf("%w: unknown commission %q", apperrors.ErrValidation, params.Commission)
		}
		filter.Commission = commission
	}

	switch params.View {
	case "pending":
		filter.Statuses = []domain.RequestStatus{domain.StatusSubmittedFinance, domain.StatusUnderFinanceReview}
	case "processed":
		filter.Statuses = []domain.RequestStatus{
			domain.StatusSubmittedBureau,
			domain.StatusApproved,
			domain.StatusPartiallyApproved,
			domain.StatusRejected,
		}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	requests, nextToken, err := s.requestRepo.ListBudgetRequests(ctx, filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget requests: %w", err)
	}
	return dto.ToListBudgetRequestsResponse(requests, nextToken), nil
}

// BeginFinanceReview marks a submitted request as under finance review.
func (s *budgetRequestService) BeginFinanceReview(ctx context.Context, requestID string, reviewerUserID string) (*domain.BudgetRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.requestRepo.FindBudgetRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget request %s: %w", requestID, err)
	}

	previousStatus := request.Status
	updated, err := workflow.BeginFinanceReview(*request)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = reviewerUserID

	if err := s.requestRepo.UpdateBudgetRequestStatus(ctx, updated, previousStatus); err != nil {
		logger.Error("Failed to begin finance review", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Finance review started", slog.String("request_id", requestID))
	return &updated, nil
}

// DecideOnRequest applies a reviewer decision and persists the transition.
// The stored breakdown is re-summed before the engine runs so a stale
// amountRequested can never decide escalation.
func (s *budgetRequestService) DecideOnRequest(ctx context.Context, requestID string, req dto.RequestDecisionRequest, reviewerUserID string) (*domain.BudgetRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.requestRepo.FindBudgetRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget request %s: %w", requestID, err)
	}

	if len(request.Breakdown) > 0 {
		request.AmountRequested = workflow.ComputeRequestTotal(request.Breakdown)
	}

	previousStatus := request.Status
	decided, err := s.engine.DecideOnRequest(*request, req.ReviewerRole, workflow.Decision(req.Decision), workflow.DecisionParams{
		AmountApproved:  req.AmountApproved,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		logger.Warn("Budget request decision refused",
			slog.String("request_id", requestID),
			slog.String("reviewer_role", string(req.ReviewerRole)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	now := time.Now().UTC()
	decided.LastUpdatedAt = now
	decided.LastUpdatedBy = reviewerUserID

	if err := s.requestRepo.UpdateBudgetRequestStatus(ctx, decided, previousStatus); err != nil {
		logger.Error("Failed to persist budget request decision", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Budget request decided",
		slog.String("request_id", requestID),
		slog.String("reviewer_role", string(req.ReviewerRole)),
		slog.String("status", string(decided.Status)),
	)
	return &decided, nil
}
