package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dahira-app/dahira_backend/internal/apperrors"
	"github.com/dahira-app/dahira_backend/internal/core/domain"
	portsrepo "github.com/dahira-app/dahira_backend/internal/core/ports/repositories"
	"github.com/dahira-app/dahira_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type budgetRequestRepository struct {
	baseRepository
}

// NewBudgetRequestRepository creates a new repository for budget request data.
func NewBudgetRequestRepository(pool *pgxpool.Pool) portsrepo.BudgetRequestRepositoryFacade {
	return &budgetRequestRepository{baseRepository{pool: pool}}
}

var _ portsrepo.BudgetRequestRepositoryFacade = (*budgetRequestRepository)(nil)

// SaveBudgetRequest inserts a newly submitted budget request.
// The breakdown is stored as a JSONB document.
func (r *budgetRequestRepository) SaveBudgetRequest(ctx context.Context, request domain.BudgetRequest) error {
	breakdownJSON, err := json.Marshal(request.Breakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown for request %s: %w", request.RequestID, err)
	}

	var timelineStart, timelineEnd *time.Time
	if request.Timeline != nil {
		timelineStart = &request.Timeline.StartDate
		timelineEnd = &request.Timeline.EndDate
	}

	query := `
		INSERT INTO budget_requests (
			request_id, commission, title, description, category, priority,
			breakdown, amount_requested, amount_approved, status, rejection_reason,
			submitted_by, submitted_at, timeline_start, timeline_end, expected_outcomes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = r.pool.Exec(ctx, query,
		request.RequestID,
		request.Commission,
		request.Title,
		request.Description,
		request.Category,
		request.Priority,
		breakdownJSON,
		request.AmountRequested,
		request.AmountApproved,
		request.Status,
		nullableString(request.RejectionReason),
		request.SubmittedBy,
		request.SubmittedAt,
		timelineStart,
		timelineEnd,
		request.ExpectedOutcomes,
		request.CreatedAt,
		request.CreatedBy,
		request.LastUpdatedAt,
		request.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save budget request %s: %w", request.RequestID, err)
	}
	return nil
}

const budgetRequestColumns = `
	request_id, commission, title, description, category, priority,
	breakdown, amount_requested, amount_approved, status, rejection_reason,
	submitted_by, submitted_at, timeline_start, timeline_end, expected_outcomes,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanBudgetRequest(row pgx.Row) (*domain.BudgetRequest, error) {
	var request domain.BudgetRequest
	var breakdownJSON []byte
	var amountApproved *decimal.Decimal
	var rejectionReason *string
	var timelineStart, timelineEnd *time.Time

	err := row.Scan(
		&request.RequestID,
		&request.Commission,
		&request.Title,
		&request.Description,
		&request.Category,
		&request.Priority,
		&breakdownJSON,
		&request.AmountRequested,
		&amountApproved,
		&request.Status,
		&rejectionReason,
		&request.SubmittedBy,
		&request.SubmittedAt,
		&timelineStart,
		&timelineEnd,
		&request.ExpectedOutcomes,
		&request.CreatedAt,
		&request.CreatedBy,
		&request.LastUpdatedAt,
		&request.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(breakdownJSON, &request.Breakdown); err != nil {
		return nil, fmt.Errorf("failed to unmarshal breakdown for request %s: %w", request.RequestID, err)
	}
	request.AmountApproved = amountApproved
	if rejectionReason != nil {
		request.RejectionReason = *rejectionReason
	}
	if timelineStart != nil && timelineEnd != nil {
		request.Timeline = &domain.Timeline{StartDate: *timelineStart, EndDate: *timelineEnd}
	}
	return &request, nil
}

// FindBudgetRequestByID retrieves a budget request by its ID.
func (r *budgetRequestRepository) FindBudgetRequestByID(ctx context.Context, requestID string) (*domain.BudgetRequest, error) {
	query := `SELECT ` + budgetRequestColumns + ` FROM budget_requests WHERE request_id = $1;`

	request, err := scanBudgetRequest(r.pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: budget request %s", apperrors.ErrNotFound, requestID)
		}
		return nil, fmt.Errorf("failed to find budget request %s: %w", requestID, err)
	}
	return request, nil
}

// ListBudgetRequests retrieves a page of budget requests matching the filter,
// newest submissions first, using keyset pagination on (submitted_at, request_id).
func (r *budgetRequestRepository) ListBudgetRequests(ctx context.Context, filter portsrepo.BudgetRequestFilter, limit int, nextToken *string) ([]domain.BudgetRequest, *string, error) {
	query := `SELECT ` + budgetRequestColumns + ` FROM budget_requests WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Commission != "" {
		query += fmt.Sprintf(" AND commission = $%d", argPos)
		args = append(args, filter.Commission)
		argPos++
	}
	if len(filter.Statuses) > 0 {
		query += fmt.Sprintf(" AND status = ANY($%d)", argPos)
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		argPos++
	}
	if nextToken != nil && *nextToken != "" {
		submittedAt, requestID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(" AND (submitted_at, request_id) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, submittedAt, requestID)
		argPos += 2
	}

	// Fetch one extra row to detect whether another page exists.
	query += fmt.Sprintf(" ORDER BY submitted_at DESC, request_id DESC LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list budget requests: %w", err)
	}
	defer rows.Close()

	requests := make([]domain.BudgetRequest, 0, limit)
	for rows.Next() {
		request, err := scanBudgetRequest(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan budget request row: %w", err)
		}
		requests = append(requests, *request)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating budget request rows: %w", err)
	}

	var token *string
	if len(requests) > limit {
		requests = requests[:limit]
		last := requests[limit-1]
		t := pagination.EncodeToken(last.SubmittedAt, last.RequestID)
		token = &t
	}
	return requests, token, nil
}

// UpdateBudgetRequestStatus persists a status transition, guarded on the
// expected prior status so racing reviewers cannot double-apply a decision.
func (r *budgetRequestRepository) UpdateBudgetRequestStatus(ctx context.Context, request domain.BudgetRequest, expectedStatus domain.RequestStatus) error {
	query := `
		UPDATE budget_requests
		SET status = $1, amount_approved = $2, rejection_reason = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE request_id = $6 AND status = $7;
	`
	tag, err := r.pool.Exec(ctx, query,
		request.Status,
		request.AmountApproved,
		nullableString(request.RejectionReason),
		request.LastUpdatedAt,
		request.LastUpdatedBy,
		request.RequestID,
		expectedStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget request %s: %w", request.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: budget request %s is no longer in status %s",
			apperrors.ErrInvalidTransition, request.RequestID, expectedStatus)
	}
	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
