package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dahira-app/dahira_backend/internal/apperrors"
	portssvc "github.com/dahira-app/dahira_backend/internal/core/ports/services"
	"github.com/dahira-app/dahira_backend/internal/dto"
	"github.com/dahira-app/dahira_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetRequestHandler handles HTTP requests related to budget requests.
type budgetRequestHandler struct {
	requestService portssvc.BudgetRequestSvcFacade
}

// newBudgetRequestHandler creates a new budgetRequestHandler.
func newBudgetRequestHandler(requestService portssvc.BudgetRequestSvcFacade) *budgetRequestHandler {
	return &budgetRequestHandler{requestService: requestService}
}

// submitBudgetRequest godoc
// @Summary Submit a budget request
// @Description Submits a new budget request on behalf of a commission; line totals and the requested amount are derived server-side
// @Tags budget-requests
// @Accept json
// @Produce json
// @Param request body dto.CreateBudgetRequestRequest true "Budget request"
// @Success 201 {object} dto.BudgetRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /budget-requests [post]
func (h *budgetRequestHandler) submitBudgetRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBudgetRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for submitBudgetRequest", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	submitterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	request, err := h.requestService.SubmitBudgetRequest(c.Request.Context(), req, submitterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrInvalidBreakdownLine) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to submit budget request", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to submit budget request"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToBudgetRequestResponse(request))
}

// getBudgetRequest godoc
// @Summary Get a budget request
// @Description Retrieves a budget request by ID
// @Tags budget-requests
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} dto.BudgetRequestResponse
// @Failure 404 {object} ErrorResponse
// @Router /budget-requests/{requestID} [get]
func (h *budgetRequestHandler) getBudgetRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	request, err := h.requestService.GetBudgetRequestByID(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Budget request not found"})
			return
		}
		logger.Error("Failed to get budget request", slog.String("error", err.Error()), slog.String("request_id", requestID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve budget request"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetRequestResponse(request))
}

// listBudgetRequests godoc
// @Summary List budget requests
// @Description Lists budget requests, optionally narrowed to a commission and a pending/processed view
// @Tags budget-requests
// @Produce json
// @Param commission query string false "Commission tag"
// @Param view query string false "pending or processed"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListBudgetRequestsResponse
// @Failure 400 {object} ErrorResponse
// @Router /budget-requests [get]
func (h *budgetRequestHandler) listBudgetRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListBudgetRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	resp, err := h.requestService.ListBudgetRequests(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list budget requests", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list budget requests"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// beginFinanceReview godoc
// @Summary Begin finance review
// @Description Marks a submitted budget request as under finance review
// @Tags budget-requests
// @Produce json
// @Param requestID path string true "Request ID"
// @Success 200 {object} dto.BudgetRequestResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /budget-requests/{requestID}/review [post]
func (h *budgetRequestHandler) beginFinanceReview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	reviewerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	request, err := h.requestService.BeginFinanceReview(c.Request.Context(), requestID, reviewerUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Budget request not found"})
		case errors.Is(err, apperrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to begin finance review", slog.String("error", err.Error()), slog.String("request_id", requestID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to begin finance review"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetRequestResponse(request))
}

// decideOnRequest godoc
// @Summary Decide on a budget request
// @Description Applies a finance or bureau decision (approve/reject) to a budget request
// @Tags budget-requests
// @Accept json
// @Produce json
// @Param requestID path string true "Request ID"
// @Param decision body dto.RequestDecisionRequest true "Decision"
// @Success 200 {object} dto.BudgetRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /budget-requests/{requestID}/decision [post]
func (h *budgetRequestHandler) decideOnRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	var req dto.RequestDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	reviewerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	// The token must carry the role the caller claims to decide with.
	if !hasReviewerRole(c, req.ReviewerRole) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions for reviewer role"})
		return
	}

	request, err := h.requestService.DecideOnRequest(c.Request.Context(), requestID, req, reviewerUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Budget request not found"})
		case errors.Is(err, apperrors.ErrInvalidDecision):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to decide on budget request", slog.String("error", err.Error()), slog.String("request_id", requestID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to apply decision"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetRequestResponse(request))
}

// RegisterBudgetRequestRoutes registers budget request specific routes.
func RegisterBudgetRequestRoutes(group *gin.RouterGroup, requestService portssvc.BudgetRequestSvcFacade) {
	h := newBudgetRequestHandler(requestService)

	requests := group.Group("/budget-requests")
	{
		requests.POST("", h.submitBudgetRequest)
		requests.GET("", h.listBudgetRequests)
		requests.GET("/:requestID", h.getBudgetRequest)
		requests.POST("/:requestID/review", h.beginFinanceReview)
		requests.POST("/:requestID/decision", h.decideOnRequest)
	}
}
