package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dahira-app/dahira_backend/internal/apperrors"
	"github.com/dahira-app/dahira_backend/internal/core/domain"
	portssvc "github.com/dahira-app/dahira_backend/internal/core/ports/services"
	"github.com/dahira-app/dahira_backend/internal/dto"
	"github.com/dahira-app/dahira_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// financialReportHandler handles HTTP requests related to commission financial reports.
type financialReportHandler struct {
	reportService portssvc.FinancialReportSvcFacade
}

func newFinancialReportHandler(reportService portssvc.FinancialReportSvcFacade) *financialReportHandler {
	return &financialReportHandler{reportService: reportService}
}

// createFinancialReport godoc
// @Summary Create a financial report
// @Description Opens a draft financial report for a commission; totals and balance are derived server-side
// @Tags financial-reports
// @Accept json
// @Produce json
// @Param report body dto.CreateFinancialReportRequest true "Financial report"
// @Success 201 {object} dto.FinancialReportResponse
// @Failure 400 {object} ErrorResponse
// @Router /financial-reports [post]
func (h *financialReportHandler) createFinancialReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFinancialReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	submitterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	report, err := h.reportService.CreateFinancialReport(c.Request.Context(), req, submitterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create financial report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create financial report"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToFinancialReportResponse(report))
}

// getFinancialReport godoc
// @Summary Get a financial report
// @Tags financial-reports
// @Produce json
// @Param reportID path string true "Report ID"
// @Success 200 {object} dto.FinancialReportResponse
// @Failure 404 {object} ErrorResponse
// @Router /financial-reports/{reportID} [get]
func (h *financialReportHandler) getFinancialReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reportID := c.Param("reportID")

	report, err := h.reportService.GetFinancialReportByID(c.Request.Context(), reportID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Financial report not found"})
			return
		}
		logger.Error("Failed to get financial report", slog.String("error", err.Error()), slog.String("report_id", reportID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve financial report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialReportResponse(report))
}

// listFinancialReports godoc
// @Summary List financial reports
// @Tags financial-reports
// @Produce json
// @Param commission query string false "Commission tag"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} dto.FinancialReportResponse
// @Failure 400 {object} ErrorResponse
// @Router /financial-reports [get]
func (h *financialReportHandler) listFinancialReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListFinancialReportsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	reports, err := h.reportService.ListFinancialReports(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list financial reports", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list financial reports"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListFinancialReportsResponse(reports))
}

// replaceExpenses godoc
// @Summary Replace report expenses
// @Description Replaces the expense lines of a draft report and recomputes totals
// @Tags financial-reports
// @Accept json
// @Produce json
// @Param reportID path string true "Report ID"
// @Param expenses body dto.ReplaceExpensesRequest true "Expense lines"
// @Success 200 {object} dto.FinancialReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /financial-reports/{reportID}/expenses [put]
func (h *financialReportHandler) replaceExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reportID := c.Param("reportID")

	var req dto.ReplaceExpensesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	report, err := h.reportService.ReplaceExpenses(c.Request.Context(), reportID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Financial report not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to replace report expenses", slog.String("error", err.Error()), slog.String("report_id", reportID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update expenses"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialReportResponse(report))
}

// submitFinancialReport godoc
// @Summary Submit a financial report
// @Description Moves a draft report into the finance review queue
// @Tags financial-reports
// @Produce json
// @Param reportID path string true "Report ID"
// @Success 200 {object} dto.FinancialReportResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /financial-reports/{reportID}/submit [post]
func (h *financialReportHandler) submitFinancialReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reportID := c.Param("reportID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	report, err := h.reportService.SubmitFinancialReport(c.Request.Context(), reportID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Financial report not found"})
		case errors.Is(err, apperrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to submit financial report", slog.String("error", err.Error()), slog.String("report_id", reportID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to submit report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialReportResponse(report))
}

// decideOnReport godoc
// @Summary Decide on a financial report
// @Description Validates (closes) or rejects a submitted report; requires the FINANCE role
// @Tags financial-reports
// @Accept json
// @Produce json
// @Param reportID path string true "Report ID"
// @Param decision body dto.ReportDecisionRequest true "Decision"
// @Success 200 {object} dto.FinancialReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /financial-reports/{reportID}/decision [post]
func (h *financialReportHandler) decideOnReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reportID := c.Param("reportID")

	var req dto.ReportDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	reviewerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	report, err := h.reportService.DecideOnReport(c.Request.Context(), reportID, req, reviewerUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Financial report not found"})
		case errors.Is(err, apperrors.ErrInvalidDecision):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to decide on financial report", slog.String("error", err.Error()), slog.String("report_id", reportID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to apply decision"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialReportResponse(report))
}

// registerFinancialReportRoutes registers financial report specific routes.
func registerFinancialReportRoutes(group *gin.RouterGroup, reportService portssvc.FinancialReportSvcFacade) {
	h := newFinancialReportHandler(reportService)

	reports := group.Group("/financial-reports")
	{
		reports.POST("", h.createFinancialReport)
		reports.GET("", h.listFinancialReports)
		reports.GET("/:reportID", h.getFinancialReport)
		reports.PUT("/:reportID/expenses", h.replaceExpenses)
		reports.POST("/:reportID/submit", h.submitFinancialReport)
		reports.POST("/:reportID/decision", middleware.RequireRole(domain.UserRoleFinance), h.decideOnReport)
	}
}
