package handlers

import (
	"github.com/dahira-app/dahira_backend/internal/core/domain"
	portssvc "github.com/dahira-app/dahira_backend/internal/core/ports/services"
	"github.com/dahira-app/dahira_backend/internal/middleware"
	"github.com/dahira-app/dahira_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, cfg, services.User)

	// API v1 routes behind JWT auth
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	RegisterBudgetRequestRoutes(v1, services.BudgetRequest)
	registerFinancialReportRoutes(v1, services.FinancialReport)
	registerUserRoutes(v1, services.User)
}

// hasReviewerRole reports whether the authenticated user's token carries the
// portal role matching the claimed reviewer role.
func hasReviewerRole(c *gin.Context, role domain.ReviewerRole) bool {
	var required domain.UserRole
	switch role {
	case domain.RoleFinance:
		required = domain.UserRoleFinance
	case domain.RoleBureau:
		required = domain.UserRoleBureau
	default:
		return false
	}
	for _, r := range middleware.GetUserRolesFromContext(c) {
		if r == required {
			return true
		}
	}
	return false
}
