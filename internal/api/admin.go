package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateshare/backend/internal/middleware"
	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
)

// AdminHandler serves the admin dashboard aggregates.
type AdminHandler struct {
	adminService *service.AdminService
	authService  *service.AuthService
}

func NewAdminHandler(adminService *service.AdminService, authService *service.AuthService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		authService:  authService,
	}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(h.authService), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/stats", h.GetStats)
	}
}

// GetStats never fails: the aggregation service degrades missing figures to
// zero.
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats := h.adminService.Stats(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
