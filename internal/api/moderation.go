package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateshare/backend/internal/middleware"
	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
)

type ModerationHandler struct {
	moderationService *service.ModerationService
	authService       *service.AuthService
}

func NewModerationHandler(moderationService *service.ModerationService, authService *service.AuthService) *ModerationHandler {
	return &ModerationHandler{
		moderationService: moderationService,
		authService:       authService,
	}
}

func (h *ModerationHandler) RegisterRoutes(router *gin.RouterGroup) {
	moderation := router.Group("/moderation")
	moderation.Use(middleware.AuthMiddleware(h.authService), middleware.RequireRole(models.RoleModerator))
	{
		moderation.GET("/pending", h.ListPending)
		moderation.POST("/decide", h.Moderate)
	}
}

// ListPending serves the moderation queue, oldest submission first.
func (h *ModerationHandler) ListPending(c *gin.Context) {
	recipes, err := h.moderationService.PendingQueue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"recipes": recipes,
		"count":   len(recipes),
	})
}

func (h *ModerationHandler) Moderate(c *gin.Context) {
	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if req.RecipeID == "" || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "recipeId and status are required"})
		return
	}

	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid recipe id"})
		return
	}

	recipe, err := h.moderationService.ModerateRecipe(c.Request.Context(), recipeID, req.Status, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"recipe": gin.H{
			"id":           recipe.ID,
			"title":        recipe.Title,
			"status":       recipe.ModerationStatus,
			"is_published": recipe.IsPublished,
		},
	})
}
