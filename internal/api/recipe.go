package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateshare/backend/internal/middleware"
	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
	authService   *service.AuthService
	imageStore    service.ImageStore
	limiter       *middleware.RateLimiter
}

func NewRecipeHandler(recipeService *service.RecipeService, authService *service.AuthService, imageStore service.ImageStore, limiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
		imageStore:    imageStore,
		limiter:       limiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListPublished)

		auth := middleware.AuthMiddleware(h.authService)
		if h.limiter != nil {
			recipes.POST("", auth, h.limiter.RateLimitMiddleware(), h.SubmitRecipe)
		} else {
			recipes.POST("", auth, h.SubmitRecipe)
		}
		recipes.GET("/mine", auth, h.ListMine)
		recipes.GET("/:id", h.GetRecipe)
		recipes.DELETE("/:id", auth, h.DeleteRecipe)
		if h.imageStore != nil {
			recipes.POST("/:id/image", auth, h.UploadImage)
		}
	}
}

// ListPublished serves the public recipe listing: approved and published
// only.
func (h *RecipeHandler) ListPublished(c *gin.Context) {
	recipes, err := h.recipeService.ListPublished(c.Request.Context())
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

func (h *RecipeHandler) SubmitRecipe(c *gin.Context) {
	var req SubmitRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return
	}

	recipeID, err := h.recipeService.SubmitRecipe(c.Request.Context(), userID.(uuid.UUID), service.SubmitRecipeInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Difficulty:      req.Difficulty,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		ImageURL:        req.ImageURL,
		Ingredients:     req.Ingredients,
		Instructions:    req.Instructions,
		Tags:            req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"recipeId": recipeID.String(),
	})
}

// GetRecipe serves one recipe. Unpublished recipes are only visible to
// their author and to moderators.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	visible := recipe.ModerationStatus == models.ModerationApproved && recipe.IsPublished
	if !visible && !h.canSeeUnpublished(c, recipe.AuthorID) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": recipe})
}

func (h *RecipeHandler) ListMine(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "user not authenticated"})
		return
	}

	recipes, err := h.recipeService.ListByAuthor(c.Request.Context(), userID.(uuid.UUID))
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

// DeleteRecipe removes a recipe; allowed for the author and for admins.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	userID, _ := c.Get("user_id")
	role, _ := c.Get("role")
	isAuthor := userID != nil && recipe.AuthorID == userID.(uuid.UUID).String()
	isAdmin := role == models.RoleAdmin || role == models.RoleOwner
	if !isAuthor && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "not allowed to delete this recipe"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipeId": id.String()})
}

// UploadImage stores a new image for a recipe and records its URL. Only the
// recipe's author may replace its image.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	userID, _ := c.Get("user_id")
	if userID == nil || recipe.AuthorID != userID.(uuid.UUID).String() {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "only the author may change the recipe image"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "image file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "could not read image file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.imageStore.Upload(c.Request.Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "image upload failed"})
		return
	}

	if err := h.recipeService.SetImageURL(c.Request.Context(), id, url); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "imageUrl": url})
}

func (h *RecipeHandler) canSeeUnpublished(c *gin.Context, authorID string) bool {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
		return false
	}
	claims, err := h.authService.ValidateToken(authHeader[7:])
	if err != nil {
		return false
	}
	if claims.UserID.String() == authorID {
		return true
	}
	switch claims.Role {
	case models.RoleModerator, models.RoleAdmin, models.RoleOwner:
		return true
	}
	return false
}
