package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateshare/backend/config"
	"github.com/plateshare/backend/internal/service"
)

// SubmitRecipeRequest is the JSON body accepted by POST /recipes.
type SubmitRecipeRequest struct {
	Title           string                     `json:"title"`
	Description     string                     `json:"description"`
	Category        string                     `json:"category"`
	Difficulty      string                     `json:"difficulty"`
	PrepTimeMinutes int                        `json:"prep_time_minutes"`
	CookTimeMinutes int                        `json:"cook_time_minutes"`
	Servings        int                        `json:"servings"`
	ImageURL        string                     `json:"image_url"`
	Ingredients     []service.IngredientInput  `json:"ingredients"`
	Instructions    []service.InstructionInput `json:"instructions"`
	Tags            []string                   `json:"tags"`
}

// ModerateRequest is the JSON body accepted by POST /moderation/decide.
type ModerateRequest struct {
	RecipeID string `json:"recipeId"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

// RegisterRequest is the JSON body accepted by POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the JSON body accepted by POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// respondError maps a service error to its HTTP status and writes the
// failure envelope. Storage details are only exposed outside production.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		storageErr    *service.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": notFoundErr.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
	case errors.As(err, &storageErr):
		body := gin.H{"success": false, "error": "storage failure"}
		if config.GetEnvironment() != config.Production {
			body["details"] = storageErr.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	default:
		body := gin.H{"success": false, "error": "internal error"}
		if config.GetEnvironment() != config.Production {
			body["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}
