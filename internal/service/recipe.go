package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/plateshare/backend/internal/models"
	"gorm.io/gorm"
)

const publishedPageSize = 20

// RecipeService handles recipe submission and reads.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// IngredientInput is one candidate ingredient line from a submission.
type IngredientInput struct {
	Ingredient string `json:"ingredient"`
	Amount     string `json:"amount"`
	Unit       string `json:"unit"`
}

// InstructionInput is one candidate step from a submission.
type InstructionInput struct {
	Instruction string `json:"instruction"`
	StepNumber  int    `json:"step_number"`
}

// SubmitRecipeInput is the full submission payload.
type SubmitRecipeInput struct {
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Category        string             `json:"category"`
	Difficulty      string             `json:"difficulty"`
	PrepTimeMinutes int                `json:"prep_time_minutes"`
	CookTimeMinutes int                `json:"cook_time_minutes"`
	Servings        int                `json:"servings"`
	ImageURL        string             `json:"image_url"`
	Ingredients     []IngredientInput  `json:"ingredients"`
	Instructions    []InstructionInput `json:"instructions"`
	Tags            []string           `json:"tags"`
}

func validDifficulty(d string) bool {
	switch d {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return true
	}
	return false
}

// SubmitRecipe persists a new recipe with its child rows as one transaction.
// The recipe always starts in pending status, unpublished. Malformed child
// rows (an ingredient missing name, amount or unit; an instruction missing
// text or a step number; an empty tag) are skipped, not rejected.
func (s *RecipeService) SubmitRecipe(ctx context.Context, authorID uuid.UUID, in SubmitRecipeInput) (uuid.UUID, error) {
	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)
	if title == "" {
		return uuid.Nil, NewValidationError("title is required")
	}
	if category == "" {
		return uuid.Nil, NewValidationError("category is required")
	}
	if !validDifficulty(in.Difficulty) {
		return uuid.Nil, NewValidationError("difficulty must be one of Easy, Medium, Hard")
	}

	recipe := models.Recipe{
		ID:               uuid.New(),
		Title:            title,
		Description:      strings.TrimSpace(in.Description),
		AuthorID:         authorID,
		Category:         category,
		Difficulty:       in.Difficulty,
		PrepTimeMinutes:  in.PrepTimeMinutes,
		CookTimeMinutes:  in.CookTimeMinutes,
		Servings:         in.Servings,
		ImageURL:         in.ImageURL,
		ModerationStatus: models.ModerationPending,
		IsPublished:      false,
	}
	if recipe.PrepTimeMinutes < 0 {
		recipe.PrepTimeMinutes = 0
	}
	if recipe.CookTimeMinutes < 0 {
		recipe.CookTimeMinutes = 0
	}
	if recipe.Servings < 1 {
		recipe.Servings = 1
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}

		orderIndex := 0
		for _, ing := range in.Ingredients {
			name := strings.TrimSpace(ing.Ingredient)
			amount := strings.TrimSpace(ing.Amount)
			unit := strings.TrimSpace(ing.Unit)
			if name == "" || amount == "" || unit == "" {
				continue
			}
			row := models.RecipeIngredient{
				RecipeID:   recipe.ID,
				Ingredient: name,
				Amount:     amount,
				Unit:       unit,
				OrderIndex: orderIndex,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			orderIndex++
		}

		for _, step := range in.Instructions {
			text := strings.TrimSpace(step.Instruction)
			if text == "" || step.StepNumber <= 0 {
				continue
			}
			row := models.RecipeInstruction{
				RecipeID:    recipe.ID,
				Instruction: text,
				StepNumber:  step.StepNumber,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		for _, tag := range in.Tags {
			t := strings.TrimSpace(tag)
			if t == "" {
				continue
			}
			row := models.RecipeTag{RecipeID: recipe.ID, Tag: t}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, &StorageError{Op: "submit recipe", Err: err}
	}

	return recipe.ID, nil
}

// GetRecipe loads one recipe with author and children.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*RecipeDetail, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients").
		Preload("Instructions").
		Preload("Tags").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "recipe", ID: id.String()}
		}
		return nil, &StorageError{Op: "get recipe", Err: err}
	}
	return toRecipeDetail(&recipe), nil
}

// ListPublished returns publicly visible recipes, newest first. Both the
// status and the publish flag are checked: the flag alone is never trusted.
func (s *RecipeService) ListPublished(ctx context.Context) ([]*RecipeDetail, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients").
		Preload("Instructions").
		Preload("Tags").
		Where("moderation_status = ? AND is_published = ?", models.ModerationApproved, true).
		Order("created_at DESC").
		Limit(publishedPageSize).
		Find(&recipes).Error
	if err != nil {
		return nil, &StorageError{Op: "list published recipes", Err: err}
	}

	result := make([]*RecipeDetail, 0, len(recipes))
	for i := range recipes {
		result = append(result, toRecipeDetail(&recipes[i]))
	}
	return result, nil
}

// ListByAuthor returns all of one author's recipes regardless of status,
// newest first.
func (s *RecipeService) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*RecipeDetail, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients").
		Preload("Instructions").
		Preload("Tags").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, &StorageError{Op: "list author recipes", Err: err}
	}

	result := make([]*RecipeDetail, 0, len(recipes))
	for i := range recipes {
		result = append(result, toRecipeDetail(&recipes[i]))
	}
	return result, nil
}

// SetImageURL stores a new image reference on an existing recipe.
func (s *RecipeService) SetImageURL(ctx context.Context, id uuid.UUID, url string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ?", id).
		Update("image_url", url)
	if result.Error != nil {
		return &StorageError{Op: "set recipe image", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "recipe", ID: id.String()}
	}
	return nil
}

// DeleteRecipe removes a recipe and all of its child rows in one
// transaction.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "recipe", ID: id.String()}
		}
		return &StorageError{Op: "delete recipe", Err: err}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RecipeIngredient{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.RecipeInstruction{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.RecipeTag{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
	if err != nil {
		return &StorageError{Op: "delete recipe", Err: err}
	}
	return nil
}
