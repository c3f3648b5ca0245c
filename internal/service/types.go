package service

import (
	"sort"
	"time"

	"github.com/plateshare/backend/internal/models"
)

// IngredientDetail is one flattened ingredient line in display order.
type IngredientDetail struct {
	Ingredient string `json:"ingredient"`
	Amount     string `json:"amount"`
	Unit       string `json:"unit"`
	OrderIndex int    `json:"order_index"`
}

// InstructionDetail is one flattened step.
type InstructionDetail struct {
	Instruction string `json:"instruction"`
	StepNumber  int    `json:"step_number"`
}

// RecipeDetail is the flattened read model returned to callers: the recipe
// row joined with its author's username and its child collections.
type RecipeDetail struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	AuthorID         string              `json:"author_id"`
	AuthorUsername   string              `json:"author_username"`
	Category         string              `json:"category"`
	Difficulty       string              `json:"difficulty"`
	PrepTimeMinutes  int                 `json:"prep_time_minutes"`
	CookTimeMinutes  int                 `json:"cook_time_minutes"`
	Servings         int                 `json:"servings"`
	ImageURL         string              `json:"image_url"`
	ModerationStatus string              `json:"moderation_status"`
	ModerationNotes  string              `json:"moderation_notes"`
	IsPublished      bool                `json:"is_published"`
	Rating           float64             `json:"rating"`
	ReviewCount      int                 `json:"review_count"`
	ViewCount        int                 `json:"view_count"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	Ingredients      []IngredientDetail  `json:"ingredients"`
	Instructions     []InstructionDetail `json:"instructions"`
	Tags             []string            `json:"tags"`
}

func toRecipeDetail(r *models.Recipe) *RecipeDetail {
	d := &RecipeDetail{
		ID:               r.ID.String(),
		Title:            r.Title,
		Description:      r.Description,
		AuthorID:         r.AuthorID.String(),
		Category:         r.Category,
		Difficulty:       r.Difficulty,
		PrepTimeMinutes:  r.PrepTimeMinutes,
		CookTimeMinutes:  r.CookTimeMinutes,
		Servings:         r.Servings,
		ImageURL:         r.ImageURL,
		ModerationStatus: r.ModerationStatus,
		ModerationNotes:  r.ModerationNotes,
		IsPublished:      r.IsPublished,
		Rating:           r.Rating,
		ReviewCount:      r.ReviewCount,
		ViewCount:        r.ViewCount,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		Ingredients:      []IngredientDetail{},
		Instructions:     []InstructionDetail{},
		Tags:             []string{},
	}
	if r.Author != nil {
		d.AuthorUsername = r.Author.Username
	}

	ings := make([]models.RecipeIngredient, len(r.Ingredients))
	copy(ings, r.Ingredients)
	sort.SliceStable(ings, func(i, j int) bool {
		return ings[i].OrderIndex < ings[j].OrderIndex
	})
	for _, ing := range ings {
		d.Ingredients = append(d.Ingredients, IngredientDetail{
			Ingredient: ing.Ingredient,
			Amount:     ing.Amount,
			Unit:       ing.Unit,
			OrderIndex: ing.OrderIndex,
		})
	}

	steps := make([]models.RecipeInstruction, len(r.Instructions))
	copy(steps, r.Instructions)
	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].StepNumber < steps[j].StepNumber
	})
	for _, st := range steps {
		d.Instructions = append(d.Instructions, InstructionDetail{
			Instruction: st.Instruction,
			StepNumber:  st.StepNumber,
		})
	}

	for _, tag := range r.Tags {
		d.Tags = append(d.Tags, tag.Tag)
	}
	return d
}
