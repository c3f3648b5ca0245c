package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/plateshare/backend/internal/models"
	"gorm.io/gorm"
)

// ModerationService owns the recipe moderation state machine.
type ModerationService struct {
	db       *gorm.DB
	notifier Notifier
}

// NewModerationService creates a new ModerationService instance. notifier
// may be nil, in which case moderation decisions are not announced.
func NewModerationService(db *gorm.DB, notifier Notifier) *ModerationService {
	return &ModerationService{db: db, notifier: notifier}
}

// CanModerateTo reports whether status is a valid moderation target. Only
// approved and rejected are reachable by a moderator; pending is entered
// exclusively at creation.
func CanModerateTo(status string) bool {
	return status == models.ModerationApproved || status == models.ModerationRejected
}

func buildSearchText(r *models.Recipe) string {
	return strings.ToLower(strings.Join([]string{r.Title, r.Description, r.Category}, " "))
}

// ModerateRecipe applies a moderation decision. Within one transaction it
// sets the status, keeps is_published in lockstep (published iff approved),
// stores the notes, and on approval recomputes the recipe's search text.
// The prior status is deliberately not checked: re-moderating an already
// decided recipe re-applies the new decision, which supports corrections.
func (s *ModerationService) ModerateRecipe(ctx context.Context, recipeID uuid.UUID, status, notes string) (*RecipeDetail, error) {
	if !CanModerateTo(status) {
		return nil, NewValidationError("status must be approved or rejected, got %q", status)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"moderation_status": status,
			"is_published":      status == models.ModerationApproved,
			"moderation_notes":  notes,
		}
		if status == models.ModerationApproved {
			updates["search_text"] = buildSearchText(&recipe)
		}

		return tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Updates(updates).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "recipe", ID: recipeID.String()}
		}
		return nil, &StorageError{Op: "moderate recipe", Err: err}
	}

	// Reload the full record for the caller. A miss here means the recipe
	// was deleted concurrently after our commit.
	var recipe models.Recipe
	err = s.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients").
		Preload("Instructions").
		Preload("Tags").
		First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "recipe", ID: recipeID.String()}
		}
		return nil, &StorageError{Op: "reload moderated recipe", Err: err}
	}

	if s.notifier != nil {
		event := ModerationEvent{
			RecipeID: recipe.ID.String(),
			Title:    recipe.Title,
			AuthorID: recipe.AuthorID.String(),
			Status:   status,
			Notes:    notes,
		}
		if err := s.notifier.RecipeModerated(ctx, event); err != nil {
			// Best effort only; the decision already committed.
			log.Printf("%v", &SideEffectError{Op: "moderation notification", Err: err})
		}
	}

	return toRecipeDetail(&recipe), nil
}

// PendingQueue returns all recipes awaiting a decision, oldest first, so the
// longest-waiting submission is always served next.
func (s *ModerationService) PendingQueue(ctx context.Context) ([]*RecipeDetail, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients").
		Preload("Instructions").
		Preload("Tags").
		Where("moderation_status = ?", models.ModerationPending).
		Order("created_at ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, &StorageError{Op: "list pending recipes", Err: err}
	}

	result := make([]*RecipeDetail, 0, len(recipes))
	for i := range recipes {
		result = append(result, toRecipeDetail(&recipes[i]))
	}
	return result, nil
}
