package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/testhelpers"
)

// Verifies the submission transaction against real Postgres: a failure on a
// late child insert must leave no trace of the recipe in any table.
func TestSubmissionRollbackOnPostgres(t *testing.T) {
	db := testhelpers.NewPostgresTestDB(t)
	author := testhelpers.CreateTestUser(t, db, "alice", models.RoleUser)
	recipes := service.NewRecipeService(db)

	_, err := recipes.SubmitRecipe(context.Background(), author.ID, service.SubmitRecipeInput{
		Title:      "Torn Write",
		Category:   "Soup",
		Difficulty: models.DifficultyEasy,
		Ingredients: []service.IngredientInput{
			{Ingredient: "Salt", Amount: "1", Unit: "tsp"},
		},
		Instructions: []service.InstructionInput{
			{Instruction: "First.", StepNumber: 1},
			{Instruction: "Duplicate.", StepNumber: 1},
		},
	})
	var storageErr *service.StorageError
	require.ErrorAs(t, err, &storageErr)

	for _, model := range []interface{}{
		&models.Recipe{}, &models.RecipeIngredient{}, &models.RecipeInstruction{}, &models.RecipeTag{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

// Approving and re-rejecting on Postgres keeps the publish flag in lockstep
// with the status for concurrent read-committed readers.
func TestModerationTransitionsOnPostgres(t *testing.T) {
	db := testhelpers.NewPostgresTestDB(t)
	author := testhelpers.CreateTestUser(t, db, "alice", models.RoleUser)
	recipes := service.NewRecipeService(db)
	moderation := service.NewModerationService(db, nil)

	id, err := recipes.SubmitRecipe(context.Background(), author.ID, service.SubmitRecipeInput{
		Title:      "Reviewed Dish",
		Category:   "Soup",
		Difficulty: models.DifficultyMedium,
	})
	require.NoError(t, err)

	detail, err := moderation.ModerateRecipe(context.Background(), id, models.ModerationApproved, "ok")
	require.NoError(t, err)
	assert.True(t, detail.IsPublished)

	detail, err = moderation.ModerateRecipe(context.Background(), id, models.ModerationRejected, "retracted")
	require.NoError(t, err)
	assert.False(t, detail.IsPublished)

	published, err := recipes.ListPublished(context.Background())
	require.NoError(t, err)
	assert.Empty(t, published)
}
