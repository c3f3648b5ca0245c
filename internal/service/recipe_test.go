package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/testhelpers"
)

func TestSubmitRecipeCreatesPendingUnpublished(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	author := testhelpers.CreateTestUser(t, db, "alice", models.RoleUser)
	svc := NewRecipeService(db)

	id, err := svc.SubmitRecipe(context.Background(), author.ID, SubmitRecipeInput{
		Title:      "Tomato Soup",
		Category:   "Soup",
		Difficulty: models.DifficultyEasy,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	var recipe models.Recipe
	require.NoError(t, db.First(&recipe, "id = ?", id).Error)
	assert.Equal(t, models.ModerationPending, recipe.ModerationStatus)
	assert.False(t, recipe.IsPublished)
	assert.Equal(t, 1, recipe.Servings)
	assert.Equal(t, 0, recipe.PrepTimeMinutes)
}

func TestSubmitRecipeValidation(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	author := testhelpers.CreateTestUser(t, db, "alice", models.RoleUser)
	svc := NewRecipeService(db)

	cases := []struct {
		name  string
		input SubmitRecipeInput
	}{
		{"missing title", SubmitRecipeInput{Category: "Soup", Difficulty: models.DifficultyEasy}},
		{"missing category", SubmitRecipeInput{Title: "Soup", Difficulty: models.DifficultyEasy}},
		{"missing difficulty", SubmitRecipeInput{Title: "Soup", Category: "Soup"}},
		{"bad difficulty", SubmitRecipeInput{Title: "Soup", Category: "Soup", Difficulty: "Impossible"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SubmitRecipe(context.Background(), author.ID, tc.input)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}

	// Nothing was written
	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitRecipeSkipsMalformedChildren(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	author := testhelpers.CreateTestUser(t, db, "alice", models.RoleUser)
	svc := NewRecipeService(db)

	id, err := svc.SubmitRecipe(context.Background(), author.ID, SubmitRecipeInput{
		Title:      "Seasoned Water",
		Category:   "Soup",
		Difficulty: models.DifficultyEasy,
		Ingredients: []IngredientInput{
			{Ingredient: "Salt", Amount: "1", Unit: "tsp"},
			{Ingredient: "Bad", Amount: "", Unit: "g"},
			{Ingredient: "", Amount: "2", Unit: "g"},
		},
		Instructions: []InstructionInput{
			{Instruction: "Boil water.", StepNumber: 1},
			{Instruction: "", StepNumber: 2},
			{Instruction: "No step number", StepNumber: 0},
		},
		Tags: []string{"minimal", "", "  "},
	})
	require.NoError(t, err)

	var ingredients []models.RecipeIngredient
	require.NoError(t, db.Find(&ingredients, "recipe_id = ?", id).Error)
	require.Len(t, ingredients, 1)
	assert.Equal(t, "Salt", ingredients[0].Ingredient)

	var instructions []models.RecipeInstruction
	require.NoError(t, db.Find(&instructions, "recipe_id = ?", id).Error)
	require.Len(t, instructions, 1)
	assert.Equal(t, "Boil water.", instructions[0].Instruction)

	var tags []models.RecipeTag
	require.NoError(t, db.Find(&tags, "recipe_id = ?", id).Error)
	require.Len(t, tags, 1)
	assert.Equal(t, "minimal", tags[0].Tag)
}

func TestSubmitRecipeRollsBackOnChildFailure(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	author := testhelpers.CreateTestUser(t, db, "alice", models.RoleUser)
	svc := NewRecipeService(db)

	// Duplicate step numbers violate the unique index on the second insert,
	// failing the transaction partway through.
	_, err := svc.SubmitRecipe(context.Background(), author.ID, SubmitRecipeInput{
		Title:      "Broken Recipe",
		Category:   "Soup",
		Difficulty: models.DifficultyEasy,
		Ingredients: []IngredientInput{
			{Ingredient: "Salt", Amount: "1", Unit: "tsp"},
		},
		Instructions: []InstructionInput{
			{Instruction: "First.", StepNumber: 1},
			{Instruction: "Also first.", StepNumber: 1},
		},
		Tags: []string{"doomed"},
	})
	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)

	for _, model := range []interface{}{
		&models.Recipe{}, &models.RecipeIngredient{}, &models.RecipeInstruction{}, &models.RecipeTag{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "no rows may survive a failed submission")
	}
}

func TestListPublishedFiltersBothFlags(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	author := testhelpers.CreateTestUser(t, db, "alice", models.RoleUser)
	recipes := NewRecipeService(db)
	moderation := NewModerationService(db, nil)

	approvedID, err := recipes.SubmitRecipe(context.Background(), author.ID, SubmitRecipeInput{
		Title: "Visible", Category: "Soup", Difficulty: models.DifficultyEasy,
	})
	require.NoError(t, err)
	_, err = moderation.ModerateRecipe(context.Background(), approvedID, models.ModerationApproved, "")
	require.NoError(t, err)

	pendingID, err := recipes.SubmitRecipe(context.Background(), author.ID, SubmitRecipeInput{
		Title: "Hidden", Category: "Soup", Difficulty: models.DifficultyEasy,
	})
	require.NoError(t, err)

	// Corrupt the publish flag on the pending recipe. The listing must not
	// trust the flag alone.
	require.NoError(t, db.Model(&models.Recipe{}).
		Where("id = ?", pendingID).
		Update("is_published", true).Error)

	published, err := recipes.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, approvedID.String(), published[0].ID)
	assert.Equal(t, "alice", published[0].AuthorUsername)
}

func TestDeleteRecipeCascades(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	author := testhelpers.CreateTestUser(t, db, "alice", models.RoleUser)
	svc := NewRecipeService(db)

	id, err := svc.SubmitRecipe(context.Background(), author.ID, SubmitRecipeInput{
		Title:      "Short Lived",
		Category:   "Soup",
		Difficulty: models.DifficultyEasy,
		Ingredients: []IngredientInput{
			{Ingredient: "Salt", Amount: "1", Unit: "tsp"},
		},
		Instructions: []InstructionInput{
			{Instruction: "Stir.", StepNumber: 1},
		},
		Tags: []string{"fleeting"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecipe(context.Background(), id))

	for _, model := range []interface{}{
		&models.Recipe{}, &models.RecipeIngredient{}, &models.RecipeInstruction{}, &models.RecipeTag{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}

	var notFoundErr *NotFoundError
	assert.ErrorAs(t, svc.DeleteRecipe(context.Background(), id), &notFoundErr)
}

func TestGetRecipeNotFound(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)

	_, err := svc.GetRecipe(context.Background(), uuid.New())
	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}
