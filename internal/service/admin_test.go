package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/testhelpers"
)

func TestAdminStats(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	author := testhelpers.CreateTestUser(t, db, "alice", models.RoleUser)
	idle := testhelpers.CreateTestUser(t, db, "bob", models.RoleUser)
	recipes := NewRecipeService(db)
	moderation := NewModerationService(db, nil)
	admin := NewAdminService(db)

	now := time.Now()
	recent := now.Add(-time.Hour)
	stale := now.Add(-60 * 24 * time.Hour)
	require.NoError(t, db.Model(author).Update("last_login_at", recent).Error)
	require.NoError(t, db.Model(idle).Update("last_login_at", stale).Error)

	approved := submitTestRecipe(t, recipes, author.ID, "Approved Dish")
	rejected := submitTestRecipe(t, recipes, author.ID, "Rejected Dish")
	submitTestRecipe(t, recipes, author.ID, "Waiting Dish")

	_, err := moderation.ModerateRecipe(context.Background(), approved, models.ModerationApproved, "")
	require.NoError(t, err)
	_, err = moderation.ModerateRecipe(context.Background(), rejected, models.ModerationRejected, "")
	require.NoError(t, err)

	stats := admin.Stats(context.Background())
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.ActiveUsers)
	assert.EqualValues(t, 3, stats.TotalRecipes)
	assert.EqualValues(t, 1, stats.PendingRecipes)
	assert.EqualValues(t, 1, stats.PublishedRecipes)
	assert.EqualValues(t, 1, stats.RejectedRecipes)
	require.Len(t, stats.RecentActivity, 3)
	assert.Equal(t, "alice", stats.RecentActivity[0].AuthorUsername)
}

func TestAdminStatsRecentActivityWindow(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	author := testhelpers.CreateTestUser(t, db, "alice", models.RoleUser)
	recipes := NewRecipeService(db)
	admin := NewAdminService(db)

	fresh := submitTestRecipe(t, recipes, author.ID, "Fresh")
	old := submitTestRecipe(t, recipes, author.ID, "Old News")
	require.NoError(t, db.Model(&models.Recipe{}).
		Where("id = ?", old).
		Update("created_at", time.Now().Add(-14*24*time.Hour)).Error)

	stats := admin.Stats(context.Background())
	require.Len(t, stats.RecentActivity, 1)
	assert.Equal(t, fresh.String(), stats.RecentActivity[0].RecipeID)
	assert.Equal(t, models.ModerationPending, stats.RecentActivity[0].Status)
}

func TestAdminStatsEmptyStore(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	admin := NewAdminService(db)

	stats := admin.Stats(context.Background())
	assert.Zero(t, stats.TotalUsers)
	assert.Zero(t, stats.TotalRecipes)
	assert.Empty(t, stats.RecentActivity)
}
