package database

import (
	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/models"
)

// Migrate brings the schema up to date for every model this service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.EmailVerificationToken{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.RecipeInstruction{},
		&models.RecipeTag{},
	)
}
