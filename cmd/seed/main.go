package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/plateshare/backend/config"
	"github.com/plateshare/backend/internal/database"
	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
)

// Seeds an admin account and a couple of pending recipes for local
// development.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "changeme123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := models.User{
		Username:     "admin",
		Email:        "admin@plateshare.local",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	recipes := service.NewRecipeService(db)
	samples := []service.SubmitRecipeInput{
		{
			Title:      "Garlic Butter Pasta",
			Category:   "Pasta",
			Difficulty: models.DifficultyEasy,
			Servings:   2,
			Ingredients: []service.IngredientInput{
				{Ingredient: "Spaghetti", Amount: "200", Unit: "g"},
				{Ingredient: "Butter", Amount: "50", Unit: "g"},
				{Ingredient: "Garlic", Amount: "3", Unit: "cloves"},
			},
			Instructions: []service.InstructionInput{
				{Instruction: "Boil the spaghetti until al dente.", StepNumber: 1},
				{Instruction: "Melt butter and fry the garlic.", StepNumber: 2},
				{Instruction: "Toss the pasta in the garlic butter.", StepNumber: 3},
			},
			Tags: []string{"quick", "vegetarian"},
		},
		{
			Title:           "Slow Beef Stew",
			Category:        "Stew",
			Difficulty:      models.DifficultyHard,
			PrepTimeMinutes: 30,
			CookTimeMinutes: 180,
			Servings:        4,
			Ingredients: []service.IngredientInput{
				{Ingredient: "Beef chuck", Amount: "800", Unit: "g"},
				{Ingredient: "Carrots", Amount: "3", Unit: "pieces"},
			},
			Instructions: []service.InstructionInput{
				{Instruction: "Brown the beef in batches.", StepNumber: 1},
				{Instruction: "Simmer with vegetables for three hours.", StepNumber: 2},
			},
			Tags: []string{"comfort food"},
		},
	}

	for _, sample := range samples {
		id, err := recipes.SubmitRecipe(ctx, admin.ID, sample)
		if err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", sample.Title, err)
		}
		log.Printf("Seeded recipe %q as %s", sample.Title, id)
	}

	log.Println("Seeding complete")
}
