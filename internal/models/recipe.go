package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Moderation statuses a recipe can be in.
const (
	ModerationPending  = "pending"
	ModerationApproved = "approved"
	ModerationRejected = "rejected"
)

// Recipe difficulties accepted at submission.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

type Recipe struct {
	ID               uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	Description      string    `gorm:"type:text" json:"description"`
	AuthorID         uuid.UUID `gorm:"type:varchar(36);not null;index" json:"author_id"`
	Author           *User     `gorm:"foreignKey:AuthorID" json:"-"`
	Category         string    `gorm:"size:50;not null" json:"category"`
	Difficulty       string    `gorm:"size:20;not null" json:"difficulty"`
	PrepTimeMinutes  int       `gorm:"not null;default:0" json:"prep_time_minutes"`
	CookTimeMinutes  int       `gorm:"not null;default:0" json:"cook_time_minutes"`
	Servings         int       `gorm:"not null;default:1" json:"servings"`
	ImageURL         string    `gorm:"size:255" json:"image_url"`
	ModerationStatus string    `gorm:"size:20;not null;default:'pending';index" json:"moderation_status"`
	ModerationNotes  string    `gorm:"type:text" json:"moderation_notes"`
	IsPublished      bool      `gorm:"not null;default:false;index" json:"is_published"`
	SearchText       string    `gorm:"type:text" json:"-"`
	Rating           float64   `gorm:"not null;default:0" json:"rating"`
	ReviewCount      int       `gorm:"not null;default:0" json:"review_count"`
	ViewCount        int       `gorm:"not null;default:0" json:"view_count"`

	Ingredients  []RecipeIngredient  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Instructions []RecipeInstruction `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"instructions"`
	Tags         []RecipeTag         `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"tags"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type RecipeIngredient struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	RecipeID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	Ingredient string    `gorm:"size:255;not null" json:"ingredient"`
	Amount     string    `gorm:"size:50;not null" json:"amount"`
	Unit       string    `gorm:"size:50;not null" json:"unit"`
	OrderIndex int       `gorm:"not null;default:0" json:"order_index"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// Step numbers are unique per recipe; a duplicate fails the insert and
// rolls back the enclosing submission transaction.
type RecipeInstruction struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_recipe_step" json:"recipe_id"`
	Instruction string    `gorm:"type:text;not null" json:"instruction"`
	StepNumber  int       `gorm:"not null;uniqueIndex:idx_recipe_step" json:"step_number"`
}

func (ri *RecipeInstruction) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

type RecipeTag struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	Tag      string    `gorm:"size:50;not null" json:"tag"`
}

func (rt *RecipeTag) BeforeCreate(tx *gorm.DB) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	return nil
}

func (Recipe) TableName() string { return "recipes" }

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }

func (RecipeInstruction) TableName() string { return "recipe_instructions" }

func (RecipeTag) TableName() string { return "recipe_tags" }
