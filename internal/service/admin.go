package service

import (
	"context"
	"log"
	"time"

	"github.com/plateshare/backend/internal/models"
	"gorm.io/gorm"
)

const (
	activeUserWindow     = 30 * 24 * time.Hour
	recentActivityWindow = 7 * 24 * time.Hour
	recentActivityLimit  = 10
)

// ActivityItem is one entry in the dashboard's recent-activity feed.
type ActivityItem struct {
	RecipeID       string    `json:"recipe_id"`
	Title          string    `json:"title"`
	AuthorUsername string    `json:"author_username"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// AdminStats is the aggregate view behind the admin dashboard.
type AdminStats struct {
	TotalUsers       int64          `json:"totalUsers"`
	ActiveUsers      int64          `json:"activeUsers"`
	TotalRecipes     int64          `json:"totalRecipes"`
	PendingRecipes   int64          `json:"pendingRecipes"`
	PublishedRecipes int64          `json:"publishedRecipes"`
	RejectedRecipes  int64          `json:"rejectedRecipes"`
	RecentActivity   []ActivityItem `json:"recentActivity"`
}

// AdminService computes read-only statistics over the store.
type AdminService struct {
	db *gorm.DB
}

// NewAdminService creates a new AdminService instance.
func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Stats aggregates dashboard figures. Individual query failures are logged
// and degrade that figure to zero/empty; a partially filled dashboard beats
// a broken one.
func (s *AdminService) Stats(ctx context.Context) *AdminStats {
	stats := &AdminStats{RecentActivity: []ActivityItem{}}
	db := s.db.WithContext(ctx)
	now := time.Now()

	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		log.Printf("admin stats: total users: %v", err)
	}
	if err := db.Model(&models.User{}).
		Where("last_login_at > ?", now.Add(-activeUserWindow)).
		Count(&stats.ActiveUsers).Error; err != nil {
		log.Printf("admin stats: active users: %v", err)
	}
	if err := db.Model(&models.Recipe{}).Count(&stats.TotalRecipes).Error; err != nil {
		log.Printf("admin stats: total recipes: %v", err)
	}

	byStatus := map[string]*int64{
		models.ModerationPending:  &stats.PendingRecipes,
		models.ModerationApproved: &stats.PublishedRecipes,
		models.ModerationRejected: &stats.RejectedRecipes,
	}
	for status, dest := range byStatus {
		if err := db.Model(&models.Recipe{}).
			Where("moderation_status = ?", status).
			Count(dest).Error; err != nil {
			log.Printf("admin stats: %s recipes: %v", status, err)
		}
	}

	var recent []models.Recipe
	err := db.Preload("Author").
		Where("created_at > ?", now.Add(-recentActivityWindow)).
		Order("created_at DESC").
		Limit(recentActivityLimit).
		Find(&recent).Error
	if err != nil {
		log.Printf("admin stats: recent activity: %v", err)
		return stats
	}
	for i := range recent {
		item := ActivityItem{
			RecipeID:  recent[i].ID.String(),
			Title:     recent[i].Title,
			Status:    recent[i].ModerationStatus,
			CreatedAt: recent[i].CreatedAt,
		}
		if recent[i].Author != nil {
			item.AuthorUsername = recent[i].Author.Username
		}
		stats.RecentActivity = append(stats.RecentActivity, item)
	}

	return stats
}
