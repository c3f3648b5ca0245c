package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plateshare/backend/config"
	"github.com/plateshare/backend/internal/api"
	"github.com/plateshare/backend/internal/database"
	"github.com/plateshare/backend/internal/middleware"
	"github.com/plateshare/backend/internal/router"
	"github.com/plateshare/backend/internal/server"
	"github.com/plateshare/backend/internal/service"
)

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

	rdb, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	moderationService := service.NewModerationService(db, service.NewRedisNotifier(rdb))
	adminService := service.NewAdminService(db)

	var imageStore service.ImageStore
	if store, err := service.NewS3ImageStore(context.Background(), cfg.S3Bucket, cfg.AWSRegion); err != nil {
		log.Printf("Image uploads disabled: %v", err)
	} else {
		imageStore = store
	}

	limiter := middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     10,
		KeyPrefix: "ratelimit:submit",
	})

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewRecipeHandler(recipeService, authService, imageStore, limiter),
		api.NewModerationHandler(moderationService, authService),
		api.NewAdminHandler(adminService, authService),
		api.NewHealthHandler(db, rdb),
		cfg.AllowedOrigins,
	)

	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
