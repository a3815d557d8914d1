package main

import (
	"log"
	"os"

	"github.com/campusrate/campusrate-backend/internal/api/routes"
	"github.com/campusrate/campusrate-backend/internal/cache"
	"github.com/campusrate/campusrate-backend/internal/config"
	"github.com/campusrate/campusrate-backend/internal/database"
	"github.com/campusrate/campusrate-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize logger
	logger.Init()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}

	// Optional redis index for course-code autocomplete
	cacheClient, err := cache.Connect(cfg.RedisURL)
	if err != nil {
		logger.Warn("Redis unavailable, course-code cache disabled: ", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// Setup routes
	routes.SetupRoutes(router, db, cacheClient, cfg)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("Server starting on port " + port)
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", err)
	}
}
