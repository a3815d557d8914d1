package routes

import (
	"github.com/campusrate/campusrate-backend/internal/api/handlers"
	"github.com/campusrate/campusrate-backend/internal/api/middleware"
	"github.com/campusrate/campusrate-backend/internal/cache"
	"github.com/campusrate/campusrate-backend/internal/config"
	"github.com/campusrate/campusrate-backend/internal/services"
	"github.com/campusrate/campusrate-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, cacheClient *cache.Client, cfg *config.Config) {
	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(cfg))

	// Initialize services
	emailService := services.NewEmailService(cfg)
	authService := services.NewAuthService(db, cfg.JWTSecret, emailService)
	summaryService := services.NewSummaryService()
	reviewService := services.NewReviewService(db, cacheClient)
	voteService := services.NewVoteService(db)
	professorService := services.NewProfessorService(db, reviewService, summaryService)
	searchService := services.NewSearchService(db, cacheClient)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	professorHandler := handlers.NewProfessorHandler(professorService)
	reviewHandler := handlers.NewReviewHandler(reviewService, voteService)
	searchHandler := handlers.NewSearchHandler(searchService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})

	// API routes
	api := router.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh-token", authHandler.RefreshToken)
		auth.POST("/logout", middleware.AuthMiddleware(cfg), authHandler.Logout)
		auth.GET("/profile", middleware.AuthMiddleware(cfg), authHandler.GetProfile)
	}

	// Professor routes
	professors := api.Group("/professors")
	{
		professors.GET("/", professorHandler.ListProfessors)
		professors.GET("/:id", middleware.OptionalAuth(cfg), professorHandler.GetProfessor)
		professors.POST("/", middleware.AuthMiddleware(cfg), professorHandler.CreateProfessor)
		// Anonymous reviews are allowed; identity is attached when present
		professors.POST("/:id/reviews", middleware.OptionalAuth(cfg), reviewHandler.CreateReview)
	}

	// Review routes
	reviews := api.Group("/reviews")
	{
		reviews.POST("/:id/vote", middleware.AuthMiddleware(cfg), reviewHandler.CastVote)
		reviews.POST("/:id/replies", middleware.OptionalAuth(cfg), reviewHandler.CreateReply)
	}

	// Search and course lookups
	api.GET("/search", searchHandler.Search)
	courses := api.Group("/courses")
	{
		courses.GET("/", searchHandler.ListCourseCodes)
		courses.GET("/professors", searchHandler.FindProfessorsForCourse)
	}

	// Professor dashboard
	api.GET("/dashboard", middleware.AuthMiddleware(cfg), middleware.ProfessorOnly(), professorHandler.Dashboard)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	{
		admin.GET("/reviews", adminHandler.ListAllReviews)
		admin.DELETE("/reviews/:id", adminHandler.DeleteReview)
		admin.DELETE("/replies/:id", adminHandler.DeleteReply)
		admin.DELETE("/professors/:id", adminHandler.DeleteProfessor)
	}

	logger.Info("Routes initialized successfully")
}
