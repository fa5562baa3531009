package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/upboard/backend/internal/handlers"
	"github.com/upboard/backend/internal/middleware"
	"github.com/upboard/backend/internal/models"
	"github.com/upboard/backend/internal/notify"
	"github.com/upboard/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// defaultCategories are seeded on startup (slug -> name)
var defaultCategories = map[string]string{
	"free":     "Free Board",
	"question": "Questions",
	"info":     "Information",
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, mongoDatabase string, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Comment{},
		&models.PostUp{},
		&models.CommentLike{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(mongoDatabase))
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	engagementRepo := repositories.NewPostgresEngagementRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	categoryRepo := repositories.NewPostgresCategoryRepository(pgdb)

	if err := categoryRepo.SeedDefaults(defaultCategories); err != nil {
		log.Printf("Failed to seed default categories: %v", err)
	}

	// --- Notification fan-out ---
	hub := notify.NewHub()
	emitter := notify.NewEmitter(notificationRepo, userRepo, hub)

	// --- Protected routes (require a Firebase ID token) ---
	api := e.Group("/api/v1")
	api.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient))
	log.Println("Firebase authentication middleware applied to /api/v1 group.")

	// Auth/profile routes
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(api.Group("/auth"))
	log.Println("Auth routes configured.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Category routes
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, userRepo)
	categoryHandler.RegisterCategoryRoutes(api)
	log.Println("Category routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, userRepo, commentRepo, engagementRepo)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, engagementRepo, emitter)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Engagement routes
	engagementHandler := handlers.NewEngagementHandler(engagementRepo, postRepo, commentRepo, userRepo, emitter)
	engagementHandler.RegisterEngagementRoutes(api)
	log.Println("Engagement routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, hub)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
