package router

import (
	"log"

	"github.com/PzyCool/DomiHive-sub000/internal/handlers"
	"github.com/PzyCool/DomiHive-sub000/internal/listings"
	"github.com/PzyCool/DomiHive-sub000/internal/middleware"
	"github.com/PzyCool/DomiHive-sub000/internal/models"
	"github.com/PzyCool/DomiHive-sub000/internal/payments"
	"github.com/PzyCool/DomiHive-sub000/internal/repositories"
	"github.com/PzyCool/DomiHive-sub000/internal/screening"
	"github.com/PzyCool/DomiHive-sub000/pkg/config"
	"github.com/PzyCool/DomiHive-sub000/pkg/push"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// It returns the screening engine so the caller can drain it on shutdown.
func SetupRoutes(e *echo.Echo, db *config.DB, cfg *config.Config, pushSender *push.Sender) *screening.Engine {
	// AutoMigrate PostgreSQL models
	err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.InspectionBooking{},
		&models.RentalApplication{},
		&models.ScreeningRecord{},
		&models.PaymentRecord{},
		&models.Notification{},
		&models.WorkflowPointer{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	bookingRepo := repositories.NewPostgresBookingRepository(db.Postgres)
	applicationRepo := repositories.NewPostgresApplicationRepository(db.Postgres)
	screeningRepo := repositories.NewPostgresScreeningRepository(db.Postgres)
	paymentRepo := repositories.NewPostgresPaymentRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	pointerRepo := repositories.NewPostgresPointerRepository(db.Postgres)
	listingRepo := repositories.NewMongoListingRepository(db.Mongo.Database("domihive"))
	favoriteRepo := repositories.NewMongoFavoriteRepository(db.Mongo.Database("domihive"))

	// --- Domain services ---
	generator := listings.NewGeneratorSource()
	curated := listings.NewCuratedSource(listingRepo)
	sessionCache := listings.NewSessionCache(db.Redis, cfg.ListingCacheTTL)
	engine := screening.NewEngine(cfg.ScreeningTimeScale)
	processor := payments.NewSimulatedProcessor(cfg.PaymentProcessingDelay)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Listing browse routes
	listingHandler := handlers.NewListingHandler(generator, curated, sessionCache, favoriteRepo)
	listingHandler.RegisterListingRoutes(api)
	log.Println("Listing routes configured.")

	// Favorite routes
	favoriteHandler := handlers.NewFavoriteHandler(favoriteRepo)
	favoriteHandler.RegisterFavoriteRoutes(api)
	log.Println("Favorite routes configured.")

	// Inspection booking routes
	bookingHandler := handlers.NewBookingHandler(bookingRepo, pointerRepo, notificationRepo)
	bookingHandler.RegisterBookingRoutes(api)
	log.Println("Booking routes configured.")

	// Rental application routes
	applicationHandler := handlers.NewApplicationHandler(applicationRepo, bookingRepo, pointerRepo, notificationRepo)
	applicationHandler.RegisterApplicationRoutes(api)
	log.Println("Application routes configured.")

	// Screening routes
	screeningHandler := handlers.NewScreeningHandler(engine, screeningRepo, applicationRepo, pointerRepo, notificationRepo)
	screeningHandler.RegisterScreeningRoutes(api)
	log.Println("Screening routes configured.")

	// Payment routes
	paymentHandler := handlers.NewPaymentHandler(processor, paymentRepo, applicationRepo, screeningRepo, pointerRepo, notificationRepo, userRepo, pushSender)
	paymentHandler.RegisterPaymentRoutes(api)
	log.Println("Payment routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Workflow pointer routes
	workflowHandler := handlers.NewWorkflowHandler(pointerRepo)
	workflowHandler.RegisterWorkflowRoutes(api)
	log.Println("Workflow routes configured.")

	log.Println("All routes configured.")
	return engine
}
