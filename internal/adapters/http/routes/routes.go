package routes

import (
	"campus-assetdesk/internal/adapters/http/handlers"
	"campus-assetdesk/internal/adapters/http/middleware"
	"campus-assetdesk/internal/adapters/persistence/repositories"
	"campus-assetdesk/internal/config"
	"campus-assetdesk/internal/core/domain"
	"campus-assetdesk/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers, then mounts all routes
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	requestRepo := repositories.NewRequestRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	assetService := services.NewAssetService(assetRepo)
	requestService := services.NewRequestService(requestRepo, assetRepo, userRepo)
	userService := services.NewUserService(userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	assetHandler := handlers.NewAssetHandler(assetService)
	requestHandler := handlers.NewRequestHandler(requestService)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthHandler()

	// Public routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	authRequired := middleware.AuthMiddleware(cfg)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", authRequired, authHandler.Me)

	// Asset catalog routes
	assets := api.Group("/assets", authRequired)
	assets.Get("/", middleware.RequirePermission(domain.OpAssetRead), assetHandler.List)
	assets.Get("/status/:status", middleware.RequirePermission(domain.OpAssetRead), assetHandler.ListByStatus)
	assets.Get("/:id", middleware.RequirePermission(domain.OpAssetRead), assetHandler.GetByID)
	assets.Post("/", middleware.RequirePermission(domain.OpAssetCreate), assetHandler.Create)
	assets.Put("/:id", middleware.RequirePermission(domain.OpAssetUpdate), assetHandler.Update)
	assets.Delete("/:id", middleware.RequirePermission(domain.OpAssetDelete), assetHandler.Delete)

	// Checkout request routes. Ownership scoping happens in the service;
	// the middleware only gates by role.
	requests := api.Group("/requests", authRequired)
	requests.Get("/", middleware.RequirePermission(domain.OpRequestRead), requestHandler.List)
	requests.Get("/status/:status", middleware.RequirePermission(domain.OpRequestRead), requestHandler.ListByStatus)
	requests.Get("/user/:userId", middleware.RequirePermission(domain.OpRequestRead), requestHandler.ListByUser)
	requests.Get("/:id", middleware.RequirePermission(domain.OpRequestRead), requestHandler.GetByID)
	requests.Post("/", middleware.RequirePermission(domain.OpRequestCreate), requestHandler.Create)
	requests.Patch("/:id/status", middleware.RequirePermission(domain.OpRequestUpdateStatus), requestHandler.UpdateStatus)
	requests.Delete("/:id", middleware.RequirePermission(domain.OpRequestDelete), requestHandler.Delete)

	// User administration routes
	users := api.Group("/users", authRequired)
	users.Get("/", middleware.RequirePermission(domain.OpUserRead), userHandler.List)
	users.Get("/username/:username", middleware.RequirePermission(domain.OpUserRead), userHandler.GetByUsername)
	users.Get("/:id", middleware.RequirePermission(domain.OpUserRead), userHandler.GetByID)
	users.Delete("/:id", middleware.RequirePermission(domain.OpUserDelete), userHandler.Delete)
}
