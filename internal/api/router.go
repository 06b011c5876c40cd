package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staynest/rental-platform/internal/api/handler"
	"github.com/staynest/rental-platform/internal/api/middleware"
	"github.com/staynest/rental-platform/internal/core/domain"
	"github.com/staynest/rental-platform/internal/core/ports"
	"github.com/staynest/rental-platform/internal/core/service"
	mongodb "github.com/staynest/rental-platform/internal/infrastructure/db/mongo"
	rediscache "github.com/staynest/rental-platform/internal/infrastructure/db/redis"
)

const sessionTTL = 24 * time.Hour

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb and storage may be nil; the affected features degrade gracefully.
func NewRouter(db *mongo.Database, rdb *redis.Client, storage ports.ImageStorage, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rental"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	propertyRepo := mongodb.NewPropertyRepository(db)

	var cache service.ListingCache
	if rdb != nil {
		cache = rediscache.NewListingCache(rdb, log)
	}

	authService := service.NewAuthService(userRepo, jwtSecret, sessionTTL)
	propertyService := service.NewPropertyService(propertyRepo, cache, log)
	userService := service.NewUserService(userRepo, propertyRepo, log)

	authHandler := handler.NewAuthHandler(authService, sessionTTL)
	propertyHandler := handler.NewPropertyHandler(propertyService, storage)
	userHandler := handler.NewUserHandler(userService)

	authRequired := middleware.Auth(authService, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/signout", authHandler.Signout)

	// --- Property routes: reads are public, mutations need a session ---
	properties := e.Group("/api/properties")
	properties.GET("", propertyHandler.List)
	properties.GET("/:id", propertyHandler.Get)
	properties.POST("", propertyHandler.Create, authRequired)
	properties.PUT("/:id", propertyHandler.Update, authRequired)
	properties.DELETE("/:id", propertyHandler.Delete, authRequired)

	// --- User routes ---
	user := e.Group("/api/user", authRequired)
	user.PUT("/profile", userHandler.UpdateProfile)
	user.DELETE("/profile", userHandler.DeleteProfile)
	user.GET("/users", userHandler.ListUsers, adminOnly)
	user.PUT("/block/:userId", userHandler.BlockUser, adminOnly)
	user.PUT("/unblock/:userId", userHandler.UnblockUser, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
