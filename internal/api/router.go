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

	_ "github.com/trailhead/campground-api/docs"
	"github.com/trailhead/campground-api/internal/api/handler"
	"github.com/trailhead/campground-api/internal/api/middleware"
	"github.com/trailhead/campground-api/internal/core/ports"
	"github.com/trailhead/campground-api/internal/core/service"
	mongodb "github.com/trailhead/campground-api/internal/infrastructure/db/mongo"
	redisdb "github.com/trailhead/campground-api/internal/infrastructure/db/redis"
)

// Options carries the dependencies and settings for building the router.
type Options struct {
	DB    *mongo.Database
	Redis *redis.Client // optional; enables the token deny-list
	// JWTSecret signs session tokens; loaded once at startup.
	JWTSecret string
	// TokenTTL bounds session lifetime (default 1h).
	TokenTTL time.Duration
	// BcryptCost tunes password hashing (default bcrypt.DefaultCost).
	BcryptCost int
	// SecureCookies sets the Secure flag on the token cookie.
	SecureCookies bool
	Logger        zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("campground"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(opts.DB)
	bookingRepo := mongodb.NewBookingRepository(opts.DB)
	campgroundRepo := mongodb.NewCampgroundRepository(opts.DB)

	var denylist ports.TokenDenylist
	if opts.Redis != nil {
		denylist = redisdb.NewDenylist(opts.Redis)
	}

	tokenService := service.NewTokenService(opts.JWTSecret, opts.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, denylist, opts.BcryptCost, opts.Logger)
	bookingService := service.NewBookingService(bookingRepo, campgroundRepo, userRepo, opts.Logger)
	campgroundService := service.NewCampgroundService(campgroundRepo, bookingRepo, opts.Logger)

	authHandler := handler.NewAuthHandler(authService, opts.SecureCookies)
	bookingHandler := handler.NewBookingHandler(bookingService)
	campgroundHandler := handler.NewCampgroundHandler(campgroundService)
	healthHandler := handler.NewHealthHandler(opts.DB, opts.Redis)

	authGate := middleware.Auth(tokenService, denylist, opts.Logger)
	adminGate := middleware.RequireAdmin(opts.Logger)

	// --- Probes, metrics, docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	apiGroup := e.Group("/api")

	// --- User routes ---
	users := apiGroup.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.POST("/logout", authHandler.Logout, authGate)

	// --- Booking routes (owner-scoped) ---
	bookings := apiGroup.Group("/bookings", authGate)
	bookings.GET("", bookingHandler.List)
	bookings.GET("/:id", bookingHandler.Get)
	bookings.POST("/create", bookingHandler.Create)
	bookings.PUT("/update/:id", bookingHandler.Update)
	bookings.DELETE("/delete/:id", bookingHandler.Delete)

	// --- Admin routes ---
	admin := apiGroup.Group("/admin")
	admin.POST("/register", authHandler.RegisterAdmin)
	admin.POST("/login", authHandler.Login)

	adminBookings := admin.Group("/bookings", authGate, adminGate)
	adminBookings.GET("", bookingHandler.AdminList)
	adminBookings.GET("/:id", bookingHandler.AdminGet)
	adminBookings.POST("/create", bookingHandler.AdminCreate)
	adminBookings.PUT("/update/:id", bookingHandler.AdminUpdate)
	adminBookings.DELETE("/delete/:id", bookingHandler.AdminDelete)

	// --- Campground ("product") routes ---
	products := apiGroup.Group("/products", authGate)
	products.GET("", campgroundHandler.List, middleware.RequireClientCert())
	products.GET("/:id", campgroundHandler.Get)
	products.POST("/create", campgroundHandler.Create)
	products.PUT("/update/:id", campgroundHandler.Update)
	products.DELETE("/delete/:id", campgroundHandler.Delete)

	return e
}
