package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/smartadmin/user-api/docs"
	"github.com/smartadmin/user-api/internal/api/handler"
	"github.com/smartadmin/user-api/internal/api/middleware"
	"github.com/smartadmin/user-api/internal/core/credentials"
	"github.com/smartadmin/user-api/internal/core/domain"
	"github.com/smartadmin/user-api/internal/core/service"
	"github.com/smartadmin/user-api/internal/core/validation"
	mongodb "github.com/smartadmin/user-api/internal/infrastructure/db/mongo"
	redisdb "github.com/smartadmin/user-api/internal/infrastructure/db/redis"
)

// Deps carries the external collaborators the router wires together.
type Deps struct {
	Mongo            *mongo.Database
	Redis            *redis.Client
	Tokens           *credentials.TokenManager
	Hasher           *credentials.Hasher
	MaxLoginAttempts int
	Logger           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("userapi"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	fieldValidator := validation.New(userRepo)

	userService := service.NewUserService(userRepo, fieldValidator, deps.Hasher, deps.Logger)
	authService := service.NewAuthService(userRepo, deps.Hasher, deps.Tokens, deps.Logger)
	loginLimiter := redisdb.NewLoginLimiter(deps.Redis, deps.MaxLoginAttempts)

	authHandler := handler.NewAuthHandler(authService, loginLimiter, deps.Logger)
	userHandler := handler.NewUserHandler(userService)
	qrHandler := handler.NewQRHandler(authService)

	requireAuth := middleware.Auth(deps.Tokens)
	requireStaff := middleware.RBAC(domain.RoleAdmin, domain.RoleMaster)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- User directory routes ---
	users := e.Group("/users", requireAuth)
	users.GET("/me", authHandler.Me)
	users.GET("", userHandler.List, requireStaff)
	users.POST("", userHandler.Create, requireStaff)
	users.PUT("/:id", userHandler.Update, requireStaff)
	users.DELETE("/:id", userHandler.Delete, requireStaff)

	// --- QR login flow ---
	e.GET("/qr/generate", qrHandler.Generate, requireAuth)
	e.POST("/qr/validate", qrHandler.Validate) // the token itself is the credential

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
