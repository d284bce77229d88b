package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nannytime/nannytime-api/internal/api/handler"
	"github.com/nannytime/nannytime-api/internal/api/middleware"
	"github.com/nannytime/nannytime-api/internal/core/ports"
)

// Deps carries everything the router needs. Services are constructed in
// main so the prewarm dispatcher and session events can be wired between
// them first.
type Deps struct {
	Auth     ports.AuthService
	Shifts   ports.ShiftService
	Profiles ports.ProfileService
	Payroll  ports.PayrollService

	Sessions  middleware.RevocationChecker // nil disables revocation checks
	JWTSecret string

	DB     *mongo.Database
	Redis  *redis.Client
	Logger zerolog.Logger
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

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	shiftHandler := handler.NewShiftHandler(deps.Shifts)
	profileHandler := handler.NewProfileHandler(deps.Profiles)
	payStubHandler := handler.NewPayStubHandler(deps.Payroll)

	authMiddleware := middleware.Auth(deps.JWTSecret, deps.Sessions)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/shifts", shiftHandler.List)
	v1.POST("/shifts", shiftHandler.Create)
	v1.GET("/shifts/active", shiftHandler.Active)
	v1.POST("/shifts/clock-in", shiftHandler.ClockIn)
	v1.POST("/shifts/:id/clock-out", shiftHandler.ClockOut)
	v1.PUT("/shifts/:id", shiftHandler.Update)
	v1.DELETE("/shifts/:id", shiftHandler.Delete)
	v1.GET("/paystub", payStubHandler.Get)
	v1.GET("/profile", profileHandler.Get)
	v1.PUT("/profile", profileHandler.Update)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
