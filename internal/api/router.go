package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zapshift/parcel-system/internal/api/handler"
	"github.com/zapshift/parcel-system/internal/api/middleware"
	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
	"github.com/zapshift/parcel-system/internal/core/service"
	"github.com/zapshift/parcel-system/internal/core/tracking"
	mongodb "github.com/zapshift/parcel-system/internal/infrastructure/db/mongo"
	redisdb "github.com/zapshift/parcel-system/internal/infrastructure/db/redis"
	"github.com/zapshift/parcel-system/internal/infrastructure/http/handlers"
)

// Deps carries the externally managed handles and oracles the router wires
// together. The store handles are opened in main and injected; nothing here
// reaches for ambient state.
type Deps struct {
	Mongo    *mongo.Database
	Redis    *redis.Client
	Verifier ports.TokenVerifier
	Checkout ports.CheckoutProvider
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("parcel"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(d.Mongo)
	riderRepo := mongodb.NewRiderRepository(d.Mongo)
	parcelRepo := mongodb.NewParcelRepository(d.Mongo)
	paymentRepo := mongodb.NewPaymentRepository(d.Mongo)

	// --- Services ---
	userService := service.NewUserService(userRepo, d.Logger)
	riderService := service.NewRiderService(riderRepo, userRepo, d.Logger)
	parcelService := service.NewParcelService(parcelRepo, d.Logger)
	paymentService := service.NewPaymentService(
		paymentRepo,
		parcelRepo,
		d.Checkout,
		tracking.NewGenerator(),
		redisdb.NewConfirmCache(d.Redis),
		d.Logger,
	)

	// --- Handlers ---
	userHandler := handler.NewUserHandler(userService)
	riderHandler := handler.NewRiderHandler(riderService)
	parcelHandler := handler.NewParcelHandler(parcelService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// --- Gates ---
	identified := middleware.Auth(d.Verifier)
	adminOnly := middleware.RequireRole(userRepo, domain.RoleAdmin)

	v1 := e.Group("/v1")

	// Users
	v1.POST("/users", userHandler.Register)
	v1.GET("/users", userHandler.List, identified)
	v1.GET("/users/:email/role", userHandler.Role)
	v1.PATCH("/users/:id/role", userHandler.ChangeRole, identified, adminOnly)

	// Riders
	v1.GET("/riders", riderHandler.List)
	v1.POST("/riders", riderHandler.Apply)
	v1.PATCH("/riders/:id", riderHandler.SetStatus, identified, adminOnly)

	// Parcels
	v1.GET("/parcels", parcelHandler.List)
	v1.GET("/parcels/:id", parcelHandler.Get)
	v1.POST("/parcels", parcelHandler.Create)
	v1.DELETE("/parcels/:id", parcelHandler.Delete)

	// Payments. Confirm is ungated: the session reference is the capability.
	v1.POST("/payments/checkout", paymentHandler.BeginCheckout)
	v1.POST("/payments/confirm", paymentHandler.Confirm)
	v1.GET("/payments", paymentHandler.List, identified)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
