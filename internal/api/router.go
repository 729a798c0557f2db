// Package api wires the gateway's HTTP surface.
//
//	@title						Condo Admin Gateway API
//	@version					1.0
//	@description				Session, access control and record normalization in front of the residential community backend.
//	@BasePath					/
//	@securityDefinitions.apikey	SessionAuth
//	@in							header
//	@name						X-Session-ID
package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/api/docs"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/api/handler"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/api/metrics"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/api/middleware"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/access"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/service"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/infrastructure/http/handlers"
)

// Deps is everything the router needs. Audit, Idempotency and Checks are
// optional.
type Deps struct {
	Log          zerolog.Logger
	Store        ports.CredentialStore
	Idempotency  ports.IdempotencyGuard
	Auth         ports.AuthService
	Resources    ports.ResourceService
	FeePayments  ports.FeePaymentService
	Dashboard    ports.DashboardService
	Audit        ports.AuditReader
	Checks       map[string]handlers.Check
	SessionTTL   time.Duration
	CookieSecure bool
	RateLimitRPS float64
	// Registry replaces the default Prometheus registry for HTTP metrics.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(prometheusMiddleware(d.Registry))
	if d.RateLimitRPS > 0 {
		e.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(d.RateLimitRPS))))
	}
	e.Use(middleware.Session(d.Store))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", prometheusHandler(d.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth, d.SessionTTL, d.CookieSecure)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me)

	// --- Navigation ---
	navHandler := handler.NewNavHandler(access.NewGuard(metrics.ObserveNavigation))
	e.GET("/nav", navHandler.Menu)
	e.GET("/nav/:view", navHandler.Navigate)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.RequireAuth())
	idem := middleware.Idempotency(d.Idempotency, d.Log)

	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)
	v1.GET("/dashboard/summary", dashboardHandler.Summary)

	actionHandler := handler.NewActionHandler(d.FeePayments)
	resourceHandler := handler.NewResourceHandler(d.Resources, handler.NewValidator())

	v1.GET("/fees/summary", actionHandler.FeeSummaries, middleware.RequireCapability(domain.CapFeeManagement))
	v1.PATCH("/fees/:id/status", actionHandler.ToggleFeeStatus, middleware.RequireAction(domain.ActionToggleFeeStatus))
	v1.PATCH("/payments/:id/verify", actionHandler.VerifyPayment, middleware.RequireAction(domain.ActionVerifyPayment))
	v1.PUT("/households/:id/activate", actionHandler.ActivateHousehold, middleware.RequireAction(domain.ActionActivateHousehold))
	// Balance is open to both management roles; the service checks which.
	v1.GET("/households/:id/balance", actionHandler.HouseholdBalance)

	for _, res := range service.Resources() {
		read := readCapability(res)
		base := "/" + res.Name
		v1.GET(base, resourceHandler.List(res), middleware.RequireCapability(read))
		v1.GET(base+"/:id", resourceHandler.Get(res), middleware.RequireCapability(read))
		v1.POST(base, resourceHandler.Create(res), middleware.RequireAction(res.Edit), idem)
		v1.PUT(base+"/:id", resourceHandler.Update(res), middleware.RequireAction(res.Edit))
		v1.DELETE(base+"/:id", resourceHandler.Delete(res), middleware.RequireAction(res.Delete))
	}

	if d.Audit != nil {
		auditHandler := handler.NewAuditHandler(d.Audit)
		v1.GET("/audit", auditHandler.Recent, middleware.RequireCapability(domain.CapAdmin))
	}

	return e
}

// readCapability is the capability of the screen that lists the resource.
// Collections share their names with views.
func readCapability(res service.Resource) domain.Capability {
	if c, ok := access.RequiredCapability(domain.View(res.Name)); ok {
		return c
	}
	return domain.CapAdmin
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func prometheusMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{Subsystem: "condo_gateway"}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func prometheusHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
