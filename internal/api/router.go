package api

import (
	"net"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/lupashe/backoffice/docs"
	"github.com/lupashe/backoffice/internal/api/handler"
	"github.com/lupashe/backoffice/internal/api/middleware"
	"github.com/lupashe/backoffice/internal/core/domain"
	"github.com/lupashe/backoffice/internal/core/ports"
)

// Deps holds everything the router wires into handlers and middleware.
type Deps struct {
	AuthService ports.AuthService
	Tokens      ports.TokenVerifier

	// Attempts backs the login/refresh rate limit. Nil disables it.
	Attempts        middleware.AttemptCounter
	RateLimitPerIP  int
	RateLimitWindow time.Duration

	// TrustedProxies are the networks whose X-Forwarded-For is believed.
	// Empty means the client IP is always the TCP peer.
	TrustedProxies []*net.IPNet

	// Health lists the dependencies pinged by /health/ready.
	Health map[string]handler.Pinger

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.IPExtractor = ipExtractor(deps.TrustedProxies)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))

	// --- Metrics ---
	promCfg := echoprometheus.MiddlewareConfig{Namespace: "backoffice", Subsystem: "http"}
	handlerCfg := echoprometheus.HandlerConfig{}
	if deps.Registry != nil {
		promCfg.Registerer = deps.Registry
		handlerCfg.Gatherer = deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(handlerCfg))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	authMiddleware := middleware.Auth(deps.Tokens, deps.Logger)

	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login,
		middleware.RateLimit(deps.Attempts, "login", deps.RateLimitPerIP, deps.RateLimitWindow, deps.Logger))
	auth.POST("/refresh", authHandler.Refresh,
		middleware.RateLimit(deps.Attempts, "refresh", deps.RateLimitPerIP, deps.RateLimitWindow, deps.Logger))
	auth.POST("/register", authHandler.Register, authMiddleware, middleware.RequireRole(domain.RoleAdmin))
	auth.GET("/me", authHandler.Me, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Health)

	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- API docs ---
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// ipExtractor decides what c.RealIP() returns, which is what the rate limiter
// keys on. Forwarding headers are only honoured from the given proxies.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
