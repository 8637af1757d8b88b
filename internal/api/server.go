package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	apimiddleware "github.com/tsanders-rh/exopolicy/internal/api/middleware"
	"github.com/tsanders-rh/exopolicy/internal/cloudconfig"
	"github.com/tsanders-rh/exopolicy/internal/policy"
	"github.com/tsanders-rh/exopolicy/internal/settings"
	"golang.org/x/time/rate"
)

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port              int
	ShutdownTimeout   time.Duration
	RequestTimeout    time.Duration
	EnableCORS        bool
	AllowedOrigins    []string
	MaxBodySize       string
	RateLimitRequests int
	RateLimitDuration time.Duration
	AdminToken        string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:              8080,
		ShutdownTimeout:   10 * time.Second,
		RequestTimeout:    30 * time.Second,
		EnableCORS:        true,
		AllowedOrigins:    []string{"http://localhost:3000"},
		MaxBodySize:       "4M", // image lists from large clouds
		RateLimitRequests: 100,
		RateLimitDuration: 1 * time.Minute,
	}
}

// ServerConfigFromSettings maps service settings onto a server config
func ServerConfigFromSettings(s settings.Server) *ServerConfig {
	return &ServerConfig{
		Port:              s.Port,
		ShutdownTimeout:   s.ShutdownTimeout,
		RequestTimeout:    s.RequestTimeout,
		EnableCORS:        s.EnableCORS,
		AllowedOrigins:    s.AllowedOrigins,
		MaxBodySize:       s.MaxBodySize,
		RateLimitRequests: s.RateLimitRequests,
		RateLimitDuration: s.RateLimitDuration,
		AdminToken:        s.AdminToken,
	}
}

// Server represents the HTTP API server
type Server struct {
	echo     *echo.Echo
	config   *ServerConfig
	registry *cloudconfig.Registry
	policy   *policy.Engine
}

// NewServer creates a new API server
func NewServer(
	config *ServerConfig,
	registry *cloudconfig.Registry,
	policyEngine *policy.Engine,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Disable Echo's default logger, we'll use our own
	e.Logger.SetOutput(io.Discard)

	// Set custom validator
	e.Validator = NewValidator()

	s := &Server{
		echo:     e,
		config:   config,
		registry: registry,
		policy:   policyEngine,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures middleware stack
func (s *Server) setupMiddleware() {
	// Recover from panics
	s.echo.Use(middleware.Recover())

	// Request ID for tracing
	s.echo.Use(middleware.RequestID())

	// Logging middleware
	s.echo.Use(apimiddleware.Logger())

	// Request metrics
	s.echo.Use(requestMetrics())

	// CORS if enabled
	if s.config.EnableCORS {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:  s.config.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost},
			AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			ExposeHeaders: []string{echo.HeaderContentLength},
		}))
	}

	// Body limit
	s.echo.Use(middleware.BodyLimit(s.config.MaxBodySize))

	// Per-client rate limit
	if s.config.RateLimitRequests > 0 && s.config.RateLimitDuration > 0 {
		perRequest := s.config.RateLimitDuration / time.Duration(s.config.RateLimitRequests)
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/health" || c.Path() == "/ready" || c.Path() == "/metrics"
			},
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Every(perRequest),
				Burst:     s.config.RateLimitRequests,
				ExpiresIn: 3 * s.config.RateLimitDuration,
			}),
			ErrorHandler: func(c echo.Context, err error) error {
				return ErrorForbidden(c, "unable to identify client")
			},
			DenyHandler: func(c echo.Context, identifier string, err error) error {
				return c.JSON(http.StatusTooManyRequests, NewErrorResponse("rate_limited", "Too many requests"))
			},
		}))
	}

	// Timeout middleware
	if s.config.RequestTimeout > 0 {
		s.echo.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: s.config.RequestTimeout,
		}))
	}
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readyCheck)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	configurationHandler := NewConfigurationHandler(s.registry)
	v1.GET("/configuration", configurationHandler.Get)
	v1.GET("/configuration/localization", configurationHandler.GetLocalization)
	v1.GET("/configuration/theme", configurationHandler.GetTheme)

	cloudHandler := NewCloudHandler(s.registry)
	cloudsGroup := v1.Group("/clouds")
	cloudsGroup.GET("", cloudHandler.List)
	cloudsGroup.GET("/:hostname", cloudHandler.Get)
	cloudsGroup.GET("/:hostname/proxy", cloudHandler.GetUserAppProxy)

	policyHandler := NewPolicyHandler(s.registry, s.policy)
	cloudsGroup.GET("/:hostname/flavor-groups/match", policyHandler.MatchFlavorGroup)
	cloudsGroup.POST("/:hostname/actions", policyHandler.CheckActions)
	cloudsGroup.POST("/:hostname/flavors", policyHandler.AllowedFlavors)

	imageHandler := NewImageHandler(s.registry, s.policy)
	cloudsGroup.POST("/:hostname/images", imageHandler.Select)

	// Admin routes are only mounted when a token is configured
	if s.config.AdminToken != "" {
		adminHandler := NewAdminHandler(s.registry)
		adminGroup := v1.Group("/admin", middleware.KeyAuth(func(key string, c echo.Context) (bool, error) {
			return key == s.config.AdminToken, nil
		}))
		adminGroup.POST("/reload", adminHandler.Reload)
	}
}

// healthCheck returns basic health status
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// readyCheck reports ready once a configuration snapshot is active
func (s *Server) readyCheck(c echo.Context) error {
	snapshot := s.registry.Snapshot()
	if snapshot == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  "no configuration loaded",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ready",
		"snapshot":  snapshot.ID(),
		"clouds":    snapshot.Len(),
		"loaded_at": snapshot.LoadedAt().Format(time.RFC3339),
		"time":      time.Now().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Info().Str("addr", addr).Msg("starting API server")
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo returns the underlying Echo instance for testing
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
