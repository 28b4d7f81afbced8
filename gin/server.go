// Package gin implements the linkwish HTTP API.
package gin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkwish/linkwish"
	"github.com/linkwish/linkwish/extract"
)

// Server defaults.
const (
	DefaultRequestTimeout = 60 * time.Second
	DefaultMaxRawHTML     = 512 * 1024
	DefaultRateLimitRPS   = 5.0
	DefaultRateLimitBurst = 10
)

// Runner runs the extraction pipeline for one request.
type Runner interface {
	Run(ctx context.Context, req extract.Request) (*linkwish.ExtractionOutcome, error)
}

// Ensure the pipeline satisfies Runner.
var _ Runner = (*extract.Pipeline)(nil)

// Server serves the extraction and wishlist API.
type Server struct {
	engine *gin.Engine
	server *http.Server

	pipeline Runner
	wishlist linkwish.WishlistService
	logger   *slog.Logger

	requestTimeout time.Duration
	maxRawHTML     int
	rateLimitRPS   float64
	rateLimitBurst int
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithRequestTimeout bounds how long one extraction request may run.
func WithRequestTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		s.requestTimeout = d
	}
}

// WithMaxRawHTML sets the ceiling on caller-supplied HTML in bytes.
func WithMaxRawHTML(n int) ServerOption {
	return func(s *Server) {
		s.maxRawHTML = n
	}
}

// WithRateLimit sets the per-client request rate limit.
func WithRateLimit(rps float64, burst int) ServerOption {
	return func(s *Server) {
		s.rateLimitRPS = rps
		s.rateLimitBurst = burst
	}
}

// WithReleaseMode switches gin to release mode. Affects global gin state,
// so it is set once at startup.
func WithReleaseMode() ServerOption {
	return func(s *Server) {
		gin.SetMode(gin.ReleaseMode)
	}
}

// NewServer creates a Server with its routes registered.
func NewServer(pipeline Runner, wishlist linkwish.WishlistService, logger *slog.Logger, opts ...ServerOption) *Server {
	s := &Server{
		pipeline:       pipeline,
		wishlist:       wishlist,
		logger:         logger,
		requestTimeout: DefaultRequestTimeout,
		maxRawHTML:     DefaultMaxRawHTML,
		rateLimitRPS:   DefaultRateLimitRPS,
		rateLimitBurst: DefaultRateLimitBurst,
	}
	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	engine.Use(rateLimit(s.rateLimitRPS, s.rateLimitBurst))

	engine.GET("/healthz", s.handleHealth)

	api := engine.Group("/api")
	{
		api.POST("/extract", s.handleExtract)

		wl := api.Group("/wishlist")
		{
			wl.POST("", s.handleCreateEntry)
			wl.GET("", s.handleListEntries)
			wl.GET("/:id", s.handleGetEntry)
			wl.PATCH("/:id", s.handleUpdateEntry)
			wl.DELETE("/:id", s.handleDeleteEntry)
		}
	}

	engine.NoRoute(func(c *gin.Context) {
		writeError(c, linkwish.Errorf(linkwish.ENOTFOUND, "route not found: %s", c.Request.URL.Path))
	})

	s.engine = engine
	return s
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Open starts listening on addr. It blocks until the listener stops.
func (s *Server) Open(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts down the server, waiting for in-flight requests.
func (s *Server) Close(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "linkwish",
	})
}

// writeError renders the API error envelope for an application error.
func writeError(c *gin.Context, err error) {
	status := statusFromCode(linkwish.ErrorCode(err))
	c.AbortWithStatusJSON(status, gin.H{
		"error":      true,
		"message":    linkwish.ErrorMessage(err),
		"statusCode": status,
	})
}

// statusFromCode maps application error codes to HTTP status codes.
func statusFromCode(code string) int {
	switch code {
	case linkwish.EINVALID:
		return http.StatusBadRequest
	case linkwish.ENOTFOUND:
		return http.StatusNotFound
	case linkwish.ECONFLICT:
		return http.StatusConflict
	case linkwish.ETIMEOUT:
		return http.StatusRequestTimeout
	case linkwish.EUNPROCESSABLE:
		return http.StatusUnprocessableEntity
	case linkwish.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
