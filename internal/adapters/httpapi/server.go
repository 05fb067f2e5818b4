package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cybershield/threat-analyzer/internal/config"
	"github.com/cybershield/threat-analyzer/internal/core"
	"github.com/cybershield/threat-analyzer/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server is the HTTP API boundary of the analyzer.
type Server struct {
	cfg        config.ServerConfig
	httpServer *http.Server
	logger     *zap.Logger
	version    string
}

// NewServer creates the HTTP server and wires all routes.
func NewServer(
	cfg config.ServerConfig,
	analyzer *core.AnalysisService,
	sanitizer *utils.ContentSanitizer,
	store core.ResultStore,
	logger *zap.Logger,
	version string,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(PrometheusMiddleware())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-API-Key")
	engine.Use(cors.New(corsCfg))

	engine.GET("/health", func(c *gin.Context) {
		storeStatus := "connected"
		if _, err := store.Count(c.Request.Context()); err != nil {
			storeStatus = "error"
		}
		respondOK(c, gin.H{
			"status":  "healthy",
			"version": version,
			"store":   storeStatus,
		})
	})
	engine.GET("/metrics", MetricsHandler())

	api := engine.Group("/api/v1")
	api.Use(RateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))
	api.Use(APIKeyAuth(cfg.APIKey))

	NewAnalyzeHandler(analyzer, sanitizer, store, logger).Register(api)
	NewHistoryHandler(store, logger).Register(api)
	NewDashboardHandler(store, logger).Register(api)
	NewFeedbackHandler(store, logger).Register(api)

	return &Server{
		cfg: cfg,
		httpServer: &http.Server{
			Addr:              cfg.ListenAddress,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:  logger,
		version: version,
	}
}

// Start begins serving requests in the background.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP API server", zap.String("address", s.cfg.ListenAddress))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	s.logger.Info("Stopping HTTP API server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
