// Package web serves the marketing site: rendered pages, the sitemap, the
// lead intake endpoint, the GIS proxy, and the admin inquiry API.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gdlandscaping/sitegen/internal/admin"
	"github.com/gdlandscaping/sitegen/internal/config"
	"github.com/gdlandscaping/sitegen/internal/gisproxy"
	"github.com/gdlandscaping/sitegen/internal/logger"
	"github.com/gdlandscaping/sitegen/pkg/leads"
	"github.com/gdlandscaping/sitegen/pkg/orchestrator"
	"github.com/gdlandscaping/sitegen/pkg/sitemap"
)

// Server hosts the site over HTTP with lifecycle management.
type Server struct {
	cfg       *config.Config
	log       logger.Logger
	orch      *orchestrator.Orchestrator
	sitemaps  *sitemap.Generator
	relay     leads.Relay
	inquiries admin.Repository
	proxy     *gisproxy.Proxy
	engine    *gin.Engine
	server    *http.Server
}

// Option customizes the server.
type Option func(*Server)

// WithOrchestrator injects a pre-built render pipeline.
func WithOrchestrator(orch *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		s.orch = orch
	}
}

// WithLeadRelay injects the relay used for quote submissions.
func WithLeadRelay(relay leads.Relay) Option {
	return func(s *Server) {
		s.relay = relay
	}
}

// WithInquiryRepository enables the admin inquiry API backed by the given
// repository.
func WithInquiryRepository(repo admin.Repository) Option {
	return func(s *Server) {
		s.inquiries = repo
	}
}

// New assembles the server from configuration. Collaborators that are not
// injected are built from the config: the default orchestrator, an HTTP lead
// relay when an endpoint is configured, and the GIS proxy.
func New(cfg *config.Config, log logger.Logger, options ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("web: config is required")
	}
	if log == nil {
		log = logger.NewNop()
	}

	s := &Server{cfg: cfg, log: log}
	for _, option := range options {
		option(s)
	}

	if s.orch == nil {
		s.orch = orchestrator.New(
			orchestrator.WithThemeDefaults(cfg.Site.Theme, cfg.Site.ThemeVariant),
		)
	}
	s.sitemaps = sitemap.New(s.orch.Router(), sitemap.WithBaseURL(cfg.Site.BaseURL))
	if s.relay == nil && cfg.Leads.Endpoint != "" {
		s.relay = leads.NewHTTPRelay(cfg.Leads.Endpoint, leads.WithHTTPClient(&http.Client{Timeout: cfg.Leads.Timeout}))
	}
	s.proxy = gisproxy.New(cfg.GIS.AllowedHosts,
		gisproxy.WithLogger(log),
		gisproxy.WithHTTPClient(&http.Client{Timeout: cfg.GIS.Timeout}))

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(recoveryMiddleware(log))
	engine.Use(loggerMiddleware(log))
	s.engine = engine
	s.registerRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s, nil
}

// Engine returns the underlying gin engine, used by tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("starting http server",
		logger.String("address", s.server.Addr),
		logger.String("base_url", s.cfg.Site.BaseURL))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web: server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down http server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}
