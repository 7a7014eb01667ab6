package ui

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wellbeing/app"
	"wellbeing/internal"
	"wellbeing/internal/session"
)

const defaultMaxUploadBytes = 50 * 1024 * 1024 // 50MB

// shutdownTimeout bounds how long in-flight uploads and AI calls may finish after a stop signal
const shutdownTimeout = 30 * time.Second

// Config holds the API server's collaborators
type Config struct {
	Reports        *app.ReportService
	Store          *session.Store[*app.Analysis]
	MaxUploadBytes int64
	Logger         *internal.Logger
}

// Server represents the HTTP API for survey uploads and reports
type Server struct {
	router         *gin.Engine
	httpServer     *http.Server
	reports        *app.ReportService
	store          *session.Store[*app.Analysis]
	maxUploadBytes int64
	logger         *internal.Logger
}

// NewServer creates a new API server instance with its routes registered
func NewServer(config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}
	maxUpload := config.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		router.Use(gin.Logger())
	}
	router.MaxMultipartMemory = maxUpload
	// school names may contain "/", sent as %2F
	router.UseRawPath = true
	router.UnescapePathValues = true

	s := &Server{
		router:         router,
		httpServer:     &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second},
		reports:        config.Reports,
		store:          config.Store,
		maxUploadBytes: maxUpload,
		logger:         logger,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/uploads", s.handleUpload)
		api.GET("/uploads/:id", s.handleGetUpload)
		api.DELETE("/uploads/:id", s.handleDeleteUpload)
		api.GET("/uploads/:id/schools/:school", s.handleGetSchool)
		api.POST("/uploads/:id/schools/:school/insights", s.handleSchoolInsights)
		api.POST("/uploads/:id/insights", s.handleAllInsights)
	}
}

// Handler exposes the router for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server and blocks until it stops
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln. Returns http.ErrServerClosed after Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("[Server] Starting well-being API on http://%s", ln.Addr())
	return s.httpServer.Serve(ln)
}

// Shutdown stops accepting requests and waits for in-flight ones to finish
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("[Server] Shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Run serves on addr until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
