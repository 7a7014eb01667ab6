package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"wellbeing/internal"
)

// OpsApp serves health and pprof endpoints on a separate port
type OpsApp struct {
	router *chi.Mux
	logger *internal.Logger
}

// NewOpsApp creates the operations router
func NewOpsApp(logger *internal.Logger) *OpsApp {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	a := &OpsApp{router: chi.NewRouter(), logger: logger}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *OpsApp) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Recoverer)
}

// setupRoutes configures the application routes
func (a *OpsApp) setupRoutes() {
	a.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	a.router.Mount("/debug", middleware.Profiler())
}

// Handler exposes the router
func (a *OpsApp) Handler() http.Handler {
	return a.router
}

// Start serves the ops endpoints until the listener fails
func (a *OpsApp) Start(addr string) error {
	a.logger.Info("[OpsApp] Profiling server starting on %s", addr)
	a.logger.Info("[OpsApp] View profiles: go tool pprof -http=:8081 http://localhost%s/debug/pprof/profile?seconds=30", addr)
	return http.ListenAndServe(addr, a.router)
}
