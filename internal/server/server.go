// Package server provides the HTTP transport layer. Handlers only decode
// requests, call the services, and encode responses; every business rule
// lives in the calculator, session, and service packages.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VictorWong123/shopnsplit/internal/auth"
	"github.com/VictorWong123/shopnsplit/internal/middleware"
	"github.com/VictorWong123/shopnsplit/internal/service"
)

// Server holds the HTTP dependencies.
type Server struct {
	auth       *service.AuthService
	receipts   *service.ReceiptService
	jwtManager *auth.JWTManager
}

// New creates a Server.
func New(authSvc *service.AuthService, receiptSvc *service.ReceiptService, jwtManager *auth.JWTManager) *Server {
	return &Server{
		auth:       authSvc,
		receipts:   receiptSvc,
		jwtManager: jwtManager,
	}
}

// Router builds the full HTTP handler chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Metrics(chiRoutePattern))
	r.Use(middleware.Logging)
	r.Use(corsMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// Recalculation runs on every keystroke; no account needed,
		// but a token (when sent) attributes the request in logs.
		r.With(middleware.OptionalAuth(s.jwtManager)).Post("/calculate", s.handleCalculate)

		// Shared receipts are readable by anyone with the link.
		r.Get("/shared/{slug}", s.handleGetShared)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(s.jwtManager))
			r.Post("/receipts", s.handleSaveReceipt)
			r.Get("/receipts", s.handleListReceipts)
			r.Get("/receipts/{id}", s.handleGetReceipt)
			r.Patch("/receipts/{id}", s.handleRenameReceipt)
			r.Delete("/receipts/{id}", s.handleDeleteReceipt)
		})
	})

	return r
}

func chiRoutePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if pattern := rc.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
