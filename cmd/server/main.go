package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/VictorWong123/shopnsplit/internal/auth"
	"github.com/VictorWong123/shopnsplit/internal/config"
	"github.com/VictorWong123/shopnsplit/internal/server"
	"github.com/VictorWong123/shopnsplit/internal/service"
	"github.com/VictorWong123/shopnsplit/internal/storage"
	"github.com/VictorWong123/shopnsplit/internal/storage/postgres"
	"github.com/VictorWong123/shopnsplit/internal/storage/sqlite"
	"github.com/VictorWong123/shopnsplit/pkg/logging"
)

func main() {
	cfg, err := config.LoadOrEnv()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.SetupWithLevel(logging.ParseLevel(cfg.Logging.Level))

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err, "driver", cfg.Storage.Driver)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.Storage.Driver)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager)
	receiptSvc := service.NewReceiptService(store)

	handler := server.New(authSvc, receiptSvc, jwtManager).Router()
	if staticDir := os.Getenv("STATIC_PATH"); staticDir != "" {
		handler, err = withStaticFiles(handler, staticDir)
		if err != nil {
			slog.Error("Failed to resolve static path", "error", err)
			os.Exit(1)
		}
	}

	// h2c allows HTTP/2 clients without TLS termination in front.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		return postgres.New(cfg.Storage.DSN)
	default:
		return sqlite.New(cfg.Storage.Path)
	}
}

// withStaticFiles serves the frontend bundle for any path the API does
// not claim, falling back to index.html for client-side routes.
func withStaticFiles(api http.Handler, staticPath string) (http.Handler, error) {
	staticDir, err := filepath.Abs(staticPath)
	if err != nil {
		return nil, err
	}
	slog.Info("Serving static files", "path", staticDir)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if strings.HasPrefix(p, "/api") || p == "/healthz" || p == "/metrics" {
			api.ServeHTTP(w, r)
			return
		}

		if p == "/" {
			p = "/index.html"
		}
		filePath := filepath.Join(staticDir, filepath.Clean(p))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	}), nil
}
