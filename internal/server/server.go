// Package server provides HTTP server initialization and lifecycle
// management for the FaceLab API.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/Antivibe-Inc/face-labs-sub000/internal/analysis"
	"github.com/Antivibe-Inc/face-labs-sub000/internal/config"
	"github.com/Antivibe-Inc/face-labs-sub000/internal/storage"
	"github.com/Antivibe-Inc/face-labs-sub000/web/handlers"
)

// Deps carries the constructed application services the server exposes.
type Deps struct {
	History  *storage.HistoryStore
	Settings *storage.SettingsStore
	Analyzer *analysis.Service
	Dialogue *analysis.DialogueManager
}

// securityHeadersMiddleware adds security headers to all HTTP responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// Start initializes and starts the HTTP server. It returns the actual
// address being listened on (useful for testing with port 0) and the
// WebSocketHub so callers can wire additional event broadcasts.
func Start(ctx context.Context, cfg *config.Config, deps Deps) (string, *handlers.WebSocketHub) {
	mux := http.NewServeMux()

	hostPort := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	wsHub := handlers.NewWebSocketHub(
		hostPort,
		fmt.Sprintf("localhost:%d", cfg.Server.Port),
		fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port),
	)
	go wsHub.Run()

	rateLimiter := handlers.NewRateLimiter(cfg.Security.RateLimit, cfg.Security.RateBurst)

	api := handlers.NewAPIHandlers(deps.History, deps.Settings, deps.Analyzer, deps.Dialogue, wsHub)

	apiMux := http.NewServeMux()

	apiMux.HandleFunc("POST /api/analyze", api.Analyze)
	apiMux.HandleFunc("POST /api/dialogue/turn", api.DialogueTurn)
	apiMux.HandleFunc("POST /api/dialogue/end", api.DialogueEnd)

	apiMux.HandleFunc("POST /api/records", api.CreateRecord)
	apiMux.HandleFunc("GET /api/records", api.ListRecords)
	apiMux.HandleFunc("DELETE /api/records", api.ClearRecords)
	apiMux.HandleFunc("GET /api/records/{id}", api.GetRecord)
	apiMux.HandleFunc("PATCH /api/records/{id}", api.UpdateRecordNote)
	apiMux.HandleFunc("DELETE /api/records/{id}", api.DeleteRecord)
	apiMux.HandleFunc("GET /api/records/{id}/card", api.ShareCard)

	apiMux.HandleFunc("GET /api/stats/weekly", api.WeeklyStats)
	apiMux.HandleFunc("GET /api/stats/rhythm", api.RhythmStats)
	apiMux.HandleFunc("GET /api/stats/wellness", api.WellnessStats)
	apiMux.HandleFunc("GET /api/stats/tags", api.TagStats)
	apiMux.HandleFunc("GET /api/stats/trend", api.TrendPath)

	apiMux.HandleFunc("GET /api/settings", api.GetSettings)
	apiMux.HandleFunc("PUT /api/settings", api.PutSettings)

	// Health endpoint, no auth required; used by the UI and monitoring
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","version":"1.0.0"}`))
	})

	// API routes require auth in production mode
	mux.Handle("/api/", handlers.RequireAuth(apiMux, cfg))

	// WebSocket endpoint (no auth required - origin validation handles security)
	mux.Handle("/ws", wsHub)

	// Wrap the server with rate limiting, then security headers
	handler := handlers.RateLimitMiddleware(mux, rateLimiter)
	handler = securityHeadersMiddleware(handler)

	srv := &http.Server{
		Addr:         hostPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", hostPort)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", hostPort, err)
	}

	actualAddr := listener.Addr().String()

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		wsHub.Stop()
	}()

	return actualAddr, wsHub
}
