package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kylasweb/IOC-Spinwheel/internal/database"
	"github.com/kylasweb/IOC-Spinwheel/internal/handler"
	"github.com/kylasweb/IOC-Spinwheel/internal/logger"
	"github.com/kylasweb/IOC-Spinwheel/internal/metrics"
	"github.com/kylasweb/IOC-Spinwheel/internal/prize"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	AdminAPIKey    string
	TrustedProxies []string
	MaxRequestBody int64

	// DBPool is nil for in-memory storage
	DBPool   database.Pool
	Sessions handler.SessionStore
	Players  handler.PlayerDirectory
	Catalog  handler.CatalogAdmin
	RNG      prize.RandomSource
}

type Server struct {
	httpServer *http.Server
	router     http.Handler
}

// NewServer creates a new Server instance
func NewServer(opts Options) *Server {
	if opts.MaxRequestBody <= 0 {
		opts.MaxRequestBody = DefaultMaxRequestBody
	}

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()
	adminOnly := AuthMiddleware(opts.AdminAPIKey, opts.TrustedProxies, detector)

	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(opts.MaxRequestBody))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(opts.DBPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	sessions := handler.NewSessionHandler(opts.Sessions, opts.Players, opts.Catalog)
	admin := handler.NewAdminHandler(opts.Catalog, opts.Players, opts.RNG)

	r.Route("/api/v1", func(r chi.Router) {
		// Wheel segments and reward catalog for rendering
		r.Get("/prizes", admin.HandleGetPrizes())
		r.Get("/rewards", admin.HandleGetRewards())

		r.Post("/session", sessions.HandleLogin())
		r.Route("/session/{id}", func(r chi.Router) {
			r.Get("/", sessions.HandleGetSession())
			r.Get("/history", sessions.HandleHistory())

			r.Post("/spin", sessions.HandleStartSpin())
			r.Post("/spin/resolve", sessions.HandleResolveSpin())
			r.Post("/spin/complete", sessions.HandleCompleteSpin())

			r.Post("/scratch", sessions.HandleStartScratch())
			r.Post("/scratch/reveal", sessions.HandleReveal())
			r.Post("/scratch/reload", sessions.HandleReloadScratch())

			r.Post("/reset", sessions.HandleReset())
			r.Post("/logout", sessions.HandleLogout())
			r.Post("/claim", sessions.HandleClaim())
			r.Post("/redeem", sessions.HandleRedeem())

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/admin", sessions.HandleEnterAdmin())
				r.Delete("/admin", sessions.HandleExitAdmin())
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(adminOnly)

			r.Get("/prizes", admin.HandleGetPrizes())
			r.Put("/prizes", admin.HandleUpdatePrizes())
			r.Post("/prizes/import", admin.HandleImportPrizes())
			r.Get("/catalog/export", admin.HandleExportCatalog())

			r.Get("/config", admin.HandleGetConfig())
			r.Put("/config", admin.HandleUpdateConfig())
			r.Get("/odds/preview", admin.HandleOddsPreview())

			r.Get("/players", admin.HandleListPlayers())
			r.Get("/players/{mobile}", admin.HandleGetPlayer())
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		router: r,
	}
}

// Handler exposes the router for in-process use
func (s *Server) Handler() http.Handler {
	return s.router
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
