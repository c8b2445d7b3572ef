package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/twin-backend/internal/config"
	"github.com/heartmarshall/twin-backend/internal/transport/middleware"
)

// Handlers groups every endpoint handler the router mounts.
type Handlers struct {
	Health   *HealthHandler
	Content  *ContentHandler
	Admin    *AdminHandler
	Overview *OverviewHandler
	Auth     *AuthHandler
	Chat     *ChatHandler
}

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

type httpObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// RouterOptions configures cross-cutting behavior of the router.
type RouterOptions struct {
	Logger *slog.Logger
	CORS   config.CORSConfig
	Tokens tokenValidator
	// Observer records per-route metrics when set.
	Observer httpObserver
	// ChatLimit guards POST /api/chat when set.
	ChatLimit middleware.Middleware
	// MetricsPath and MetricsHandler expose Prometheus metrics when both are set.
	MetricsPath    string
	MetricsHandler http.Handler
}

// NewRouter mounts every route on a ServeMux and wraps it with the global
// middleware chain: RequestID, Recovery, Logger, CORS, Auth.
func NewRouter(h Handlers, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern string, fn http.HandlerFunc, mws ...middleware.Middleware) {
		if opts.Observer != nil {
			mws = append([]middleware.Middleware{middleware.Metrics(opts.Observer, pattern)}, mws...)
		}
		mux.Handle(pattern, middleware.Chain(mws...)(fn))
	}

	handle("GET /live", h.Health.Live)
	handle("GET /ready", h.Health.Ready)
	handle("GET /health", h.Health.Health)

	handle("GET /api/overview", h.Overview.Overview)
	handle("GET /api/entries", h.Content.ListEntries)
	handle("GET /api/books", h.Content.ListBooks)
	handle("GET /api/protocols", h.Content.ListProtocols)
	handle("GET /api/entries/{id}", h.Content.GetEntry)
	handle("GET /api/entries/{id}/related", h.Content.ListRelated)
	handle("GET /api/metrics/today", h.Content.TodayMetrics)

	handle("POST /api/entries", h.Admin.CreateEntry, middleware.AdminOnly)
	handle("DELETE /api/entries/{id}", h.Admin.DeleteEntry, middleware.AdminOnly)
	handle("PUT /api/metrics/today", h.Admin.UpsertTodayMetrics, middleware.AdminOnly)

	handle("POST /api/auth/login", h.Auth.Login)

	if opts.ChatLimit != nil {
		handle("POST /api/chat", h.Chat.Chat, opts.ChatLimit)
	} else {
		handle("POST /api/chat", h.Chat.Chat)
	}

	if opts.MetricsPath != "" && opts.MetricsHandler != nil {
		mux.Handle("GET "+opts.MetricsPath, opts.MetricsHandler)
	}

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(opts.Logger),
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.CORS),
		middleware.Auth(opts.Tokens),
	)(mux)
}
