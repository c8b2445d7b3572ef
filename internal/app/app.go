package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/twin-backend/internal/adapter/postgres"
	"github.com/heartmarshall/twin-backend/internal/adapter/postgres/entry"
	metricsrepo "github.com/heartmarshall/twin-backend/internal/adapter/postgres/metrics"
	"github.com/heartmarshall/twin-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/twin-backend/internal/adapter/telemetry"
	"github.com/heartmarshall/twin-backend/internal/auth"
	"github.com/heartmarshall/twin-backend/internal/config"
	authsvc "github.com/heartmarshall/twin-backend/internal/service/auth"
	"github.com/heartmarshall/twin-backend/internal/service/chat"
	"github.com/heartmarshall/twin-backend/internal/service/entries"
	"github.com/heartmarshall/twin-backend/internal/service/metrics"
	"github.com/heartmarshall/twin-backend/internal/service/site"
	"github.com/heartmarshall/twin-backend/internal/transport/middleware"
	"github.com/heartmarshall/twin-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("site", cfg.Site.Key.String()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("chat_enabled", cfg.Chat.Enabled()),
		slog.Bool("shared_rate_limit", cfg.Redis.Enabled()),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	handler, cleanup := NewHandler(cfg, logger, pool, pool, telemetry.New())
	defer cleanup()

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}

type dbPinger interface {
	Ping(ctx context.Context) error
}

// NewHandler wires repositories, services and handlers into the HTTP router.
// The returned cleanup releases the rate limiter and the Redis client.
func NewHandler(
	cfg *config.Config,
	logger *slog.Logger,
	db postgres.DB,
	pinger dbPinger,
	m *telemetry.Metrics,
) (http.Handler, func()) {
	siteKey := cfg.Site.Key

	entrySvc := entries.NewService(logger, entry.New(db, siteKey))
	metricsSvc := metrics.NewService(logger, metricsrepo.New(db, siteKey), cfg.Site.Location)
	store := site.NewStore(logger, siteKey, entrySvc, metricsSvc, m)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authService := authsvc.NewService(logger, jwtManager, siteKey, cfg.Auth.AdminPasswordHash)

	chatCfg := chat.Config{SystemPrompt: cfg.Chat.SystemPrompt, MaxHistory: cfg.Chat.MaxHistory}
	chatService := chat.NewService(logger, nil, chatCfg, m)
	if cfg.Chat.Enabled() {
		chatService = chat.NewService(logger, anthropic.NewClient(cfg.Chat, logger), chatCfg, m)
	}

	health := rest.NewHealthHandler(pinger, BuildVersion())

	var (
		limiter middleware.Limiter
		cleanup func()
	)
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = middleware.NewRedisLimiter(client, "twin:ratelimit:"+siteKey.String(), cfg.RateLimit.ChatPerMinute, time.Minute)
		health.WithCheck("redis", func(ctx context.Context) error { return client.Ping(ctx).Err() })
		cleanup = func() { _ = client.Close() }
	} else {
		rl := middleware.NewRateLimiter(cfg.RateLimit.ChatPerMinute, cfg.RateLimit.ChatBurst, time.Minute)
		limiter = rl
		cleanup = rl.Stop
	}

	opts := rest.RouterOptions{
		Logger:    logger,
		CORS:      cfg.CORS,
		Tokens:    authService,
		ChatLimit: middleware.RateLimit(logger, limiter, "chat", time.Minute, m),
	}
	if cfg.Metrics.Enabled {
		opts.Observer = m
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = m.Handler()
	}

	handler := rest.NewRouter(rest.Handlers{
		Health:   health,
		Content:  rest.NewContentHandler(store, logger),
		Admin:    rest.NewAdminHandler(entrySvc, metricsSvc, logger),
		Overview: rest.NewOverviewHandler(store, entrySvc, logger),
		Auth:     rest.NewAuthHandler(authService, logger),
		Chat:     rest.NewChatHandler(chatService, logger),
	}, opts)

	return handler, cleanup
}
