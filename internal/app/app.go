package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/Garridot/portfolio-email-center-api/internal/config"
	"github.com/Garridot/portfolio-email-center-api/internal/logging"
	"github.com/Garridot/portfolio-email-center-api/internal/mailer"
	"github.com/Garridot/portfolio-email-center-api/internal/ratelimit"
)

// counterStore is what the app needs from a rate-limit backend: admission
// counting plus a connectivity probe for the health endpoint.
type counterStore interface {
	ratelimit.CounterStore
	Ping(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  *slog.Logger
	redis   *redis.Client // nil when counters are in-process
	store   counterStore
	limiter *ratelimit.Limiter
	mailer  mailer.Mailer
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.IsDevelopment(), cfg.LogFile, cfg.LogFileMaxMB)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	slog.SetDefault(logger)

	app := &App{config: cfg, logger: logger}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  cfg.RedisDialTimeout,
			ReadTimeout:  cfg.RedisReadTimeout,
			WriteTimeout: cfg.RedisWriteTimeout,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		app.redis = client
		app.store = ratelimit.NewRedisStore(client)
		logger.Info("rate limit counters in redis", "addr", cfg.RedisAddr)
	} else {
		// Development only; config.Validate rejects this in production.
		// Counters are per-process, so limits are not shared.
		app.store = ratelimit.NewMemoryStore()
		logger.Warn("rate limit counters in process memory; set REDIS_ADDR for shared counters")
	}

	app.limiter = ratelimit.New(app.store,
		ratelimit.Window{Name: "day", Size: 24 * time.Hour, Limit: cfg.RateLimitPerDay},
		ratelimit.Window{Name: "hour", Size: time.Hour, Limit: cfg.RateLimitPerHour},
		ratelimit.Window{Name: "minute", Size: time.Minute, Limit: cfg.RateLimitSendPerMinute},
	)

	app.mailer = mailer.NewSMTP(mailer.Config{
		Host:     cfg.MailServer,
		Port:     cfg.MailPort,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
		UseTLS:   cfg.MailUseTLS,
		UseSSL:   cfg.MailUseSSL,
		Timeout:  cfg.MailTimeout,
	})

	return app, nil
}

func (app *App) Close() {
	if app.redis != nil {
		_ = app.redis.Close()
	}
}

func (app *App) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", app.config.Port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	g.Go(func() error {
		app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done() // Wait for OS signal or server failure

		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	app.logger.Info("stopped server")
	return nil
}
