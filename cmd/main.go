package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riftwatch/riftwatch/internal/adapters/http/api"
	"github.com/riftwatch/riftwatch/internal/adapters/notify"
	"github.com/riftwatch/riftwatch/internal/adapters/repository"
	"github.com/riftwatch/riftwatch/internal/adapters/riot"
	"github.com/riftwatch/riftwatch/internal/app"
	"github.com/riftwatch/riftwatch/internal/config"
	"github.com/riftwatch/riftwatch/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn(ctx, "invalid timezone; falling back to UTC", logger.String("timezone", cfg.Timezone), logger.Error(err))
		loc = time.UTC
	}

	// Durable registry store.
	store, err := repository.Open(cfg.DatabasePath)
	if err != nil {
		os.Stderr.WriteString("failed to open registry store: " + err.Error() + "\n")
		return
	}
	defer store.Close()

	registry, err := repository.NewRegistry(ctx, store)
	if err != nil {
		os.Stderr.WriteString("failed to load registry: " + err.Error() + "\n")
		return
	}

	riotClient := riot.NewClient(cfg.RiotAPIKey,
		riot.WithPlatformHost(cfg.PlatformHost),
		riot.WithRegionalHost(cfg.RegionalHost),
		riot.WithDDragonHost(cfg.DDragonHost),
		riot.WithDDragonVersion(cfg.DDragonVersion),
		riot.WithTimeout(time.Duration(cfg.RequestTimeoutSeconds)*time.Second),
	)

	notifier := notify.NewDiscordWebhook(cfg.WebhookURL)

	svc := app.New(riotClient, registry, notifier,
		app.WithLogger(log),
		app.WithPollInterval(time.Duration(cfg.PollIntervalSeconds)*time.Second),
		app.WithDigestSchedule(cfg.DigestHour, cfg.DigestMinute, loc),
		app.WithMatchGuardSize(cfg.MatchGuardSize),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Ops HTTP surface: registration, leaderboard, stats, health/metrics.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc, cfg.MaxLeaderboardLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
