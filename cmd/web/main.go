package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ironhouse-gym/gym-admin/internal/adapters/httpapi"
	memgymstore "github.com/ironhouse-gym/gym-admin/internal/adapters/memory/gymstore"
	memidempotency "github.com/ironhouse-gym/gym-admin/internal/adapters/memory/idempotency"
	"github.com/ironhouse-gym/gym-admin/internal/app/gym"
	"github.com/ironhouse-gym/gym-admin/internal/app/reports"
	platformclock "github.com/ironhouse-gym/gym-admin/internal/platform/clock"
	"github.com/ironhouse-gym/gym-admin/internal/platform/config"
)

func main() {
	cfg, err := config.LoadWebConfig()
	if err != nil {
		slog.Error("invalid config", slog.Any("err", err))
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		slog.Error("invalid log config", slog.Any("err", err))
		os.Exit(1)
	}
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("invalid timezone", slog.Any("err", err))
		os.Exit(1)
	}

	// All state lives in memory and starts from the sample data on every boot.
	store := memgymstore.NewSeededStore()

	clk := platformclock.NewSystemClock()
	gymSvc := gym.NewService(store, clk)
	gymSvc.Location = loc
	reportsSvc := reports.NewService(store)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	api, err := httpapi.NewServer(gymSvc, reportsSvc, memidempotency.NewStore())
	if err != nil {
		logger.Error("load templates", slog.Any("err", err))
		os.Exit(1)
	}
	api.Logger = logger
	api.Clock = clk
	api.Metrics = httpapi.NewMetrics(reg)

	opts := httpapi.RouterOptions{Gatherer: reg}
	if cfg.CSRFKey != "" {
		opts.CSRFKey = []byte(cfg.CSRFKey)
		opts.CSRFTrustedOrigins = []string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port}
	} else {
		logger.Warn("CSRF_KEY not set; form posts are not CSRF-protected")
	}
	if cfg.StaticDir != "" {
		opts.Static = os.DirFS(cfg.StaticDir)
		if _, err := fs.Stat(opts.Static, "app.js"); err != nil {
			logger.Warn("static dir has no app.js", slog.String("dir", cfg.StaticDir), slog.Any("err", err))
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouterWithOptions(api, opts),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("gym admin listening",
			slog.String("addr", srv.Addr),
			slog.String("timezone", loc.String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", slog.Any("err", err))
	}
}

func newLogger(cfg config.WebConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, err
	}
	hopts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, hopts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, hopts)), nil
}
