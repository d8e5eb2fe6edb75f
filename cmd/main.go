package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hqin/oicoach/internal/adapters/http/api"
	season "github.com/hqin/oicoach/internal/app"
	"github.com/hqin/oicoach/internal/config"
	"github.com/hqin/oicoach/internal/domain/randx"
	"github.com/hqin/oicoach/internal/domain/roster"
	"github.com/hqin/oicoach/pkg/logger"
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
	defer func() {
		_ = logger.Sync()
	}()
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

	// A server started without an external save gets a generated roster.
	src := randx.New()
	r, err := roster.Generate(src, cfg.RosterSize)
	if err != nil {
		os.Stderr.WriteString("failed to generate roster: " + err.Error() + "\n")
		return
	}

	sess, err := season.New(r,
		season.WithConfig(cfg),
		season.WithSource(src),
		season.WithLogger(log),
	)
	if err != nil {
		os.Stderr.WriteString("failed to create session: " + err.Error() + "\n")
		return
	}
	log.Info(ctx, "season session ready",
		logger.Int("roster", r.Len()),
		logger.Int("seasonWeeks", cfg.SeasonWeeks),
		logger.String("province", cfg.ProvinceTier),
	)

	mux := http.NewServeMux()
	apiServer := api.NewServer(sess, sess)
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
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}
