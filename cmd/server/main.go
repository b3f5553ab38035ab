package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/me/rickdex/internal/config"
	"github.com/me/rickdex/internal/directory"
	"github.com/me/rickdex/internal/logging"
	"github.com/me/rickdex/internal/query"
	"github.com/me/rickdex/internal/rickmorty"
	"github.com/me/rickdex/internal/server"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = server.Version

func main() {
	cfg := config.DefaultServerConfig()

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	flag.StringVar(&cfg.APIBaseURL, "api-url", cfg.APIBaseURL, "Character catalog base URL (or "+config.EnvAPIURL+" env)")
	flag.DurationVar(&cfg.StaleTime, "stale-time", cfg.StaleTime, "How long a cached read is served without refetching")
	flag.DurationVar(&cfg.GCTime, "gc-time", cfg.GCTime, "How long an unread cached key is kept")
	flag.DurationVar(&cfg.HTTPTimeout, "http-timeout", cfg.HTTPTimeout, "Catalog request timeout (0 for none)")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	configFile := flag.String("config", "", "Path to a YAML config file; flags override its values")

	flag.Parse()

	if *configFile != "" {
		merged, err := loadConfig(*configFile, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		cfg = merged
	}
	config.ApplyEnv(&cfg)
	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	catalog := rickmorty.NewClient(rickmorty.ClientConfig{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
	}, logger)
	cache := query.New(query.Config{StaleTime: cfg.StaleTime, GCTime: cfg.GCTime}, logger)
	dir := directory.New(catalog, cache, logger)

	srv, err := server.New(cfg, dir, logger, server.WithVersion(version))
	if err != nil {
		fmt.Fprintf(os.Stderr, "create server: %v\n", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Evict idle cache entries in background.
	go func() {
		if err := cache.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("cache janitor stopped", "error", err)
		}
	}()

	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "upstream", cfg.APIBaseURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// loadConfig reads the config file over the defaults, then re-applies every flag
// that was set explicitly on the command line.
func loadConfig(path string, flagged config.ServerConfig) (config.ServerConfig, error) {
	cfg := config.DefaultServerConfig()
	if err := config.LoadFile(path, &cfg); err != nil {
		return cfg, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = flagged.Addr
		case "log-level":
			cfg.LogLevel = flagged.LogLevel
		case "log-format":
			cfg.LogFormat = flagged.LogFormat
		case "api-url":
			cfg.APIBaseURL = flagged.APIBaseURL
		case "stale-time":
			cfg.StaleTime = flagged.StaleTime
		case "gc-time":
			cfg.GCTime = flagged.GCTime
		case "http-timeout":
			cfg.HTTPTimeout = flagged.HTTPTimeout
		}
	})
	return cfg, nil
}
