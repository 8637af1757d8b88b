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

	"github.com/rs/zerolog/log"
	"github.com/tsanders-rh/exopolicy/internal/api"
	"github.com/tsanders-rh/exopolicy/internal/cloudconfig"
	"github.com/tsanders-rh/exopolicy/internal/logging"
	"github.com/tsanders-rh/exopolicy/internal/policy"
	"github.com/tsanders-rh/exopolicy/internal/settings"
)

func main() {
	settingsFile := flag.String("config", os.Getenv("SETTINGS_FILE"), "optional YAML settings file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), settings.Usage())
	}
	flag.Parse()

	// Load service settings
	cfg, err := settings.NewSettings(*settingsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		os.Exit(1)
	}

	if _, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logging: %v\n", err)
		os.Exit(1)
	}

	// Load cloud configuration
	log.Info().
		Str("configuration", cfg.Sources.ConfigurationPath).
		Str("clouds", cfg.Sources.CloudConfigsPath).
		Msg("loading cloud configuration")

	loader := cloudconfig.NewLoader(cfg.Sources.ConfigurationPath, cfg.Sources.CloudConfigsPath)
	registry, err := cloudconfig.NewRegistry(loader)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load cloud configuration")
	}

	log.Info().
		Str("snapshot", registry.Snapshot().ID()).
		Int("clouds", registry.Count()).
		Msg("cloud configuration loaded")

	// Initialize policy engine
	policyEngine := policy.NewEngine(registry)

	serverConfig := api.ServerConfigFromSettings(cfg.Server)
	log.Info().
		Int("port", serverConfig.Port).
		Strs("cors_origins", serverConfig.AllowedOrigins).
		Bool("admin_routes", serverConfig.AdminToken != "").
		Bool("watch", cfg.Sources.Watch).
		Msg("server configured")

	server := api.NewServer(serverConfig, registry, policyEngine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Sources.Watch {
		watcher, err := cloudconfig.NewWatcher(registry, cfg.Sources.WatchDebounce)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create configuration watcher")
		}
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Error().Err(err).Msg("configuration watcher stopped")
			}
		}()
	}

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// SIGHUP reloads configuration; SIGINT and SIGTERM shut down
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	for sig := range signals {
		if sig != syscall.SIGHUP {
			break
		}
		log.Info().Msg("received SIGHUP, reloading cloud configuration")
		if err := registry.Reload(); err != nil {
			log.Error().Err(err).Msg("reload failed")
		}
	}

	log.Info().Msg("shutting down server")
	cancel()

	// Gracefully shutdown the server with a timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
