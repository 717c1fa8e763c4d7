package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/weft-ui/weft/internal/config"
	"github.com/weft-ui/weft/pkg/middleware"
	"github.com/weft-ui/weft/pkg/server"
	"github.com/weft-ui/weft/pkg/session"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		address    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo component tree",
		Long: `Start a server hosting the built-in demo: two date inputs, each an
instance of the same component mounted under its own scope.

Examples:
  weft serve
  weft serve --address=:9000
  weft serve --config=weft.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, address)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.ConfigFileName, "Path to configuration file")
	cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address (overrides config)")

	return cmd
}

func runServe(configPath, address string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if address != "" {
		cfg.Server.Address = address
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	srvCfg := &server.Config{
		Address:         cfg.Server.Address,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Session: &server.SessionConfig{
			ReadTimeout:  cfg.Session.ReadTimeout,
			WriteTimeout: cfg.Session.WriteTimeout,
			IdleTimeout:  cfg.Session.IdleTimeout,
		},
	}

	opts := []server.Option{
		server.WithLogger(logger),
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	opts = append(opts, server.WithSessionStore(store, cfg.Session.TTL))

	if cfg.Metrics {
		opts = append(opts,
			server.WithMiddleware(middleware.Prometheus()),
			server.WithHandler("/metrics", promhttp.Handler()),
		)
	}
	if cfg.Tracing {
		opts = append(opts, server.WithMiddleware(middleware.OpenTelemetry()))
	}

	srv := server.New(srvCfg, mountDemo, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("weft %s listening on %s\n", version, cfg.Server.Address)
	return srv.ListenAndServe(ctx)
}

// newStore picks the snapshot backend: Redis when configured, process
// memory otherwise.
func newStore(cfg *config.Config) (session.Store, error) {
	if cfg.Redis.Addr == "" {
		return session.NewMemoryStore(), nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return session.NewRedisStore(client, session.WithRedisPrefix(cfg.Redis.KeyPrefix)), nil
}
