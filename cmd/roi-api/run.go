package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/ap-automation/roi-planner/internal/api_server"
	"github.com/ap-automation/roi-planner/internal/config"
	"github.com/ap-automation/roi-planner/internal/events"
	"github.com/ap-automation/roi-planner/internal/store"
	"github.com/ap-automation/roi-planner/pkg/migrations"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the roi planner api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, teardown, err := setup()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		defer teardown()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			return fmt.Errorf("initializing data store: %w", err)
		}

		if err := migrations.MigrateStore(db, migrationsFolder); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		cache, err := newCache(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("initializing cache: %w", err)
		}
		defer cache.Close()

		s := store.NewStore(db, store.WithScenarioCache(cache))
		defer s.Close()

		writer, err := newEventWriter(cfg)
		if err != nil {
			return fmt.Errorf("initializing events writer: %w", err)
		}
		producer := events.NewEventProducer(writer)
		defer func() {
			if err := producer.Close(); err != nil {
				zap.S().Errorw("failed to close events producer", "error", err)
			}
		}()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		apiListener, err := newListener(cfg.Service.Address)
		if err != nil {
			return fmt.Errorf("creating listener: %w", err)
		}
		metricsListener, err := newListener(cfg.Service.MetricsAddress)
		if err != nil {
			return fmt.Errorf("creating metrics listener: %w", err)
		}

		server, err := apiserver.New(cfg, s, apiListener, producer, prometheus.DefaultRegisterer)
		if err != nil {
			return fmt.Errorf("creating api server: %w", err)
		}
		metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, metricsListener, server.StatsProvider())

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			defer cancel()
			return server.Run(gctx)
		})
		g.Go(func() error {
			defer cancel()
			return metricsServer.Run(gctx)
		})

		return g.Wait()
	},
}

func newCache(ctx context.Context, cfg *config.Config) (store.Cache, error) {
	if cfg.Cache.RedisAddr == "" {
		zap.S().Info("using in-process scenario cache")
		return store.NewMemoryCache(), nil
	}

	cache := store.NewRedisCache(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	if err := cache.Ping(ctx); err != nil {
		_ = cache.Close()
		return nil, err
	}
	zap.S().Infow("using redis scenario cache", "addr", cfg.Cache.RedisAddr)
	return cache, nil
}

func newEventWriter(cfg *config.Config) (events.Writer, error) {
	if cfg.Events.File == "" {
		return &events.StdoutWriter{}, nil
	}
	return events.NewFileWriter(cfg.Events.File)
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
