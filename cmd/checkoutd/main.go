package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartcheckout/internal/checkout"
	"github.com/nikolayk812/cartcheckout/internal/events"
	"github.com/nikolayk812/cartcheckout/internal/migrations"
	"github.com/nikolayk812/cartcheckout/internal/port"
	"github.com/nikolayk812/cartcheckout/internal/repository"
	"github.com/nikolayk812/cartcheckout/internal/shipping"
	"github.com/nikolayk812/cartcheckout/internal/storedir"
	httptransport "github.com/nikolayk812/cartcheckout/internal/transport/http"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "zap.NewProduction: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("checkoutd stopped", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	memStores := repository.NewMemoryStoreDirectory()

	var (
		orders      port.OrderRepository = repository.NewMemoryOrder()
		stores      port.StoreDirectory  = memStores
		storeWriter port.StoreWriter     = memStores
	)

	if cfg.DatabaseURL != "" {
		if err := migrations.Up(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("migrations.Up: %w", err)
		}
		logger.Info("database migrations completed")

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("pgxpool.New: %w", err)
		}
		defer pool.Close()

		pgStores := repository.NewStoreDirectory(pool)

		orders = repository.NewOrder(pool)
		stores, storeWriter = pgStores, pgStores
	} else {
		logger.Warn("DATABASE_URL is empty, orders are kept in memory")
	}

	if cfg.StoresFile != "" {
		seeds, err := loadStores(cfg.StoresFile)
		if err != nil {
			return fmt.Errorf("loadStores: %w", err)
		}
		if err := seedStores(ctx, storeWriter, seeds); err != nil {
			return fmt.Errorf("seedStores: %w", err)
		}
		logger.Info("stores seeded", zap.String("file", cfg.StoresFile), zap.Int("count", len(seeds)))
	} else if cfg.DatabaseURL == "" {
		logger.Warn("STORES_FILE is empty, pickup checkouts will find no store locations")
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = client.Close() }()

		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, store cache degrades to pass-through", zap.Error(err))
		}

		stores = storedir.NewCached(client, stores, cfg.StoreTTL, logger)
	}

	var publisher port.OrderEventPublisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Warn("kafka writer close", zap.Error(err))
			}
		}()
		publisher = kafkaPublisher
	}

	table, err := shipping.NewTable(cfg.Currency, cfg.DefaultShippingFee, nil)
	if err != nil {
		return fmt.Errorf("shipping.NewTable: %w", err)
	}
	quoter := shipping.NewBreaker(table, shipping.BreakerConfig{}, logger)

	orchestrator := checkout.New(checkout.Config{
		Currency:       cfg.Currency,
		LookupTimeout:  cfg.LookupTimeout,
		QuoteTimeout:   cfg.QuoteTimeout,
		PersistTimeout: cfg.PersistTimeout,
	}, stores, quoter, orders, publisher, logger)

	handler := httptransport.NewHandler(orchestrator, cfg.RequestTimeout, logger)
	router := httptransport.NewRouter(handler, cfg.RequestTimeout, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "checkoutd"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("checkoutd listening", zap.String("addr", srv.Addr), zap.Stringer("currency", cfg.Currency))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}
