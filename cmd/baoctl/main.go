package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fekuna/bao-console/config"
	"github.com/fekuna/bao-console/internal/activity"
	"github.com/fekuna/bao-console/internal/activity/listener"
	"github.com/fekuna/bao-console/internal/apiclient"
	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/cache"
	"github.com/fekuna/bao-console/internal/inventory"
	"github.com/fekuna/bao-console/internal/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		Filename:          cfg.Logger.Filename,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, cfg, appLogger)
	stop()
	_ = appLogger.Sync()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config, appLogger logger.ZapLogger) int {
	// 3. Session store and API client
	tokens, err := auth.NewFileStore(cfg.Session.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	client := apiclient.New(cfg.Server.BaseURL, cfg.Server.Timeout, tokens, appLogger)

	// 4. Shared cache
	backend := newCacheBackend(ctx, cfg, appLogger)
	store := cache.NewStore(backend, cfg.Cache.TTL, appLogger)
	defer store.Close()

	// 5. Activity bus, feed and cache invalidation
	bus := activity.NewBus(appLogger)
	feed := activity.NewFeed(activity.DefaultFeedSize)
	if err := activity.Wire(bus, feed, store, appLogger); err != nil {
		appLogger.Error("Could not wire activity bus", zap.Error(err))
		return 1
	}

	// 6. Optional Kafka listener for mutations made elsewhere
	if cfg.Kafka.Enabled {
		reader := listener.NewKafkaReader(&listener.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer reader.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
		go listener.NewActivityListener(reader, bus, appLogger).Start(ctx)
	}

	// 7. Commands
	root := newRootCommand(&deps{
		cfg:    cfg,
		client: client,
		tokens: tokens,
		store:  store,
		bus:    bus,
		feed:   feed,
		locker: newStockLocker(backend),
		logger: appLogger,
	})
	if err := root.ExecuteContext(ctx); err != nil {
		appLogger.Debug("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// newCacheBackend falls back to the in-process backend when redis is unreachable.
func newCacheBackend(ctx context.Context, cfg *config.Config, appLogger logger.ZapLogger) cache.Backend {
	if cfg.Cache.Backend != "redis" {
		return cache.NewMemoryBackend()
	}
	backend, err := cache.NewRedisBackend(ctx, &cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis, using memory cache", zap.Error(err))
		return cache.NewMemoryBackend()
	}
	appLogger.Debug("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	return backend
}

// newStockLocker shares stock locks through redis when the cache lives there.
func newStockLocker(backend cache.Backend) inventory.Locker {
	if rb, ok := backend.(*cache.RedisBackend); ok {
		return inventory.NewRedisLocker(rb.Client)
	}
	return inventory.NewLocalLocker()
}
