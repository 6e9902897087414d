// Command parks serves the Bristol parks catalog over HTTP, reloading it from
// the configured open-data source on request and on a refresh interval.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/parks-data-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/parks-data-service/internal/adapter/kafka"
	"github.com/couchcryptid/parks-data-service/internal/adapter/source"
	"github.com/couchcryptid/parks-data-service/internal/config"
	"github.com/couchcryptid/parks-data-service/internal/domain"
	"github.com/couchcryptid/parks-data-service/internal/observability"
	"github.com/couchcryptid/parks-data-service/internal/pipeline"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	src, closeSource := buildSource(cfg, logger, metrics)
	defer closeSource()

	// Initialize publisher (feature-flagged via KAFKA_BROKERS).
	var publisher pipeline.Publisher
	var writer *kafkaadapter.Writer
	if cfg.PublishEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	loader := pipeline.New(src, pipeline.NewTransformer(domain.DefaultDelimiter), publisher, logger, metrics, cfg.RefreshInterval)
	srv := httpadapter.NewServer(cfg.HTTPAddr, loader, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return loader.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("service error", "error", err)
	}

	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// buildSource assembles the payload source from configuration. It returns a
// nil source when neither a URL nor a file is configured, which makes every
// load serve the built-in sample parks.
func buildSource(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (domain.Source, func()) {
	var sources []domain.Source
	if cfg.SourceURL != "" {
		sources = append(sources, source.NewHTTP(cfg.SourceURL, cfg.SourceTimeout, logger))
	}
	if cfg.SourceFile != "" {
		sources = append(sources, source.NewFile(cfg.SourceFile))
	}
	if len(sources) == 0 {
		logger.Warn("no payload source configured, serving sample parks")
		return nil, func() {}
	}

	var src domain.Source = source.NewChain(logger, metrics, sources...)
	if !cfg.PayloadCacheEnabled() {
		logger.Info("payload cache disabled")
		return src, func() {}
	}

	store := source.NewRedisStore(source.OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), cfg.PayloadCacheKey, cfg.PayloadCacheTTL)
	logger.Info("payload cache enabled", "redis_addr", cfg.RedisAddr, "key", cfg.PayloadCacheKey, "ttl", cfg.PayloadCacheTTL)
	closeStore := func() {
		if err := store.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}
	return source.NewCached(src, store, logger, metrics), closeStore
}
