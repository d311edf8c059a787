package di

import (
	"context"
	"fmt"
	"time"

	drepo "QAmp/internal/domain/repository"
	"QAmp/internal/engine"
	"QAmp/internal/handler/api"
	internalrepo "QAmp/internal/repository"
	"QAmp/internal/service/marketdata"
	"QAmp/internal/usecase"
	"QAmp/pkg/cache"
	pkgch "QAmp/pkg/clickhouse"
	"QAmp/pkg/config"
	xhttp "QAmp/pkg/http"
	pkgkafka "QAmp/pkg/kafka"
	"QAmp/pkg/logger"
	"QAmp/pkg/metrics"
	"QAmp/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideCache builds the return-series cache: layered memory+Redis when
// Redis is enabled, memory-only otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	memOpts := []cache.MemoryOption{}
	if cfg.Cache.MemoryMaxSize > 0 {
		memOpts = append(memOpts, cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize))
	}
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(memOpts...), nil
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Addr),
		cache.WithRedisAuth(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
		cache.WithRedisPrefix("qamp"),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc, memOpts...), nil
}

// ProvideReturnsSource creates the market-data returns source.
func ProvideReturnsSource(cfg *config.Config, c cache.Service, l *logger.Logger) drepo.ReturnsSource {
	return marketdata.New(
		cfg.MarketData.BaseURL,
		cfg.MarketData.APIKey,
		cfg.MarketData.Timeout,
		cfg.MarketData.Retries,
		c,
		cfg.MarketData.CacheTTL,
		l,
	)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db := cfg.ClickHouse.Database
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + db,
		"CREATE TABLE IF NOT EXISTS " + db + ".estimations (" +
			"ts DateTime, ticker String, classical_mean Float64, " +
			"classical_positive_prob Float64, quantum_positive_prob Float64, " +
			"method String, n_samples UInt32" +
			") ENGINE=MergeTree ORDER BY (ticker, ts)",
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideResultStore creates the ClickHouse result store, or nil when
// persistence is disabled.
func ProvideResultStore(client *pkgch.Client, cfg *config.Config) drepo.ResultStore {
	if client == nil {
		return nil
	}
	return internalrepo.NewClickHouseResultStore(client.DB(), cfg.ClickHouse.Database+".estimations")
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithBatch(cfg.Kafka.BatchSize, cfg.Kafka.Linger),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideResultPublisher creates the Kafka result publisher, or nil when
// publishing is disabled.
func ProvideResultPublisher(producer *pkgkafka.Producer, cfg *config.Config) drepo.ResultPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaResultPublisher(producer, cfg.Kafka.Topic)
}

// ProvideBatchEstimator creates the estimation use case.
func ProvideBatchEstimator(
	source drepo.ReturnsSource,
	store drepo.ResultStore,
	pub drepo.ResultPublisher,
	m drepo.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.BatchEstimator {
	return usecase.NewBatchEstimator(source, store, pub, m, l,
		engine.QuantumConfig{
			NoiseSigma: cfg.Estimator.NoiseSigma,
			Available:  cfg.Estimator.SimulatorAvailable,
		},
		cfg.Estimator.Parallelism,
	)
}

// ProvideHandler creates the HTTP route handler.
func ProvideHandler(l *logger.Logger, est *usecase.BatchEstimator) xhttp.Handler {
	return api.NewEstimateEchoHandler(l, est)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	handler xhttp.Handler,
	chClient *pkgch.Client,
	pub drepo.ResultPublisher,
) *server.App {
	return server.New(cfg, l, handler, chClient, pub)
}
