package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"mogilev-express/internal/config"
	"mogilev-express/internal/logx"
	"mogilev-express/internal/transport/kafka"
)

// MustBuildWorkerContainer builds the DI container for the status-event worker.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	b := NewContainerBuilder()
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerRedis(container); err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerKafka(container); err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	return container, nil
}

func registerKafka(container *dig.Container) error {
	return provideAll(container,
		makeOrderStatusHandler,
		func(cfg *config.Config, logger logx.Logger, h kafka.HandleFunc) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
		},
	)
}

// WorkerRunner runs the status-event consumer.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun drives the consumer until shutdown.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(
	ctx context.Context,
	pool *pgxpool.Pool,
	rdb *redis.Client,
	logger logx.Logger,
	consumer *kafka.Consumer,
) error {
	if consumer == nil {
		return fmt.Errorf("kafka consumer is nil: worker container misconfigured")
	}
	defer closeWorker(pool, rdb, logger, consumer)

	logger.Info("express-worker started")
	return consumer.Run(ctx)
}

func closeWorker(pool *pgxpool.Pool, rdb *redis.Client, logger logx.Logger, consumer *kafka.Consumer) {
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Any("err", err))
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis close error", logx.Any("err", err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
