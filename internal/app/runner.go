package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"mogilev-express/internal/logx"
)

// MustRun starts the HTTP server using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

func run(container *dig.Container) error {
	return container.Invoke(func(
		server *http.Server,
		ctx context.Context,
		pool *pgxpool.Pool,
		rdb *redis.Client,
		logger logx.Logger,
	) error {
		startServer(server, logger)
		waitForShutdown(ctx, logger)
		gracefulShutdown(server, logger, 15*time.Second)
		closeResources(pool, rdb, server, logger)
		return nil
	})
}

func startServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("service-dispatch listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down service-dispatch...")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Any("err", err))
	}
}

func closeResources(pool *pgxpool.Pool, rdb *redis.Client, server *http.Server, logger logx.Logger) {
	if err := server.Close(); err != nil {
		logger.Error("server close error", logx.Any("err", err))
	}
	if err := rdb.Close(); err != nil {
		logger.Error("redis close error", logx.Any("err", err))
	}
	pool.Close()
}
