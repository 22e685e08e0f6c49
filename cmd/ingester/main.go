package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"trade-history-service/config"
	"trade-history-service/internal/adapter/queue"
	"trade-history-service/internal/adapter/queue/contract"
	pgStorage "trade-history-service/internal/adapter/storage/postgres"
	redisStorage "trade-history-service/internal/adapter/storage/redis"
	"trade-history-service/internal/core/domain"
	"trade-history-service/internal/service"
	"trade-history-service/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().Msg("Starting Trade History ingester")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	historyRepo := pgStorage.NewHistoryRepo(pool)
	ordersRepo := pgStorage.NewOrdersRepo(pool)
	orderCache := redisStorage.NewOrderCache(rdb)

	// Initialize projections
	cashProj := service.NewCashProjection(historyRepo, logger.Component(log, "cash-projection"))
	hashProj := service.NewHashProjection(historyRepo, logger.Component(log, "hash-projection"))
	execProj := service.NewExecutionProjection(ordersRepo, historyRepo, orderCache, logger.Component(log, "execution-projection"))

	// One reader per stream; each batches the decoded messages and hands
	// the flattened payloads to its projection.
	cashReader := queue.NewReader(
		readerConfig(cfg.RabbitMQ, cfg.RabbitMQ.Cash),
		contract.DecodeCashUpdate,
		func(ctx context.Context, batch []contract.CashUpdate) service.Result {
			var records []*domain.HistoryRecord
			for _, u := range batch {
				records = append(records, u.Records...)
			}
			return cashProj.Project(ctx, records)
		},
		log,
	)

	hashReader := queue.NewReader(
		readerConfig(cfg.RabbitMQ, cfg.RabbitMQ.Hash),
		contract.DecodeHashUpdate,
		func(ctx context.Context, batch []contract.HashUpdate) service.Result {
			var ops []domain.HashBackfill
			for _, u := range batch {
				ops = append(ops, u.Ops...)
			}
			return hashProj.Project(ctx, ops)
		},
		log,
	)

	execReader := queue.NewReader(
		readerConfig(cfg.RabbitMQ, cfg.RabbitMQ.Execution),
		contract.DecodeOrderUpdate,
		func(ctx context.Context, batch []contract.OrderUpdate) service.Result {
			var orders []*domain.Order
			for _, u := range batch {
				orders = append(orders, u.Orders...)
			}
			return execProj.Project(ctx, orders)
		},
		log,
	)

	cashReader.Start()
	hashReader.Start()
	execReader.Start()
	log.Info().Msg("All stream readers started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down readers...")

	cashReader.Stop()
	hashReader.Stop()
	execReader.Stop()

	log.Info().Msg("Ingester exited")
}

func readerConfig(mq config.RabbitMQConfig, binding config.QueueBinding) queue.Config {
	return queue.Config{
		URI:         mq.URI,
		Exchange:    binding.Exchange,
		Queue:       binding.Queue,
		RoutingKeys: binding.RoutingKeys,
		Prefetch:    mq.Prefetch,
		BatchSize:   mq.BatchSize,
	}
}
