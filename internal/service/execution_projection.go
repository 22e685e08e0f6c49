package service

import (
	"context"

	"trade-history-service/internal/core/domain"
	"trade-history-service/internal/core/ports"

	"github.com/rs/zerolog"
)

// ExecutionProjection persists order snapshots and their trades from
// matching engine events.
type ExecutionProjection struct {
	orders  ports.OrdersRepository
	records ports.HistoryRecordsRepository
	cache   ports.OrderCache
	log     zerolog.Logger
}

// NewExecutionProjection creates a new ExecutionProjection.
func NewExecutionProjection(
	orders ports.OrdersRepository,
	records ports.HistoryRecordsRepository,
	cache ports.OrderCache,
	log zerolog.Logger,
) *ExecutionProjection {
	return &ExecutionProjection{
		orders:  orders,
		records: records,
		cache:   cache,
		log:     log,
	}
}

// Project stores the terminal order snapshots of a batch, projects their
// trades into the wallet history, and invalidates the read cache. In-flight
// snapshots (Placed, PartiallyMatched, Pending) are dropped: only settled
// order state belongs in history, and the sequence gate would discard most
// of them anyway once the terminal snapshot arrives.
func (s *ExecutionProjection) Project(ctx context.Context, orders []*domain.Order) Result {
	for _, order := range orders {
		if !order.Status.IsTerminal() {
			continue
		}

		applied, err := s.orders.UpsertBySequence(ctx, order)
		if err != nil {
			s.log.Error().Err(err).
				Str("order_id", order.ID.String()).
				Int64("sequence", order.SequenceNumber).
				Msg("Order upsert failed, batch will be retried")
			return RetryIn(DefaultBackoff)
		}

		// Trades are projected even for a stale snapshot. A redelivered
		// batch competes with its own stored sequence number, and its trades
		// may not have landed before the previous attempt failed; the
		// insert-if-absent path makes already-seen trades a no-op.
		if err := s.projectTrades(ctx, order); err != nil {
			s.log.Error().Err(err).
				Str("order_id", order.ID.String()).
				Msg("Trade history projection failed, batch will be retried")
			return RetryIn(DefaultBackoff)
		}

		if !applied {
			s.log.Warn().
				Str("order_id", order.ID.String()).
				Int64("sequence", order.SequenceNumber).
				Msg("Skipped stale order snapshot")
			continue
		}

		// The cached entry may hold an older snapshot without the merged
		// trade list, so drop it and let the read path refill from the
		// store. Best-effort: the store already holds the truth.
		if err := s.cache.Invalidate(ctx, order.ID); err != nil {
			s.log.Warn().Err(err).
				Str("order_id", order.ID.String()).
				Msg("Order cache invalidation failed")
		}
	}
	return OK()
}

func (s *ExecutionProjection) projectTrades(ctx context.Context, order *domain.Order) error {
	if len(order.Trades) == 0 {
		return nil
	}
	records := make([]*domain.HistoryRecord, 0, len(order.Trades))
	for i := range order.Trades {
		records = append(records, order.Trades[i].ToHistoryRecord())
	}
	return s.records.InsertBulk(ctx, records)
}
