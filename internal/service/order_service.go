package service

import (
	"context"
	"fmt"
	"time"

	"trade-history-service/internal/core/domain"
	"trade-history-service/internal/core/ports"
	"trade-history-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderServiceImpl implements ports.OrderService.
type OrderServiceImpl struct {
	orders   ports.OrdersRepository
	cache    ports.OrderCache
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewOrderService creates a new OrderServiceImpl.
func NewOrderService(orders ports.OrdersRepository, cache ports.OrderCache, cacheTTL time.Duration, log zerolog.Logger) *OrderServiceImpl {
	return &OrderServiceImpl{orders: orders, cache: cache, cacheTTL: cacheTTL, log: log}
}

// GetOrder fetches one order snapshot, cache first. Cache failures fall
// through to the store.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", id.String()).Msg("Order cache read failed, falling through to DB")
	}
	if cached != nil {
		return cached, nil
	}

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrNotFound("order")
	}

	if err := s.cache.Set(ctx, order, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("order_id", id.String()).Msg("Order cache write failed")
	}
	return order, nil
}

// GetByWallet lists order snapshots for a wallet, newest first.
func (s *OrderServiceImpl) GetByWallet(ctx context.Context, q ports.OrderQuery) ([]domain.Order, error) {
	orders, err := s.orders.GetByWallet(ctx, q)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("wallet orders: %w", err))
	}
	return orders, nil
}

// GetTradesByOrder lists the trades of one order in execution order.
func (s *OrderServiceImpl) GetTradesByOrder(ctx context.Context, walletID, orderID uuid.UUID) ([]domain.Trade, error) {
	trades, err := s.orders.GetTradesByOrder(ctx, walletID, orderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("order trades: %w", err))
	}
	return trades, nil
}
