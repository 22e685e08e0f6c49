package ports

import (
	"context"
	"time"

	"trade-history-service/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=services.go -destination=mocks/service_mocks.go -package=mocks

// HistoryService is the read side for wallet history.
type HistoryService interface {
	GetRecord(ctx context.Context, id, walletID uuid.UUID) (*domain.HistoryRecord, error)
	GetByWallet(ctx context.Context, q HistoryQuery) ([]domain.HistoryRecord, error)
	GetTradesByWallet(ctx context.Context, q TradeQuery) ([]domain.HistoryRecord, error)
	GetByDates(ctx context.Context, from, to time.Time, offset, limit int) ([]domain.HistoryRecord, error)
}

// OrderService is the read side for order snapshots.
type OrderService interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByWallet(ctx context.Context, q OrderQuery) ([]domain.Order, error)
	GetTradesByOrder(ctx context.Context, walletID, orderID uuid.UUID) ([]domain.Trade, error)
}
