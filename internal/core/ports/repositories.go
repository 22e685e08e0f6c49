package ports

import (
	"context"
	"time"

	"trade-history-service/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repositories.go -destination=mocks/mocks.go -package=mocks

// Pagination defaults applied when a query omits offset/limit.
const (
	DefaultOffset = 0
	DefaultLimit  = 1000
)

// HistoryQuery holds filter + pagination for wallet history reads.
type HistoryQuery struct {
	WalletID    uuid.UUID
	Kinds       []domain.HistoryKind
	Offset      int
	Limit       int
	AssetPairID string // empty = all pairs
	AssetID     string // empty = all assets
	From        *time.Time
	To          *time.Time
}

// TradeQuery holds filter + pagination for wallet trade reads.
type TradeQuery struct {
	WalletID    uuid.UUID
	Offset      int
	Limit       int
	AssetPairID string
	AssetID     string
	From        *time.Time
	To          *time.Time
	BuyTrades   *bool // true = positive base volume only, false = negative only
}

// OrderQuery holds filter + pagination for wallet order reads.
type OrderQuery struct {
	WalletID    uuid.UUID
	Types       []domain.OrderType
	Statuses    []domain.OrderStatus
	AssetPairID string
	Offset      int
	Limit       int
}

// HistoryRecordsRepository defines persistence for append-only history rows.
// All write paths are idempotent: duplicates surface as a false return, not
// an error.
type HistoryRecordsRepository interface {
	// TryInsert inserts the record if its identity (id, wallet_id) is
	// absent. Returns false (and no error) on an identity collision.
	TryInsert(ctx context.Context, record *domain.HistoryRecord) (bool, error)
	// InsertBulk inserts each record via the insert-if-absent path;
	// duplicates within the batch are silently skipped.
	InsertBulk(ctx context.Context, records []*domain.HistoryRecord) error
	// SetBlockchainHash back-fills the hash of a stored record across all
	// its wallet legs. Re-applying the same hash is benign (true); a value
	// differing from an already set hash never overwrites it. Returns false
	// when nothing was written: the record has not landed yet (retryable)
	// or the stored hash conflicts.
	SetBlockchainHash(ctx context.Context, id uuid.UUID, hash string) (bool, error)

	Get(ctx context.Context, id, walletID uuid.UUID) (*domain.HistoryRecord, error)
	GetByWallet(ctx context.Context, q HistoryQuery) ([]domain.HistoryRecord, error)
	GetTradesByWallet(ctx context.Context, q TradeQuery) ([]domain.HistoryRecord, error)
	GetByDates(ctx context.Context, from, to time.Time, offset, limit int) ([]domain.HistoryRecord, error)
}

// OrdersRepository defines persistence for order snapshots. Sequencing
// decisions live in the store: UpsertBySequence must be a single conditional
// write evaluated under the store's own concurrency control.
type OrdersRepository interface {
	// UpsertBySequence inserts the order, or replaces the stored snapshot if
	// the incoming sequence number is strictly greater. Returns false when
	// the stored snapshot is equal or newer (stale write, ignored).
	UpsertBySequence(ctx context.Context, order *domain.Order) (bool, error)
	// UpsertBulk applies UpsertBySequence to each order in arrival order.
	UpsertBulk(ctx context.Context, orders []*domain.Order) error

	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByWallet(ctx context.Context, q OrderQuery) ([]domain.Order, error)
	GetTradesByOrder(ctx context.Context, walletID, orderID uuid.UUID) ([]domain.Trade, error)
}

// OrderCache is a read-side cache of order snapshots.
type OrderCache interface {
	// Get returns nil, nil on a cache miss.
	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Set(ctx context.Context, order *domain.Order, ttl time.Duration) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}
