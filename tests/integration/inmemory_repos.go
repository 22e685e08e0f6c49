package integration

import (
	"context"
	"sort"
	"sync"
	"time"

	"trade-history-service/internal/core/domain"
	"trade-history-service/internal/core/ports"

	"github.com/google/uuid"
)

// --- In-Memory History Repo ---

// historyKey is the row identity: one operation can land in several wallets
// (transfer legs), so the wallet is part of the key.
type historyKey struct {
	id       uuid.UUID
	walletID uuid.UUID
}

type inMemoryHistoryRepo struct {
	mu      sync.RWMutex
	records map[historyKey]*domain.HistoryRecord
}

func newInMemoryHistoryRepo() *inMemoryHistoryRepo {
	return &inMemoryHistoryRepo{records: make(map[historyKey]*domain.HistoryRecord)}
}

func (r *inMemoryHistoryRepo) TryInsert(ctx context.Context, record *domain.HistoryRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := historyKey{id: record.ID, walletID: record.WalletID}
	if _, exists := r.records[key]; exists {
		return false, nil
	}
	clone := *record
	r.records[key] = &clone
	return true, nil
}

func (r *inMemoryHistoryRepo) InsertBulk(ctx context.Context, records []*domain.HistoryRecord) error {
	for _, record := range records {
		if _, err := r.TryInsert(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (r *inMemoryHistoryRepo) SetBlockchainHash(ctx context.Context, id uuid.UUID, hash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	applied := false
	for key, record := range r.records {
		if key.id != id {
			continue
		}
		if record.BlockchainHash == "" || record.BlockchainHash == hash {
			record.BlockchainHash = hash
			applied = true
		}
	}
	return applied, nil
}

func (r *inMemoryHistoryRepo) Get(ctx context.Context, id, walletID uuid.UUID) (*domain.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[historyKey{id: id, walletID: walletID}]
	if !ok {
		return nil, nil
	}
	clone := *record
	return &clone, nil
}

func (r *inMemoryHistoryRepo) GetByWallet(ctx context.Context, q ports.HistoryQuery) ([]domain.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.HistoryRecord
	for _, record := range r.records {
		if record.WalletID != q.WalletID {
			continue
		}
		if len(q.Kinds) > 0 && !containsKind(q.Kinds, record.Kind) {
			continue
		}
		if q.AssetPairID != "" && record.AssetPairID != q.AssetPairID {
			continue
		}
		if q.AssetID != "" && record.AssetID != q.AssetID && record.QuotingAssetID != q.AssetID {
			continue
		}
		if !inRange(record.Timestamp, q.From, q.To) {
			continue
		}
		out = append(out, *record)
	}
	sortByTimestampDesc(out)
	return page(out, q.Offset, q.Limit), nil
}

func (r *inMemoryHistoryRepo) GetTradesByWallet(ctx context.Context, q ports.TradeQuery) ([]domain.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.HistoryRecord
	for _, record := range r.records {
		if record.WalletID != q.WalletID || record.Kind != domain.HistoryKindTrade {
			continue
		}
		if q.AssetPairID != "" && record.AssetPairID != q.AssetPairID {
			continue
		}
		if q.AssetID != "" && record.AssetID != q.AssetID && record.QuotingAssetID != q.AssetID {
			continue
		}
		if q.BuyTrades != nil {
			if *q.BuyTrades && record.Volume.IsNegative() {
				continue
			}
			if !*q.BuyTrades && !record.Volume.IsNegative() {
				continue
			}
		}
		if !inRange(record.Timestamp, q.From, q.To) {
			continue
		}
		out = append(out, *record)
	}
	sortByTimestampDesc(out)
	return page(out, q.Offset, q.Limit), nil
}

func (r *inMemoryHistoryRepo) GetByDates(ctx context.Context, from, to time.Time, offset, limit int) ([]domain.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.HistoryRecord
	for _, record := range r.records {
		if record.Kind != domain.HistoryKindTrade {
			continue
		}
		if record.Timestamp.Before(from) || !record.Timestamp.Before(to) {
			continue
		}
		out = append(out, *record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return page(out, offset, limit), nil
}

// --- In-Memory Orders Repo ---

type inMemoryOrdersRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order
	// trades are append-only, keyed per order by trade id
	trades map[uuid.UUID]map[uuid.UUID]domain.Trade
}

func newInMemoryOrdersRepo() *inMemoryOrdersRepo {
	return &inMemoryOrdersRepo{
		orders: make(map[uuid.UUID]*domain.Order),
		trades: make(map[uuid.UUID]map[uuid.UUID]domain.Trade),
	}
}

func (r *inMemoryOrdersRepo) UpsertBySequence(ctx context.Context, order *domain.Order) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	applied := true
	if existing, ok := r.orders[order.ID]; ok && existing.SequenceNumber >= order.SequenceNumber {
		applied = false
	}
	if applied {
		clone := *order
		clone.Trades = nil
		r.orders[order.ID] = &clone
	}

	// Trades append even when the snapshot is stale, mirroring the store.
	byID := r.trades[order.ID]
	if byID == nil {
		byID = make(map[uuid.UUID]domain.Trade)
		r.trades[order.ID] = byID
	}
	for _, trade := range order.Trades {
		if _, exists := byID[trade.ID]; !exists {
			byID[trade.ID] = trade
		}
	}
	return applied, nil
}

func (r *inMemoryOrdersRepo) UpsertBulk(ctx context.Context, orders []*domain.Order) error {
	for _, order := range orders {
		if _, err := r.UpsertBySequence(ctx, order); err != nil {
			return err
		}
	}
	return nil
}

func (r *inMemoryOrdersRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	clone := *order
	return &clone, nil
}

func (r *inMemoryOrdersRepo) GetByWallet(ctx context.Context, q ports.OrderQuery) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Order
	for _, order := range r.orders {
		if order.WalletID != q.WalletID {
			continue
		}
		if len(q.Types) > 0 && !containsType(q.Types, order.Type) {
			continue
		}
		if len(q.Statuses) > 0 && !containsStatus(q.Statuses, order.Status) {
			continue
		}
		if q.AssetPairID != "" && order.AssetPairID != q.AssetPairID {
			continue
		}
		out = append(out, *order)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreateDt.After(out[j].CreateDt) })
	return page(out, q.Offset, q.Limit), nil
}

func (r *inMemoryOrdersRepo) GetTradesByOrder(ctx context.Context, walletID, orderID uuid.UUID) ([]domain.Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Trade
	for _, trade := range r.trades[orderID] {
		if trade.WalletID == walletID {
			out = append(out, trade)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// --- helpers ---

func containsKind(kinds []domain.HistoryKind, k domain.HistoryKind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

func containsType(types []domain.OrderType, t domain.OrderType) bool {
	for _, typ := range types {
		if typ == t {
			return true
		}
	}
	return false
}

func containsStatus(statuses []domain.OrderStatus, s domain.OrderStatus) bool {
	for _, status := range statuses {
		if status == s {
			return true
		}
	}
	return false
}

func inRange(ts time.Time, from, to *time.Time) bool {
	if from != nil && ts.Before(*from) {
		return false
	}
	if to != nil && !ts.Before(*to) {
		return false
	}
	return true
}

func sortByTimestampDesc(records []domain.HistoryRecord) {
	sort.Slice(records, func(i, j int) bool { return records[i].Timestamp.After(records[j].Timestamp) })
}

func page[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = ports.DefaultLimit
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
