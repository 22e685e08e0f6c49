package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"trade-history-service/internal/core/domain"
	"trade-history-service/internal/core/ports/mocks"
	"trade-history-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type executionTestDeps struct {
	svc     *ExecutionProjection
	orders  *mocks.MockOrdersRepository
	records *mocks.MockHistoryRecordsRepository
	cache   *mocks.MockOrderCache
	ctrl    *gomock.Controller
}

func setupExecutionProjection(t *testing.T) *executionTestDeps {
	ctrl := gomock.NewController(t)
	d := &executionTestDeps{
		orders:  mocks.NewMockOrdersRepository(ctrl),
		records: mocks.NewMockHistoryRecordsRepository(ctrl),
		cache:   mocks.NewMockOrderCache(ctrl),
		ctrl:    ctrl,
	}
	d.svc = NewExecutionProjection(d.orders, d.records, d.cache, zerolog.Nop())
	return d
}

func snapshot(status domain.OrderStatus, seq int64) *domain.Order {
	now := time.Now().UTC()
	return &domain.Order{
		ID:             uuid.New(),
		MatchingID:     uuid.New(),
		WalletID:       uuid.New(),
		Type:           domain.OrderTypeLimit,
		Side:           domain.OrderSideBuy,
		Status:         status,
		AssetPairID:    "BTCUSD",
		Volume:         decimal.NewFromInt(1),
		CreateDt:       now,
		RegisterDt:     now,
		StatusDt:       now,
		SequenceNumber: seq,
	}
}

func withTrade(o *domain.Order) *domain.Order {
	o.Trades = []domain.Trade{{
		ID:             uuid.New(),
		OrderID:        o.ID,
		WalletID:       o.WalletID,
		AssetPairID:    o.AssetPairID,
		BaseAssetID:    "BTC",
		BaseVolume:     decimal.NewFromInt(1),
		QuotingAssetID: "USD",
		QuotingVolume:  decimal.NewFromInt(-64000),
		Price:          decimal.NewFromInt(64000),
		Role:           domain.TradeRoleTaker,
		Timestamp:      time.Now().UTC(),
	}}
	return o
}

func TestExecutionProjection_Project_NonTerminalSkipped(t *testing.T) {
	d := setupExecutionProjection(t)
	defer d.ctrl.Finish()

	// No repository calls expected: in-flight snapshots never reach the store.
	batch := []*domain.Order{
		snapshot(domain.OrderStatusPlaced, 1),
		snapshot(domain.OrderStatusPartiallyMatched, 2),
		snapshot(domain.OrderStatusPending, 3),
	}

	res := d.svc.Project(context.Background(), batch)
	assert.False(t, res.Retry)
}

func TestExecutionProjection_Project_TerminalStoredWithTrades(t *testing.T) {
	d := setupExecutionProjection(t)
	defer d.ctrl.Finish()

	order := withTrade(snapshot(domain.OrderStatusMatched, 9))

	d.orders.EXPECT().UpsertBySequence(gomock.Any(), order).Return(true, nil)
	d.records.EXPECT().InsertBulk(gomock.Any(), gomock.Len(1)).
		DoAndReturn(func(_ context.Context, recs []*domain.HistoryRecord) error {
			assert.Equal(t, domain.HistoryKindTrade, recs[0].Kind)
			assert.Equal(t, order.Trades[0].ID, recs[0].ID)
			return nil
		})
	d.cache.EXPECT().Invalidate(gomock.Any(), order.ID).Return(nil)

	res := d.svc.Project(context.Background(), []*domain.Order{order})
	assert.False(t, res.Retry)
}

func TestExecutionProjection_Project_StaleSnapshotStillProjectsTrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ordersRepo := mocks.NewMockOrdersRepository(ctrl)
	recordsRepo := mocks.NewMockHistoryRecordsRepository(ctrl)
	cache := mocks.NewMockOrderCache(ctrl)

	var logBuf bytes.Buffer
	svc := NewExecutionProjection(ordersRepo, recordsRepo, cache, logger.NewWithWriter("warn", &logBuf))

	order := withTrade(snapshot(domain.OrderStatusCancelled, 2))

	// Rejected by the sequence gate: the trades are still appended (they are
	// deduped downstream), only the cache invalidation is skipped.
	ordersRepo.EXPECT().UpsertBySequence(gomock.Any(), order).Return(false, nil)
	recordsRepo.EXPECT().InsertBulk(gomock.Any(), gomock.Len(1)).Return(nil)

	res := svc.Project(context.Background(), []*domain.Order{order})
	assert.False(t, res.Retry)
	assert.Contains(t, logBuf.String(), "Skipped stale order snapshot")
}

func TestExecutionProjection_Project_RedeliveredBatchConverges(t *testing.T) {
	d := setupExecutionProjection(t)
	defer d.ctrl.Finish()

	order := withTrade(snapshot(domain.OrderStatusMatched, 7))

	// First delivery: the snapshot applies but the trade projection fails,
	// so the batch is requeued.
	first := d.orders.EXPECT().UpsertBySequence(gomock.Any(), order).Return(true, nil)
	failed := d.records.EXPECT().InsertBulk(gomock.Any(), gomock.Len(1)).
		Return(errors.New("connection reset")).After(first)

	res := d.svc.Project(context.Background(), []*domain.Order{order})
	assert.True(t, res.Retry)
	assert.Equal(t, DefaultBackoff, res.Backoff)

	// Redelivery: the snapshot is now stale against its own stored sequence
	// number, but the trades must still land.
	d.orders.EXPECT().UpsertBySequence(gomock.Any(), order).Return(false, nil).After(failed)
	d.records.EXPECT().InsertBulk(gomock.Any(), gomock.Len(1)).
		DoAndReturn(func(_ context.Context, recs []*domain.HistoryRecord) error {
			assert.Equal(t, order.Trades[0].ID, recs[0].ID)
			return nil
		})

	res = d.svc.Project(context.Background(), []*domain.Order{order})
	assert.False(t, res.Retry)
}

func TestExecutionProjection_Project_UpsertFailureRetries(t *testing.T) {
	d := setupExecutionProjection(t)
	defer d.ctrl.Finish()

	order := snapshot(domain.OrderStatusMatched, 4)
	d.orders.EXPECT().UpsertBySequence(gomock.Any(), order).Return(false, errors.New("deadlock"))

	res := d.svc.Project(context.Background(), []*domain.Order{order})
	assert.True(t, res.Retry)
	assert.Equal(t, DefaultBackoff, res.Backoff)
}

func TestExecutionProjection_Project_CacheFailureDoesNotRetry(t *testing.T) {
	d := setupExecutionProjection(t)
	defer d.ctrl.Finish()

	order := snapshot(domain.OrderStatusRejected, 5)
	d.orders.EXPECT().UpsertBySequence(gomock.Any(), order).Return(true, nil)
	d.cache.EXPECT().Invalidate(gomock.Any(), order.ID).Return(errors.New("redis down"))

	res := d.svc.Project(context.Background(), []*domain.Order{order})
	assert.False(t, res.Retry)
}
