package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"trade-history-service/internal/core/domain"
	"trade-history-service/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func cashRecord() *domain.HistoryRecord {
	return domain.NewCashIn(uuid.New(), uuid.New(), "BTC", decimal.NewFromInt(1), nil, time.Now().UTC())
}

func TestCashProjection_Project_AllInserted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	records := mocks.NewMockHistoryRecordsRepository(ctrl)
	svc := NewCashProjection(records, zerolog.Nop())

	batch := []*domain.HistoryRecord{cashRecord(), cashRecord()}
	records.EXPECT().TryInsert(gomock.Any(), batch[0]).Return(true, nil)
	records.EXPECT().TryInsert(gomock.Any(), batch[1]).Return(true, nil)

	res := svc.Project(context.Background(), batch)
	assert.False(t, res.Retry)
}

func TestCashProjection_Project_DuplicateIsBenign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	records := mocks.NewMockHistoryRecordsRepository(ctrl)
	svc := NewCashProjection(records, zerolog.Nop())

	batch := []*domain.HistoryRecord{cashRecord(), cashRecord()}
	records.EXPECT().TryInsert(gomock.Any(), batch[0]).Return(false, nil)
	records.EXPECT().TryInsert(gomock.Any(), batch[1]).Return(true, nil)

	// A redelivered operation is skipped, not failed: the batch still acks.
	res := svc.Project(context.Background(), batch)
	assert.False(t, res.Retry)
}

func TestCashProjection_Project_StoreFailureRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	records := mocks.NewMockHistoryRecordsRepository(ctrl)
	svc := NewCashProjection(records, zerolog.Nop())

	batch := []*domain.HistoryRecord{cashRecord(), cashRecord()}
	records.EXPECT().TryInsert(gomock.Any(), batch[0]).Return(false, errors.New("connection reset"))

	res := svc.Project(context.Background(), batch)
	assert.True(t, res.Retry)
	assert.Equal(t, DefaultBackoff, res.Backoff)
}
