package service

import (
	"context"
	"errors"
	"testing"

	"trade-history-service/internal/core/domain"
	"trade-history-service/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHashProjection_Project_AllApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	records := mocks.NewMockHistoryRecordsRepository(ctrl)
	svc := NewHashProjection(records, zerolog.Nop())

	ops := []domain.HashBackfill{
		{OperationID: uuid.New(), Hash: "0xaaa"},
		{OperationID: uuid.New(), Hash: "0xbbb"},
	}
	records.EXPECT().SetBlockchainHash(gomock.Any(), ops[0].OperationID, "0xaaa").Return(true, nil)
	records.EXPECT().SetBlockchainHash(gomock.Any(), ops[1].OperationID, "0xbbb").Return(true, nil)

	res := svc.Project(context.Background(), ops)
	assert.False(t, res.Retry)
}

func TestHashProjection_Project_RecordNotLandedYetRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	records := mocks.NewMockHistoryRecordsRepository(ctrl)
	svc := NewHashProjection(records, zerolog.Nop())

	// The settlement stream raced ahead of the cash stream: the target
	// record is not stored yet. The batch must come back later.
	opID := uuid.New()
	records.EXPECT().SetBlockchainHash(gomock.Any(), opID, "0xccc").Return(false, nil)

	res := svc.Project(context.Background(), []domain.HashBackfill{{OperationID: opID, Hash: "0xccc"}})
	assert.True(t, res.Retry)
	assert.Equal(t, DefaultBackoff, res.Backoff)
}

func TestHashProjection_Project_PartialFailureRetriesWhole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	records := mocks.NewMockHistoryRecordsRepository(ctrl)
	svc := NewHashProjection(records, zerolog.Nop())

	// Cross-client settlement: both legs share one message. If the second
	// leg fails, the whole message retries so neither leg is lost; the
	// first leg's re-application is idempotent.
	ops := []domain.HashBackfill{
		{OperationID: uuid.New(), Hash: "0x"},
		{OperationID: uuid.New(), Hash: "0x"},
	}
	records.EXPECT().SetBlockchainHash(gomock.Any(), ops[0].OperationID, "0x").Return(true, nil)
	records.EXPECT().SetBlockchainHash(gomock.Any(), ops[1].OperationID, "0x").Return(false, errors.New("timeout"))

	res := svc.Project(context.Background(), ops)
	assert.True(t, res.Retry)
}
