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

// HistoryServiceImpl implements ports.HistoryService.
type HistoryServiceImpl struct {
	records ports.HistoryRecordsRepository
	log     zerolog.Logger
}

// NewHistoryService creates a new HistoryServiceImpl.
func NewHistoryService(records ports.HistoryRecordsRepository, log zerolog.Logger) *HistoryServiceImpl {
	return &HistoryServiceImpl{records: records, log: log}
}

// GetRecord fetches one history record scoped to its owning wallet.
func (s *HistoryServiceImpl) GetRecord(ctx context.Context, id, walletID uuid.UUID) (*domain.HistoryRecord, error) {
	rec, err := s.records.Get(ctx, id, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get history record: %w", err))
	}
	if rec == nil {
		return nil, apperror.ErrNotFound("history record")
	}
	return rec, nil
}

// GetByWallet lists wallet history, newest first.
func (s *HistoryServiceImpl) GetByWallet(ctx context.Context, q ports.HistoryQuery) ([]domain.HistoryRecord, error) {
	records, err := s.records.GetByWallet(ctx, q)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("wallet history: %w", err))
	}
	return records, nil
}

// GetTradesByWallet lists wallet trades, newest first.
func (s *HistoryServiceImpl) GetTradesByWallet(ctx context.Context, q ports.TradeQuery) ([]domain.HistoryRecord, error) {
	records, err := s.records.GetTradesByWallet(ctx, q)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("wallet trades: %w", err))
	}
	return records, nil
}

// GetByDates lists all trades in [from, to), oldest first.
func (s *HistoryServiceImpl) GetByDates(ctx context.Context, from, to time.Time, offset, limit int) ([]domain.HistoryRecord, error) {
	if !to.After(from) {
		return nil, apperror.Validation("to must be after from")
	}
	records, err := s.records.GetByDates(ctx, from, to, offset, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("trades by dates: %w", err))
	}
	return records, nil
}
