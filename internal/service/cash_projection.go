package service

import (
	"context"

	"trade-history-service/internal/core/domain"
	"trade-history-service/internal/core/ports"

	"github.com/rs/zerolog"
)

// CashProjection projects cash operation events into history records.
type CashProjection struct {
	records ports.HistoryRecordsRepository
	log     zerolog.Logger
}

// NewCashProjection creates a new CashProjection.
func NewCashProjection(records ports.HistoryRecordsRepository, log zerolog.Logger) *CashProjection {
	return &CashProjection{records: records, log: log}
}

// Project inserts the batch with insert-if-absent semantics. A redelivered
// operation is skipped with a warning; a store failure retries the whole
// batch so no record of it is lost.
func (s *CashProjection) Project(ctx context.Context, records []*domain.HistoryRecord) Result {
	for _, rec := range records {
		inserted, err := s.records.TryInsert(ctx, rec)
		if err != nil {
			s.log.Error().Err(err).
				Str("operation_id", rec.ID.String()).
				Msg("Cash record insert failed, batch will be retried")
			return RetryIn(DefaultBackoff)
		}
		if !inserted {
			s.log.Warn().
				Str("operation_id", rec.ID.String()).
				Str("wallet_id", rec.WalletID.String()).
				Str("kind", string(rec.Kind)).
				Msg("Skipped duplicated history record")
		}
	}
	return OK()
}
