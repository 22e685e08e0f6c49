package service

import (
	"context"

	"trade-history-service/internal/core/domain"
	"trade-history-service/internal/core/ports"

	"github.com/rs/zerolog"
)

// HashProjection back-fills blockchain hashes onto settled cash operations.
type HashProjection struct {
	records ports.HistoryRecordsRepository
	log     zerolog.Logger
}

// NewHashProjection creates a new HashProjection.
func NewHashProjection(records ports.HistoryRecordsRepository, log zerolog.Logger) *HashProjection {
	return &HashProjection{records: records, log: log}
}

// Project applies the back-fills. The settlement stream can outrun the cash
// stream, so a missing target record is not an error: the whole batch is
// retried until the record lands. Re-applying an already set hash is benign.
func (s *HashProjection) Project(ctx context.Context, ops []domain.HashBackfill) Result {
	for _, op := range ops {
		ok, err := s.records.SetBlockchainHash(ctx, op.OperationID, op.Hash)
		if err != nil {
			s.log.Error().Err(err).
				Str("operation_id", op.OperationID.String()).
				Msg("Blockchain hash update failed, batch will be retried")
			return RetryIn(DefaultBackoff)
		}
		if !ok {
			s.log.Warn().
				Str("operation_id", op.OperationID.String()).
				Msg("Cash operation not found for hash update, batch will be retried")
			return RetryIn(DefaultBackoff)
		}
	}
	return OK()
}
