package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trade-history-service/internal/core/domain"
	"trade-history-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// HistoryRepo implements ports.HistoryRecordsRepository.
// The history table is append-only with identity (id, wallet_id): an
// internal transfer stores one row per affected wallet under the same
// operation id. Duplicate deliveries resolve to a no-op insert.
type HistoryRepo struct {
	pool Pool
}

// NewHistoryRepo creates a new HistoryRepo.
func NewHistoryRepo(pool Pool) *HistoryRepo {
	return &HistoryRepo{pool: pool}
}

const historyColumns = `id, wallet_id, type, asset_id, asset_pair_id, volume, quoting_asset_id,
		quoting_volume, price, fee_size, fee_asset_id, blockchain_hash, state, order_id, timestamp`

// TryInsert inserts a history record if its identity is absent.
// Returns false without error when the (id, wallet_id) pair already exists.
func (r *HistoryRepo) TryInsert(ctx context.Context, rec *domain.HistoryRecord) (bool, error) {
	query := `INSERT INTO history (` + historyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id, wallet_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		rec.ID, rec.WalletID, rec.Kind, rec.AssetID, rec.AssetPairID,
		rec.Volume, rec.QuotingAssetID, rec.QuotingVolume, rec.Price,
		rec.FeeSize, rec.FeeAssetID, rec.BlockchainHash, rec.State,
		rec.OrderID, rec.Timestamp,
	)
	if err != nil {
		return false, fmt.Errorf("insert history record: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// InsertBulk inserts records one by one via the insert-if-absent path.
// Duplicates are skipped silently; the first infrastructure error aborts.
func (r *HistoryRepo) InsertBulk(ctx context.Context, records []*domain.HistoryRecord) error {
	for _, rec := range records {
		if _, err := r.TryInsert(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// SetBlockchainHash back-fills the blockchain hash of a stored operation,
// covering every wallet leg sharing the id. The guard makes the write safe
// under redelivery: an unset hash is set, re-applying the same hash still
// matches (true), and a conflicting value never overwrites the stored one.
// False therefore means the record has not landed yet, or the hash is
// already set to something else.
func (r *HistoryRepo) SetBlockchainHash(ctx context.Context, id uuid.UUID, hash string) (bool, error) {
	query := `UPDATE history SET blockchain_hash = $2
		WHERE id = $1 AND (blockchain_hash IS NULL OR blockchain_hash = '' OR blockchain_hash = $2)`

	tag, err := r.pool.Exec(ctx, query, id, hash)
	if err != nil {
		return false, fmt.Errorf("set blockchain hash: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Get fetches a single history record by id and owning wallet.
func (r *HistoryRepo) Get(ctx context.Context, id, walletID uuid.UUID) (*domain.HistoryRecord, error) {
	query := `SELECT ` + historyColumns + ` FROM history WHERE id = $1 AND wallet_id = $2`

	rec := &domain.HistoryRecord{}
	err := scanHistoryRecord(r.pool.QueryRow(ctx, query, id, walletID), rec)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get history record: %w", err)
	}
	return rec, nil
}

// GetByWallet fetches history records with filtering and pagination,
// newest first.
func (r *HistoryRepo) GetByWallet(ctx context.Context, q ports.HistoryQuery) ([]domain.HistoryRecord, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("wallet_id = $%d", argIdx))
	args = append(args, q.WalletID)
	argIdx++

	if len(q.Kinds) > 0 {
		conditions = append(conditions, fmt.Sprintf("type = ANY($%d)", argIdx))
		args = append(args, kindStrings(q.Kinds))
		argIdx++
	}
	if q.AssetPairID != "" {
		conditions = append(conditions, fmt.Sprintf("asset_pair_id = $%d", argIdx))
		args = append(args, q.AssetPairID)
		argIdx++
	}
	if q.AssetID != "" {
		// Cash assets live in asset_id; trades may carry it on either leg.
		conditions = append(conditions, fmt.Sprintf("(asset_id = $%d OR quoting_asset_id = $%d)", argIdx, argIdx))
		args = append(args, q.AssetID)
		argIdx++
	}
	argIdx, args, conditions = appendTimeRange(argIdx, args, conditions, q.From, q.To)

	offset, limit := normalizePage(q.Offset, q.Limit)
	query := fmt.Sprintf(`SELECT `+historyColumns+` FROM history WHERE %s
		ORDER BY timestamp DESC LIMIT $%d OFFSET $%d`,
		strings.Join(conditions, " AND "), argIdx, argIdx+1)
	args = append(args, limit, offset)

	return r.queryHistory(ctx, query, args...)
}

// GetTradesByWallet fetches trade rows with filtering and pagination,
// newest first.
func (r *HistoryRepo) GetTradesByWallet(ctx context.Context, q ports.TradeQuery) ([]domain.HistoryRecord, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("wallet_id = $%d", argIdx))
	args = append(args, q.WalletID)
	argIdx++

	conditions = append(conditions, fmt.Sprintf("type = $%d", argIdx))
	args = append(args, domain.HistoryKindTrade)
	argIdx++

	if q.AssetPairID != "" {
		conditions = append(conditions, fmt.Sprintf("asset_pair_id = $%d", argIdx))
		args = append(args, q.AssetPairID)
		argIdx++
	}
	if q.AssetID != "" {
		conditions = append(conditions, fmt.Sprintf("(asset_id = $%d OR quoting_asset_id = $%d)", argIdx, argIdx))
		args = append(args, q.AssetID)
		argIdx++
	}
	if q.BuyTrades != nil {
		if *q.BuyTrades {
			conditions = append(conditions, "volume > 0")
		} else {
			conditions = append(conditions, "volume < 0")
		}
	}
	argIdx, args, conditions = appendTimeRange(argIdx, args, conditions, q.From, q.To)

	offset, limit := normalizePage(q.Offset, q.Limit)
	query := fmt.Sprintf(`SELECT `+historyColumns+` FROM history WHERE %s
		ORDER BY timestamp DESC LIMIT $%d OFFSET $%d`,
		strings.Join(conditions, " AND "), argIdx, argIdx+1)
	args = append(args, limit, offset)

	return r.queryHistory(ctx, query, args...)
}

// GetByDates fetches trade rows in a half-open time interval, oldest first.
// This is the export path used for date-range reports.
func (r *HistoryRepo) GetByDates(ctx context.Context, from, to time.Time, offset, limit int) ([]domain.HistoryRecord, error) {
	offset, limit = normalizePage(offset, limit)
	query := `SELECT ` + historyColumns + ` FROM history
		WHERE type = $1 AND timestamp >= $2 AND timestamp < $3
		ORDER BY timestamp ASC LIMIT $4 OFFSET $5`

	return r.queryHistory(ctx, query, domain.HistoryKindTrade, from, to, limit, offset)
}

func (r *HistoryRepo) queryHistory(ctx context.Context, query string, args ...any) ([]domain.HistoryRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		if err := scanHistoryRecord(rows, &rec); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return records, nil
}

func scanHistoryRecord(row pgx.Row, rec *domain.HistoryRecord) error {
	return row.Scan(
		&rec.ID, &rec.WalletID, &rec.Kind, &rec.AssetID, &rec.AssetPairID,
		&rec.Volume, &rec.QuotingAssetID, &rec.QuotingVolume, &rec.Price,
		&rec.FeeSize, &rec.FeeAssetID, &rec.BlockchainHash, &rec.State,
		&rec.OrderID, &rec.Timestamp,
	)
}

func kindStrings(kinds []domain.HistoryKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func appendTimeRange(argIdx int, args []any, conditions []string, from, to *time.Time) (int, []any, []string) {
	if from != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp >= $%d", argIdx))
		args = append(args, *from)
		argIdx++
	}
	if to != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp <= $%d", argIdx))
		args = append(args, *to)
		argIdx++
	}
	return argIdx, args, conditions
}

func normalizePage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = ports.DefaultOffset
	}
	if limit <= 0 || limit > ports.DefaultLimit {
		limit = ports.DefaultLimit
	}
	return offset, limit
}
