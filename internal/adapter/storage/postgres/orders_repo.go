package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trade-history-service/internal/core/domain"
	"trade-history-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrdersRepo implements ports.OrdersRepository.
//
// The sequence gate is a single conditional statement evaluated by Postgres:
// concurrent upserts for the same id cannot interleave a lower sequence over
// a higher one. Application code never does read-modify-write here.
type OrdersRepo struct {
	pool Pool
}

// NewOrdersRepo creates a new OrdersRepo.
func NewOrdersRepo(pool Pool) *OrdersRepo {
	return &OrdersRepo{pool: pool}
}

const orderColumns = `id, matching_id, wallet_id, type, side, status, asset_pair_id, volume, price,
		remaining_volume, reject_reason, lower_limit_price, lower_price, upper_limit_price, upper_price,
		straight, create_dt, register_dt, status_dt, match_dt, sequence_number`

const tradeColumns = `id, order_id, wallet_id, asset_pair_id, base_asset_id, base_volume,
		quoting_asset_id, quoting_volume, price, index, role, fee_size, fee_asset_id, timestamp`

// UpsertBySequence inserts or replaces the order snapshot when the incoming
// sequence number is strictly greater than the stored one. Returns false for
// a stale write. Trades are appended idempotently regardless of the gate
// outcome: a redelivered snapshot is stale against its own stored sequence
// number, but its trades may not have landed on the first attempt.
func (r *OrdersRepo) UpsertBySequence(ctx context.Context, o *domain.Order) (bool, error) {
	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (id) DO UPDATE SET
			matching_id = excluded.matching_id,
			type = excluded.type,
			side = excluded.side,
			status = excluded.status,
			volume = excluded.volume,
			price = excluded.price,
			remaining_volume = excluded.remaining_volume,
			reject_reason = excluded.reject_reason,
			lower_limit_price = excluded.lower_limit_price,
			lower_price = excluded.lower_price,
			upper_limit_price = excluded.upper_limit_price,
			upper_price = excluded.upper_price,
			straight = excluded.straight,
			register_dt = excluded.register_dt,
			status_dt = excluded.status_dt,
			match_dt = excluded.match_dt,
			sequence_number = excluded.sequence_number
		WHERE orders.sequence_number < excluded.sequence_number`

	tag, err := r.pool.Exec(ctx, query,
		o.ID, o.MatchingID, o.WalletID, o.Type, o.Side, o.Status, o.AssetPairID,
		o.Volume, o.Price, o.RemainingVolume, o.RejectReason,
		o.LowerLimitPrice, o.LowerPrice, o.UpperLimitPrice, o.UpperPrice,
		o.Straight, o.CreateDt, o.RegisterDt, o.StatusDt, o.MatchDt, o.SequenceNumber,
	)
	if err != nil {
		return false, fmt.Errorf("upsert order: %w", err)
	}
	applied := tag.RowsAffected() == 1

	if len(o.Trades) > 0 {
		if err := r.appendTrades(ctx, o.Trades); err != nil {
			return applied, err
		}
	}
	return applied, nil
}

// UpsertBulk applies the sequence-gated upsert to each order in arrival
// order. The store's gate, not client-side ordering, decides which snapshot
// of a repeated id wins.
func (r *OrdersRepo) UpsertBulk(ctx context.Context, orders []*domain.Order) error {
	for _, o := range orders {
		if _, err := r.UpsertBySequence(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

// appendTrades inserts trades with insert-if-absent semantics; a trade seen
// in an earlier snapshot is skipped.
func (r *OrdersRepo) appendTrades(ctx context.Context, trades []domain.Trade) error {
	query := `INSERT INTO order_trades (` + tradeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO NOTHING`

	for i := range trades {
		t := &trades[i]
		_, err := r.pool.Exec(ctx, query,
			t.ID, t.OrderID, t.WalletID, t.AssetPairID, t.BaseAssetID, t.BaseVolume,
			t.QuotingAssetID, t.QuotingVolume, t.Price, t.Index, t.Role,
			t.FeeSize, t.FeeAssetID, t.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("append order trade: %w", err)
		}
	}
	return nil
}

// Get fetches an order with its embedded trades.
func (r *OrdersRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o := &domain.Order{}
	err := scanOrder(r.pool.QueryRow(ctx, query, id), o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	trades, err := r.GetTradesByOrder(ctx, o.WalletID, o.ID)
	if err != nil {
		return nil, err
	}
	o.Trades = trades
	return o, nil
}

// GetByWallet fetches order snapshots with filtering and pagination, newest
// first. Trades are not loaded on the list path.
func (r *OrdersRepo) GetByWallet(ctx context.Context, q ports.OrderQuery) ([]domain.Order, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("wallet_id = $%d", argIdx))
	args = append(args, q.WalletID)
	argIdx++

	if len(q.Types) > 0 {
		conditions = append(conditions, fmt.Sprintf("type = ANY($%d)", argIdx))
		args = append(args, typeStrings(q.Types))
		argIdx++
	}
	if len(q.Statuses) > 0 {
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", argIdx))
		args = append(args, statusStrings(q.Statuses))
		argIdx++
	}
	if q.AssetPairID != "" {
		conditions = append(conditions, fmt.Sprintf("asset_pair_id = $%d", argIdx))
		args = append(args, q.AssetPairID)
		argIdx++
	}

	offset, limit := normalizePage(q.Offset, q.Limit)
	query := fmt.Sprintf(`SELECT `+orderColumns+` FROM orders WHERE %s
		ORDER BY create_dt DESC LIMIT $%d OFFSET $%d`,
		strings.Join(conditions, " AND "), argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}

// GetTradesByOrder fetches the trades of one order in execution order.
func (r *OrdersRepo) GetTradesByOrder(ctx context.Context, walletID, orderID uuid.UUID) ([]domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM order_trades
		WHERE order_id = $1 AND wallet_id = $2 ORDER BY index ASC`

	rows, err := r.pool.Query(ctx, query, orderID, walletID)
	if err != nil {
		return nil, fmt.Errorf("query order trades: %w", err)
	}
	defer rows.Close()

	var trades []domain.Trade
	for rows.Next() {
		var t domain.Trade
		err := rows.Scan(
			&t.ID, &t.OrderID, &t.WalletID, &t.AssetPairID, &t.BaseAssetID, &t.BaseVolume,
			&t.QuotingAssetID, &t.QuotingVolume, &t.Price, &t.Index, &t.Role,
			&t.FeeSize, &t.FeeAssetID, &t.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("scan trade row: %w", err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trade rows: %w", err)
	}
	return trades, nil
}

func scanOrder(row pgx.Row, o *domain.Order) error {
	return row.Scan(
		&o.ID, &o.MatchingID, &o.WalletID, &o.Type, &o.Side, &o.Status, &o.AssetPairID,
		&o.Volume, &o.Price, &o.RemainingVolume, &o.RejectReason,
		&o.LowerLimitPrice, &o.LowerPrice, &o.UpperLimitPrice, &o.UpperPrice,
		&o.Straight, &o.CreateDt, &o.RegisterDt, &o.StatusDt, &o.MatchDt, &o.SequenceNumber,
	)
}

func typeStrings(types []domain.OrderType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func statusStrings(statuses []domain.OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
