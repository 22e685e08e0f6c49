// Package dto defines the JSON shapes of the query API. Decimal amounts are
// rendered as strings to survive round-trips through JSON number parsing.
package dto

import (
	"time"

	"trade-history-service/internal/core/domain"

	"github.com/shopspring/decimal"
)

// HistoryRecordResponse is one row of wallet history.
type HistoryRecordResponse struct {
	ID             string  `json:"id"`
	WalletID       string  `json:"wallet_id"`
	Type           string  `json:"type"`
	AssetID        string  `json:"asset_id"`
	AssetPairID    string  `json:"asset_pair_id,omitempty"`
	Volume         string  `json:"volume"`
	QuotingAssetID string  `json:"quoting_asset_id,omitempty"`
	QuotingVolume  *string `json:"quoting_volume,omitempty"`
	Price          *string `json:"price,omitempty"`
	FeeSize        *string `json:"fee_size,omitempty"`
	FeeAssetID     string  `json:"fee_asset_id,omitempty"`
	BlockchainHash string  `json:"blockchain_hash,omitempty"`
	State          string  `json:"state,omitempty"`
	OrderID        *string `json:"order_id,omitempty"`
	Timestamp      string  `json:"timestamp"`
}

// FromHistoryRecord converts a domain record into its response shape.
func FromHistoryRecord(rec *domain.HistoryRecord) HistoryRecordResponse {
	resp := HistoryRecordResponse{
		ID:             rec.ID.String(),
		WalletID:       rec.WalletID.String(),
		Type:           string(rec.Kind),
		AssetID:        rec.AssetID,
		AssetPairID:    rec.AssetPairID,
		Volume:         rec.Volume.String(),
		QuotingAssetID: rec.QuotingAssetID,
		QuotingVolume:  decimalString(rec.QuotingVolume),
		Price:          decimalString(rec.Price),
		FeeSize:        decimalString(rec.FeeSize),
		FeeAssetID:     rec.FeeAssetID,
		BlockchainHash: rec.BlockchainHash,
		State:          string(rec.State),
		Timestamp:      rec.Timestamp.UTC().Format(time.RFC3339Nano),
	}
	if rec.OrderID != nil {
		s := rec.OrderID.String()
		resp.OrderID = &s
	}
	return resp
}

// FromHistoryRecords converts a slice, never returning null JSON.
func FromHistoryRecords(records []domain.HistoryRecord) []HistoryRecordResponse {
	out := make([]HistoryRecordResponse, 0, len(records))
	for i := range records {
		out = append(out, FromHistoryRecord(&records[i]))
	}
	return out
}

// TradeResponse is one execution of an order.
type TradeResponse struct {
	ID             string  `json:"id"`
	OrderID        string  `json:"order_id"`
	WalletID       string  `json:"wallet_id"`
	AssetPairID    string  `json:"asset_pair_id"`
	BaseAssetID    string  `json:"base_asset_id"`
	BaseVolume     string  `json:"base_volume"`
	QuotingAssetID string  `json:"quoting_asset_id"`
	QuotingVolume  string  `json:"quoting_volume"`
	Price          string  `json:"price"`
	Index          int     `json:"index"`
	Role           string  `json:"role"`
	FeeSize        *string `json:"fee_size,omitempty"`
	FeeAssetID     string  `json:"fee_asset_id,omitempty"`
	Timestamp      string  `json:"timestamp"`
}

// FromTrade converts a domain trade into its response shape.
func FromTrade(t *domain.Trade) TradeResponse {
	return TradeResponse{
		ID:             t.ID.String(),
		OrderID:        t.OrderID.String(),
		WalletID:       t.WalletID.String(),
		AssetPairID:    t.AssetPairID,
		BaseAssetID:    t.BaseAssetID,
		BaseVolume:     t.BaseVolume.String(),
		QuotingAssetID: t.QuotingAssetID,
		QuotingVolume:  t.QuotingVolume.String(),
		Price:          t.Price.String(),
		Index:          t.Index,
		Role:           string(t.Role),
		FeeSize:        decimalString(t.FeeSize),
		FeeAssetID:     t.FeeAssetID,
		Timestamp:      t.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

// FromTrades converts a slice, never returning null JSON.
func FromTrades(trades []domain.Trade) []TradeResponse {
	out := make([]TradeResponse, 0, len(trades))
	for i := range trades {
		out = append(out, FromTrade(&trades[i]))
	}
	return out
}

// OrderResponse is one order snapshot.
type OrderResponse struct {
	ID              string          `json:"id"`
	MatchingID      string          `json:"matching_id"`
	WalletID        string          `json:"wallet_id"`
	Type            string          `json:"type"`
	Side            string          `json:"side"`
	Status          string          `json:"status"`
	AssetPairID     string          `json:"asset_pair_id"`
	Volume          string          `json:"volume"`
	Price           *string         `json:"price,omitempty"`
	RemainingVolume string          `json:"remaining_volume"`
	RejectReason    string          `json:"reject_reason,omitempty"`
	LowerLimitPrice *string         `json:"lower_limit_price,omitempty"`
	LowerPrice      *string         `json:"lower_price,omitempty"`
	UpperLimitPrice *string         `json:"upper_limit_price,omitempty"`
	UpperPrice      *string         `json:"upper_price,omitempty"`
	Straight        bool            `json:"straight"`
	CreateDt        string          `json:"create_dt"`
	RegisterDt      string          `json:"register_dt"`
	StatusDt        string          `json:"status_dt"`
	MatchDt         *string         `json:"match_dt,omitempty"`
	SequenceNumber  int64           `json:"sequence_number"`
	Trades          []TradeResponse `json:"trades"`
}

// FromOrder converts a domain order into its response shape.
func FromOrder(o *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID.String(),
		MatchingID:      o.MatchingID.String(),
		WalletID:        o.WalletID.String(),
		Type:            string(o.Type),
		Side:            string(o.Side),
		Status:          string(o.Status),
		AssetPairID:     o.AssetPairID,
		Volume:          o.Volume.String(),
		Price:           decimalString(o.Price),
		RemainingVolume: o.RemainingVolume.String(),
		RejectReason:    o.RejectReason,
		LowerLimitPrice: decimalString(o.LowerLimitPrice),
		LowerPrice:      decimalString(o.LowerPrice),
		UpperLimitPrice: decimalString(o.UpperLimitPrice),
		UpperPrice:      decimalString(o.UpperPrice),
		Straight:        o.Straight,
		CreateDt:        o.CreateDt.UTC().Format(time.RFC3339Nano),
		RegisterDt:      o.RegisterDt.UTC().Format(time.RFC3339Nano),
		StatusDt:        o.StatusDt.UTC().Format(time.RFC3339Nano),
		SequenceNumber:  o.SequenceNumber,
		Trades:          FromTrades(o.Trades),
	}
	if o.MatchDt != nil {
		s := o.MatchDt.UTC().Format(time.RFC3339Nano)
		resp.MatchDt = &s
	}
	return resp
}

// FromOrders converts a slice, never returning null JSON.
func FromOrders(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, FromOrder(&orders[i]))
	}
	return out
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
