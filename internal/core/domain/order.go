package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderType is the order kind as reported by the matching engine.
type OrderType string

const (
	OrderTypeUnknown   OrderType = "Unknown"
	OrderTypeMarket    OrderType = "Market"
	OrderTypeLimit     OrderType = "Limit"
	OrderTypeStopLimit OrderType = "StopLimit"
)

// ParseOrderType converts a wire/query string into an OrderType.
func ParseOrderType(s string) (OrderType, bool) {
	switch OrderType(s) {
	case OrderTypeUnknown, OrderTypeMarket, OrderTypeLimit, OrderTypeStopLimit:
		return OrderType(s), true
	}
	return "", false
}

// OrderSide is the direction of an order.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "Buy"
	OrderSideSell OrderSide = "Sell"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusUnknown          OrderStatus = "Unknown"
	OrderStatusPlaced           OrderStatus = "Placed"
	OrderStatusPartiallyMatched OrderStatus = "PartiallyMatched"
	OrderStatusMatched          OrderStatus = "Matched"
	OrderStatusPending          OrderStatus = "Pending"
	OrderStatusCancelled        OrderStatus = "Cancelled"
	OrderStatusReplaced         OrderStatus = "Replaced"
	OrderStatusRejected         OrderStatus = "Rejected"
)

// ParseOrderStatus converts a wire/query string into an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusUnknown, OrderStatusPlaced, OrderStatusPartiallyMatched,
		OrderStatusMatched, OrderStatusPending, OrderStatusCancelled,
		OrderStatusReplaced, OrderStatusRejected:
		return OrderStatus(s), true
	}
	return "", false
}

// IsTerminal reports whether the status represents a final (or matched)
// order state. Only terminal snapshots are persisted by the execution path.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusMatched, OrderStatusCancelled, OrderStatusReplaced, OrderStatusRejected:
		return true
	}
	return false
}

// TradeRole distinguishes the passive and aggressive side of a match.
type TradeRole string

const (
	TradeRoleUnknown TradeRole = "Unknown"
	TradeRoleMaker   TradeRole = "Maker"
	TradeRoleTaker   TradeRole = "Taker"
)

// Trade is a single execution belonging to an order.
type Trade struct {
	ID             uuid.UUID        `json:"id"`
	OrderID        uuid.UUID        `json:"order_id"`
	WalletID       uuid.UUID        `json:"wallet_id"`
	AssetPairID    string           `json:"asset_pair_id"`
	BaseAssetID    string           `json:"base_asset_id"`
	BaseVolume     decimal.Decimal  `json:"base_volume"`
	QuotingAssetID string           `json:"quoting_asset_id"`
	QuotingVolume  decimal.Decimal  `json:"quoting_volume"`
	Price          decimal.Decimal  `json:"price"`
	Index          int              `json:"index"`
	Role           TradeRole        `json:"role"`
	FeeSize        *decimal.Decimal `json:"fee_size,omitempty"`
	FeeAssetID     string           `json:"fee_asset_id,omitempty"`
	Timestamp      time.Time        `json:"timestamp"`
}

// ToHistoryRecord projects the trade into the flat history table shape.
func (t *Trade) ToHistoryRecord() *HistoryRecord {
	orderID := t.OrderID
	quoting := t.QuotingVolume
	price := t.Price
	return &HistoryRecord{
		ID:             t.ID,
		WalletID:       t.WalletID,
		Kind:           HistoryKindTrade,
		AssetID:        t.BaseAssetID,
		AssetPairID:    t.AssetPairID,
		Volume:         t.BaseVolume,
		QuotingAssetID: t.QuotingAssetID,
		QuotingVolume:  &quoting,
		Price:          &price,
		FeeSize:        t.FeeSize,
		FeeAssetID:     t.FeeAssetID,
		OrderID:        &orderID,
		Timestamp:      t.Timestamp,
	}
}

// Order is the authoritative snapshot of an order. It is created on the
// first observed event for its id and from then on advanced only by events
// carrying a strictly greater SequenceNumber. Trades are appended, never
// removed.
type Order struct {
	ID              uuid.UUID        `json:"id"`          // external id, the conflict-resolution identity
	MatchingID      uuid.UUID        `json:"matching_id"` // matching engine internal id
	WalletID        uuid.UUID        `json:"wallet_id"`
	Type            OrderType        `json:"type"`
	Side            OrderSide        `json:"side"`
	Status          OrderStatus      `json:"status"`
	AssetPairID     string           `json:"asset_pair_id"`
	Volume          decimal.Decimal  `json:"volume"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	RemainingVolume decimal.Decimal  `json:"remaining_volume"`
	RejectReason    string           `json:"reject_reason,omitempty"`
	LowerLimitPrice *decimal.Decimal `json:"lower_limit_price,omitempty"`
	LowerPrice      *decimal.Decimal `json:"lower_price,omitempty"`
	UpperLimitPrice *decimal.Decimal `json:"upper_limit_price,omitempty"`
	UpperPrice      *decimal.Decimal `json:"upper_price,omitempty"`
	Straight        bool             `json:"straight"`
	CreateDt        time.Time        `json:"create_dt"`
	RegisterDt      time.Time        `json:"register_dt"`
	StatusDt        time.Time        `json:"status_dt"`
	MatchDt         *time.Time       `json:"match_dt,omitempty"`
	Trades          []Trade          `json:"trades,omitempty"`
	SequenceNumber  int64            `json:"sequence_number"`
}
