package contract

import (
	"encoding/json"
	"fmt"

	"trade-history-service/internal/core/domain"

	"github.com/shopspring/decimal"
)

// CrossClientHash is the placeholder written for settlements that never hit
// a blockchain.
const CrossClientHash = "0x"

// CashUpdate is the decoded form of one cash stream message: the history
// records it projects into.
type CashUpdate struct {
	Records []*domain.HistoryRecord
}

// HashUpdate is the decoded form of one hash stream message. All of its
// operations succeed or the message is retried as a whole.
type HashUpdate struct {
	Ops []domain.HashBackfill
}

// OrderUpdate is the decoded form of one execution stream message. Empty
// Orders means the entry did not concern order state and is acknowledged
// without effect.
type OrderUpdate struct {
	Orders []*domain.Order
}

// DecodeCashUpdate parses a cash stream message into history records.
func DecodeCashUpdate(body []byte) (CashUpdate, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return CashUpdate{}, fmt.Errorf("decode cash envelope: %w", err)
	}

	switch env.Type {
	case TypeCashInProcessed:
		var e CashInProcessedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return CashUpdate{}, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return CashUpdate{Records: []*domain.HistoryRecord{
			domain.NewCashIn(e.OperationID, e.WalletID, e.AssetID, e.Volume, e.FeeSize, e.Timestamp),
		}}, nil

	case TypeCashOutProcessed:
		var e CashOutProcessedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return CashUpdate{}, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return CashUpdate{Records: []*domain.HistoryRecord{
			domain.NewCashOut(e.OperationID, e.WalletID, e.AssetID, e.Volume, e.FeeSize, e.Timestamp),
		}}, nil

	case TypeCashTransferProcessed:
		var e CashTransferProcessedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return CashUpdate{}, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		// One operation id, two legs: debit on the source wallet, credit on
		// the target. The store dedupes per (id, wallet).
		return CashUpdate{Records: []*domain.HistoryRecord{
			domain.NewCashOut(e.OperationID, e.FromWalletID, e.AssetID, e.Volume, e.FeeSize, e.Timestamp),
			domain.NewCashIn(e.OperationID, e.ToWalletID, e.AssetID, e.Volume, nil, e.Timestamp),
		}}, nil
	}
	return CashUpdate{}, fmt.Errorf("unknown cash event type %q", env.Type)
}

// DecodeHashUpdate parses a hash stream message into back-fill operations.
func DecodeHashUpdate(body []byte) (HashUpdate, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return HashUpdate{}, fmt.Errorf("decode hash envelope: %w", err)
	}

	switch env.Type {
	case TypeCashInCompleted:
		var e CashInCompletedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return HashUpdate{}, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return HashUpdate{Ops: []domain.HashBackfill{{OperationID: e.OperationID, Hash: e.TxHash}}}, nil

	case TypeCashOutCompleted:
		var e CashOutCompletedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return HashUpdate{}, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return HashUpdate{Ops: []domain.HashBackfill{{OperationID: e.OperationID, Hash: e.TxHash}}}, nil

	case TypeCashOutsBatchCompleted:
		var e CashOutsBatchCompletedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return HashUpdate{}, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		ops := make([]domain.HashBackfill, 0, len(e.OperationIDs))
		for _, id := range e.OperationIDs {
			ops = append(ops, domain.HashBackfill{OperationID: id, Hash: e.TxHash})
		}
		return HashUpdate{Ops: ops}, nil

	case TypeCrossClientCashOutCompleted:
		var e CrossClientCashOutCompletedEvent
		if err := json.Unmarshal(env.Payload, &e); err != nil {
			return HashUpdate{}, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return HashUpdate{Ops: []domain.HashBackfill{
			{OperationID: e.CashOutOperationID, Hash: CrossClientHash},
			{OperationID: e.CashInOperationID, Hash: CrossClientHash},
		}}, nil
	}
	return HashUpdate{}, fmt.Errorf("unknown hash event type %q", env.Type)
}

// DecodeOrderUpdate parses an execution stream message. Entries that are not
// ORDER events decode into an empty update.
func DecodeOrderUpdate(body []byte) (OrderUpdate, error) {
	var entry ExecutionLogEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		return OrderUpdate{}, fmt.Errorf("decode execution entry: %w", err)
	}

	var event ExecutionEvent
	if err := json.Unmarshal([]byte(entry.Message), &event); err != nil {
		return OrderUpdate{}, fmt.Errorf("decode execution event: %w", err)
	}
	if event.Header.MessageType != MessageTypeOrder {
		return OrderUpdate{}, nil
	}

	orders := make([]*domain.Order, 0, len(event.Orders))
	for i := range event.Orders {
		order, err := mapOrder(&event.Orders[i], event.Header.SequenceNumber)
		if err != nil {
			return OrderUpdate{}, fmt.Errorf("map order %s: %w", event.Orders[i].ExternalID, err)
		}
		orders = append(orders, order)
	}
	return OrderUpdate{Orders: orders}, nil
}

func mapOrder(src *ExecutionOrder, sequence int64) (*domain.Order, error) {
	volume, err := decimal.NewFromString(src.Volume)
	if err != nil {
		return nil, fmt.Errorf("volume: %w", err)
	}
	remaining, err := parseOptional(src.RemainingVolume)
	if err != nil {
		return nil, fmt.Errorf("remainingVolume: %w", err)
	}
	price, err := parseNullable(src.Price)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	lowerLimit, err := parseNullable(src.LowerLimitPrice)
	if err != nil {
		return nil, fmt.Errorf("lowerLimitPrice: %w", err)
	}
	lower, err := parseNullable(src.LowerPrice)
	if err != nil {
		return nil, fmt.Errorf("lowerPrice: %w", err)
	}
	upperLimit, err := parseNullable(src.UpperLimitPrice)
	if err != nil {
		return nil, fmt.Errorf("upperLimitPrice: %w", err)
	}
	upper, err := parseNullable(src.UpperPrice)
	if err != nil {
		return nil, fmt.Errorf("upperPrice: %w", err)
	}

	order := &domain.Order{
		ID:              src.ExternalID,
		MatchingID:      src.ID,
		WalletID:        src.WalletID,
		Type:            mapOrderType(src.OrderType),
		Side:            mapOrderSide(src.Side),
		Status:          mapOrderStatus(src.Status),
		AssetPairID:     src.AssetPairID,
		Volume:          volume,
		Price:           price,
		RemainingVolume: remaining,
		RejectReason:    src.RejectReason,
		LowerLimitPrice: lowerLimit,
		LowerPrice:      lower,
		UpperLimitPrice: upperLimit,
		UpperPrice:      upper,
		Straight:        src.Straight,
		CreateDt:        src.CreatedAt,
		RegisterDt:      src.Registered,
		StatusDt:        src.StatusDate,
		MatchDt:         src.LastMatchTime,
		SequenceNumber:  sequence,
	}

	for i := range src.Trades {
		trade, err := mapTrade(&src.Trades[i], order)
		if err != nil {
			return nil, fmt.Errorf("trade %s: %w", src.Trades[i].TradeID, err)
		}
		order.Trades = append(order.Trades, *trade)
	}
	return order, nil
}

func mapTrade(src *ExecutionTrade, order *domain.Order) (*domain.Trade, error) {
	baseVolume, err := decimal.NewFromString(src.BaseVolume)
	if err != nil {
		return nil, fmt.Errorf("baseVolume: %w", err)
	}
	quotingVolume, err := decimal.NewFromString(src.QuotingVolume)
	if err != nil {
		return nil, fmt.Errorf("quotingVolume: %w", err)
	}
	price, err := decimal.NewFromString(src.Price)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	feeSize, err := parseNullable(src.FeeSize)
	if err != nil {
		return nil, fmt.Errorf("feeSize: %w", err)
	}

	return &domain.Trade{
		ID:             src.TradeID,
		OrderID:        order.ID,
		WalletID:       order.WalletID,
		AssetPairID:    order.AssetPairID,
		BaseAssetID:    src.BaseAssetID,
		BaseVolume:     baseVolume,
		QuotingAssetID: src.QuotingAssetID,
		QuotingVolume:  quotingVolume,
		Price:          price,
		Index:          src.Index,
		Role:           mapTradeRole(src.Role),
		FeeSize:        feeSize,
		FeeAssetID:     src.FeeAssetID,
		Timestamp:      src.Timestamp,
	}, nil
}

// parseNullable maps "" to nil and anything else through decimal parsing.
func parseNullable(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseOptional maps "" to zero.
func parseOptional(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func mapOrderType(s string) domain.OrderType {
	switch s {
	case "MARKET":
		return domain.OrderTypeMarket
	case "LIMIT":
		return domain.OrderTypeLimit
	case "STOP_LIMIT":
		return domain.OrderTypeStopLimit
	}
	return domain.OrderTypeUnknown
}

func mapOrderSide(s string) domain.OrderSide {
	if s == "SELL" {
		return domain.OrderSideSell
	}
	return domain.OrderSideBuy
}

func mapOrderStatus(s string) domain.OrderStatus {
	switch s {
	case "PLACED":
		return domain.OrderStatusPlaced
	case "PARTIALLY_MATCHED":
		return domain.OrderStatusPartiallyMatched
	case "MATCHED":
		return domain.OrderStatusMatched
	case "PENDING":
		return domain.OrderStatusPending
	case "CANCELLED":
		return domain.OrderStatusCancelled
	case "REPLACED":
		return domain.OrderStatusReplaced
	case "REJECTED":
		return domain.OrderStatusRejected
	}
	return domain.OrderStatusUnknown
}

func mapTradeRole(s string) domain.TradeRole {
	switch s {
	case "MAKER":
		return domain.TradeRoleMaker
	case "TAKER":
		return domain.TradeRoleTaker
	}
	return domain.TradeRoleUnknown
}
