// Package contract defines the wire shapes of the upstream events consumed
// by the ingestion job, and their mapping into domain types. Nothing outside
// the queue adapters should depend on these shapes.
package contract

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Envelope is the outer frame of cash and hash stream messages. Payload is
// decoded per Type.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Cash stream event types.
const (
	TypeCashInProcessed       = "CashInProcessedEvent"
	TypeCashOutProcessed      = "CashOutProcessedEvent"
	TypeCashTransferProcessed = "CashTransferProcessedEvent"
)

// Hash stream event types.
const (
	TypeCashInCompleted             = "CashInCompletedEvent"
	TypeCashOutCompleted            = "CashOutCompletedEvent"
	TypeCashOutsBatchCompleted      = "CashOutsBatchCompletedEvent"
	TypeCrossClientCashOutCompleted = "CrossClientCashOutCompletedEvent"
)

// CashInProcessedEvent records a credit applied to a wallet.
type CashInProcessedEvent struct {
	OperationID uuid.UUID        `json:"operationId"`
	WalletID    uuid.UUID        `json:"walletId"`
	AssetID     string           `json:"assetId"`
	Volume      decimal.Decimal  `json:"volume"`
	FeeSize     *decimal.Decimal `json:"feeSize,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

// CashOutProcessedEvent records a debit applied to a wallet.
type CashOutProcessedEvent struct {
	OperationID uuid.UUID        `json:"operationId"`
	WalletID    uuid.UUID        `json:"walletId"`
	AssetID     string           `json:"assetId"`
	Volume      decimal.Decimal  `json:"volume"`
	FeeSize     *decimal.Decimal `json:"feeSize,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

// CashTransferProcessedEvent records an internal transfer. It projects into
// a debit on the source wallet and a credit on the target wallet sharing the
// same operation id.
type CashTransferProcessedEvent struct {
	OperationID  uuid.UUID        `json:"operationId"`
	FromWalletID uuid.UUID        `json:"fromWalletId"`
	ToWalletID   uuid.UUID        `json:"toWalletId"`
	AssetID      string           `json:"assetId"`
	Volume       decimal.Decimal  `json:"volume"`
	FeeSize      *decimal.Decimal `json:"feeSize,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`
}

// CashInCompletedEvent carries the blockchain hash of a settled cash-in.
type CashInCompletedEvent struct {
	OperationID uuid.UUID `json:"operationId"`
	TxHash      string    `json:"txHash"`
}

// CashOutCompletedEvent carries the blockchain hash of a settled cash-out.
type CashOutCompletedEvent struct {
	OperationID uuid.UUID `json:"operationId"`
	TxHash      string    `json:"txHash"`
}

// CashOutsBatchCompletedEvent settles several cash-outs with one on-chain
// transaction.
type CashOutsBatchCompletedEvent struct {
	OperationIDs []uuid.UUID `json:"operationIds"`
	TxHash       string      `json:"txHash"`
}

// CrossClientCashOutCompletedEvent settles a withdrawal whose destination is
// another client of the platform. No on-chain transaction exists; both legs
// get the placeholder hash.
type CrossClientCashOutCompletedEvent struct {
	CashInOperationID  uuid.UUID `json:"cashInOperationId"`
	CashOutOperationID uuid.UUID `json:"cashOutOperationId"`
}

// ExecutionLogEntry is the outer frame of matching engine log messages. The
// Message field holds a nested JSON document.
type ExecutionLogEntry struct {
	Message        string    `json:"message"`
	MessageID      string    `json:"messageId"`
	SequenceNumber int64     `json:"sequenceNumber"`
	Timestamp      time.Time `json:"timestamp"`
}

// ExecutionEvent is the nested matching engine event. Only entries whose
// header names an ORDER event concern this service.
type ExecutionEvent struct {
	Header ExecutionHeader  `json:"header"`
	Orders []ExecutionOrder `json:"orders"`
}

// MessageTypeOrder marks execution events carrying order state.
const MessageTypeOrder = "ORDER"

// ExecutionHeader describes the nested event. SequenceNumber orders events
// globally and gates order snapshot replacement.
type ExecutionHeader struct {
	MessageType    string    `json:"messageType"`
	SequenceNumber int64     `json:"sequenceNumber"`
	MessageID      string    `json:"messageId"`
	RequestID      string    `json:"requestId"`
	Version        string    `json:"version"`
	Timestamp      time.Time `json:"timestamp"`
}

// ExecutionOrder is one order snapshot inside an execution event. Numeric
// amounts arrive as strings and may be absent.
type ExecutionOrder struct {
	ExternalID      uuid.UUID        `json:"externalId"`
	ID              uuid.UUID        `json:"id"`
	WalletID        uuid.UUID        `json:"walletId"`
	OrderType       string           `json:"orderType"`
	Side            string           `json:"side"`
	Status          string           `json:"status"`
	AssetPairID     string           `json:"assetPairId"`
	Volume          string           `json:"volume"`
	Price           string           `json:"price,omitempty"`
	RemainingVolume string           `json:"remainingVolume,omitempty"`
	RejectReason    string           `json:"rejectReason,omitempty"`
	LowerLimitPrice string           `json:"lowerLimitPrice,omitempty"`
	LowerPrice      string           `json:"lowerPrice,omitempty"`
	UpperLimitPrice string           `json:"upperLimitPrice,omitempty"`
	UpperPrice      string           `json:"upperPrice,omitempty"`
	Straight        bool             `json:"straight"`
	CreatedAt       time.Time        `json:"createdAt"`
	Registered      time.Time        `json:"registered"`
	StatusDate      time.Time        `json:"statusDate"`
	LastMatchTime   *time.Time       `json:"lastMatchTime,omitempty"`
	Trades          []ExecutionTrade `json:"trades,omitempty"`
}

// ExecutionTrade is one fill inside an order snapshot.
type ExecutionTrade struct {
	TradeID        uuid.UUID `json:"tradeId"`
	Index          int       `json:"index"`
	Role           string    `json:"role"`
	BaseAssetID    string    `json:"baseAssetId"`
	BaseVolume     string    `json:"baseVolume"`
	QuotingAssetID string    `json:"quotingAssetId"`
	QuotingVolume  string    `json:"quotingVolume"`
	Price          string    `json:"price"`
	FeeSize        string    `json:"feeSize,omitempty"`
	FeeAssetID     string    `json:"feeAssetId,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
