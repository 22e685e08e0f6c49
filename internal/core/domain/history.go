package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HistoryKind discriminates the flat history row into its variants.
type HistoryKind string

const (
	HistoryKindCashIn     HistoryKind = "CashIn"
	HistoryKindCashOut    HistoryKind = "CashOut"
	HistoryKindTrade      HistoryKind = "Trade"
	HistoryKindOrderEvent HistoryKind = "OrderEvent"
)

// ParseHistoryKind converts a wire/query string into a HistoryKind.
func ParseHistoryKind(s string) (HistoryKind, bool) {
	switch HistoryKind(s) {
	case HistoryKindCashIn, HistoryKindCashOut, HistoryKindTrade, HistoryKindOrderEvent:
		return HistoryKind(s), true
	}
	return "", false
}

// HistoryState is the settlement state of a cash operation.
type HistoryState string

const (
	HistoryStateInProgress HistoryState = "InProgress"
	HistoryStateFinished   HistoryState = "Finished"
	HistoryStateCanceled   HistoryState = "Canceled"
	HistoryStateFailed     HistoryState = "Failed"
)

// HistoryRecord is an append-only history row. The ID is the operation id
// assigned upstream; an identity is inserted at most once. The only mutable
// field is BlockchainHash, back-filled once when the operation settles
// on-chain.
type HistoryRecord struct {
	ID             uuid.UUID        `json:"id"`
	WalletID       uuid.UUID        `json:"wallet_id"`
	Kind           HistoryKind      `json:"kind"`
	AssetID        string           `json:"asset_id"`                  // cash asset / trade base asset
	AssetPairID    string           `json:"asset_pair_id,omitempty"`   // trades and order events only
	Volume         decimal.Decimal  `json:"volume"`                    // signed: cash-outs and sold base volumes are negative
	QuotingAssetID string           `json:"quoting_asset_id,omitempty"`
	QuotingVolume  *decimal.Decimal `json:"quoting_volume,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	FeeSize        *decimal.Decimal `json:"fee_size,omitempty"`
	FeeAssetID     string           `json:"fee_asset_id,omitempty"`
	BlockchainHash string           `json:"blockchain_hash,omitempty"`
	State          HistoryState     `json:"state,omitempty"`
	OrderID        *uuid.UUID       `json:"order_id,omitempty"` // trade -> originating order
	Timestamp      time.Time        `json:"timestamp"`
}

// NewCashIn builds a CashIn history record. Volume is expected positive.
func NewCashIn(operationID, walletID uuid.UUID, assetID string, volume decimal.Decimal, feeSize *decimal.Decimal, ts time.Time) *HistoryRecord {
	return &HistoryRecord{
		ID:        operationID,
		WalletID:  walletID,
		Kind:      HistoryKindCashIn,
		AssetID:   assetID,
		Volume:    volume.Abs(),
		FeeSize:   feeSize,
		State:     HistoryStateFinished,
		Timestamp: ts,
	}
}

// NewCashOut builds a CashOut history record. Volume is stored negative.
func NewCashOut(operationID, walletID uuid.UUID, assetID string, volume decimal.Decimal, feeSize *decimal.Decimal, ts time.Time) *HistoryRecord {
	return &HistoryRecord{
		ID:        operationID,
		WalletID:  walletID,
		Kind:      HistoryKindCashOut,
		AssetID:   assetID,
		Volume:    volume.Abs().Neg(),
		FeeSize:   feeSize,
		State:     HistoryStateFinished,
		Timestamp: ts,
	}
}

// IsCash reports whether the record is a cash operation (and therefore
// eligible for a blockchain hash back-fill).
func (r *HistoryRecord) IsCash() bool {
	return r.Kind == HistoryKindCashIn || r.Kind == HistoryKindCashOut
}

// HashBackfill sets the blockchain hash of one settled operation.
type HashBackfill struct {
	OperationID uuid.UUID
	Hash        string
}
