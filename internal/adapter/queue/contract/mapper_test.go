package contract

import (
	"encoding/json"
	"fmt"
	"testing"

	"trade-history-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(t *testing.T, typ string, payload any) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	body, err := json.Marshal(Envelope{Type: typ, Payload: raw})
	require.NoError(t, err)
	return body
}

func TestDecodeCashUpdate_CashIn(t *testing.T) {
	opID := uuid.New()
	walletID := uuid.New()
	body := envelope(t, TypeCashInProcessed, map[string]any{
		"operationId": opID,
		"walletId":    walletID,
		"assetId":     "BTC",
		"volume":      "0.5",
		"timestamp":   "2024-03-01T12:00:00Z",
	})

	upd, err := DecodeCashUpdate(body)
	require.NoError(t, err)
	require.Len(t, upd.Records, 1)

	rec := upd.Records[0]
	assert.Equal(t, opID, rec.ID)
	assert.Equal(t, walletID, rec.WalletID)
	assert.Equal(t, domain.HistoryKindCashIn, rec.Kind)
	assert.True(t, rec.Volume.Equal(decimal.RequireFromString("0.5")))
}

func TestDecodeCashUpdate_CashOutVolumeIsNegative(t *testing.T) {
	body := envelope(t, TypeCashOutProcessed, map[string]any{
		"operationId": uuid.New(),
		"walletId":    uuid.New(),
		"assetId":     "USD",
		"volume":      "250", // upstream reports magnitude only
		"timestamp":   "2024-03-01T12:00:00Z",
	})

	upd, err := DecodeCashUpdate(body)
	require.NoError(t, err)
	require.Len(t, upd.Records, 1)
	assert.Equal(t, domain.HistoryKindCashOut, upd.Records[0].Kind)
	assert.True(t, upd.Records[0].Volume.IsNegative())
}

func TestDecodeCashUpdate_TransferProducesBothLegs(t *testing.T) {
	opID := uuid.New()
	from := uuid.New()
	to := uuid.New()
	body := envelope(t, TypeCashTransferProcessed, map[string]any{
		"operationId":  opID,
		"fromWalletId": from,
		"toWalletId":   to,
		"assetId":      "ETH",
		"volume":       "3",
		"timestamp":    "2024-03-01T12:00:00Z",
	})

	upd, err := DecodeCashUpdate(body)
	require.NoError(t, err)
	require.Len(t, upd.Records, 2)

	debit, credit := upd.Records[0], upd.Records[1]
	assert.Equal(t, opID, debit.ID)
	assert.Equal(t, opID, credit.ID)
	assert.Equal(t, from, debit.WalletID)
	assert.Equal(t, to, credit.WalletID)
	assert.True(t, debit.Volume.IsNegative())
	assert.True(t, credit.Volume.IsPositive())
}

func TestDecodeCashUpdate_UnknownType(t *testing.T) {
	body := envelope(t, "SomethingElse", map[string]any{})
	_, err := DecodeCashUpdate(body)
	assert.Error(t, err)
}

func TestDecodeHashUpdate_Batch(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	body := envelope(t, TypeCashOutsBatchCompleted, map[string]any{
		"operationIds": ids,
		"txHash":       "0xdeadbeef",
	})

	upd, err := DecodeHashUpdate(body)
	require.NoError(t, err)
	require.Len(t, upd.Ops, 3)
	for i, op := range upd.Ops {
		assert.Equal(t, ids[i], op.OperationID)
		assert.Equal(t, "0xdeadbeef", op.Hash)
	}
}

func TestDecodeHashUpdate_CrossClientUsesPlaceholder(t *testing.T) {
	cashIn := uuid.New()
	cashOut := uuid.New()
	body := envelope(t, TypeCrossClientCashOutCompleted, map[string]any{
		"cashInOperationId":  cashIn,
		"cashOutOperationId": cashOut,
	})

	upd, err := DecodeHashUpdate(body)
	require.NoError(t, err)
	require.Len(t, upd.Ops, 2)
	assert.Equal(t, cashOut, upd.Ops[0].OperationID)
	assert.Equal(t, cashIn, upd.Ops[1].OperationID)
	for _, op := range upd.Ops {
		assert.Equal(t, CrossClientHash, op.Hash)
	}
}

func executionEntry(t *testing.T, event ExecutionEvent) []byte {
	t.Helper()
	nested, err := json.Marshal(event)
	require.NoError(t, err)
	body, err := json.Marshal(ExecutionLogEntry{
		Message:        string(nested),
		MessageID:      "msg-1",
		SequenceNumber: event.Header.SequenceNumber,
	})
	require.NoError(t, err)
	return body
}

func TestDecodeOrderUpdate_MapsOrderAndTrades(t *testing.T) {
	orderID := uuid.New()
	walletID := uuid.New()
	tradeID := uuid.New()

	body := executionEntry(t, ExecutionEvent{
		Header: ExecutionHeader{MessageType: MessageTypeOrder, SequenceNumber: 17},
		Orders: []ExecutionOrder{{
			ExternalID:      orderID,
			ID:              uuid.New(),
			WalletID:        walletID,
			OrderType:       "LIMIT",
			Side:            "SELL",
			Status:          "MATCHED",
			AssetPairID:     "BTCUSD",
			Volume:          "-1.5",
			Price:           "64000",
			RemainingVolume: "0",
			Straight:        true,
			Trades: []ExecutionTrade{{
				TradeID:        tradeID,
				Index:          0,
				Role:           "MAKER",
				BaseAssetID:    "BTC",
				BaseVolume:     "-1.5",
				QuotingAssetID: "USD",
				QuotingVolume:  "96000",
				Price:          "64000",
			}},
		}},
	})

	upd, err := DecodeOrderUpdate(body)
	require.NoError(t, err)
	require.Len(t, upd.Orders, 1)

	order := upd.Orders[0]
	assert.Equal(t, orderID, order.ID)
	assert.Equal(t, domain.OrderTypeLimit, order.Type)
	assert.Equal(t, domain.OrderSideSell, order.Side)
	assert.Equal(t, domain.OrderStatusMatched, order.Status)
	assert.Equal(t, int64(17), order.SequenceNumber)
	require.NotNil(t, order.Price)
	assert.True(t, order.Price.Equal(decimal.NewFromInt(64000)))

	require.Len(t, order.Trades, 1)
	trade := order.Trades[0]
	assert.Equal(t, tradeID, trade.ID)
	assert.Equal(t, orderID, trade.OrderID)
	assert.Equal(t, walletID, trade.WalletID)
	assert.Equal(t, domain.TradeRoleMaker, trade.Role)
	assert.True(t, trade.QuotingVolume.Equal(decimal.NewFromInt(96000)))
	assert.Nil(t, trade.FeeSize)
}

func TestDecodeOrderUpdate_NonOrderEntryIsEmpty(t *testing.T) {
	body := executionEntry(t, ExecutionEvent{
		Header: ExecutionHeader{MessageType: "BALANCE_UPDATE", SequenceNumber: 3},
	})

	upd, err := DecodeOrderUpdate(body)
	require.NoError(t, err)
	assert.Empty(t, upd.Orders)
}

func TestDecodeOrderUpdate_MalformedAmount(t *testing.T) {
	body := executionEntry(t, ExecutionEvent{
		Header: ExecutionHeader{MessageType: MessageTypeOrder, SequenceNumber: 4},
		Orders: []ExecutionOrder{{
			ExternalID: uuid.New(),
			Volume:     "not-a-number",
		}},
	})

	_, err := DecodeOrderUpdate(body)
	assert.Error(t, err)
}

func TestDecodeOrderUpdate_UnknownEnumValuesDegrade(t *testing.T) {
	body := executionEntry(t, ExecutionEvent{
		Header: ExecutionHeader{MessageType: MessageTypeOrder, SequenceNumber: 5},
		Orders: []ExecutionOrder{{
			ExternalID: uuid.New(),
			OrderType:  "ICEBERG",
			Status:     fmt.Sprintf("FUTURE_STATUS_%d", 9),
			Volume:     "1",
		}},
	})

	upd, err := DecodeOrderUpdate(body)
	require.NoError(t, err)
	require.Len(t, upd.Orders, 1)
	assert.Equal(t, domain.OrderTypeUnknown, upd.Orders[0].Type)
	assert.Equal(t, domain.OrderStatusUnknown, upd.Orders[0].Status)
}
