package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpHandler "trade-history-service/internal/adapter/http/handler"
	"trade-history-service/internal/adapter/queue/contract"
	redisStorage "trade-history-service/internal/adapter/storage/redis"
	"trade-history-service/internal/core/domain"
	"trade-history-service/internal/core/ports"
	"trade-history-service/internal/service"
	"trade-history-service/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires the full read stack: in-memory repos, a real Redis order
// cache and rate limit store (miniredis), the services, and the real
// HTTP layer behind an httptest server. Projections write through the same
// repos, so ingestion-to-query flows run end to end without external infra.

type testApp struct {
	server  *httptest.Server
	redis   *miniredis.Miniredis
	client  *goredis.Client
	history *inMemoryHistoryRepo
	orders  *inMemoryOrdersRepo

	cashProj *service.CashProjection
	hashProj *service.HashProjection
	execProj *service.ExecutionProjection
}

func newTestApp(t *testing.T, rateLimitRPM int64) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	log := logger.New("error", false)

	historyRepo := newInMemoryHistoryRepo()
	ordersRepo := newInMemoryOrdersRepo()
	orderCache := redisStorage.NewOrderCache(client)

	historySvc := service.NewHistoryService(historyRepo, log)
	orderSvc := service.NewOrderService(ordersRepo, orderCache, 10*time.Minute, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		HistorySvc:     historySvc,
		OrderSvc:       orderSvc,
		RateLimitStore: redisStorage.NewRateLimitStore(client),
		RateLimitRPM:   rateLimitRPM,
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(client)},
		Logger:         log,
	})

	return &testApp{
		server:   httptest.NewServer(router),
		redis:    mr,
		client:   client,
		history:  historyRepo,
		orders:   ordersRepo,
		cashProj: service.NewCashProjection(historyRepo, log),
		hashProj: service.NewHashProjection(historyRepo, log),
		execProj: service.NewExecutionProjection(ordersRepo, historyRepo, orderCache, log),
	}
}

func (app *testApp) close() {
	app.server.Close()
	app.client.Close()
	app.redis.Close()
}

func (app *testApp) getJSON(t *testing.T, path string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(app.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		if envelope.Data != nil {
			require.NoError(t, json.Unmarshal(envelope.Data, out))
		}
	}
	return resp.StatusCode
}

func TestCashFlowEndToEnd(t *testing.T) {
	app := newTestApp(t, 0)
	defer app.close()

	ctx := context.Background()
	walletID := uuid.New()
	otherWallet := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	// Ingest a deposit, a withdrawal, and a transfer out of the wallet.
	depositID := uuid.New()
	transferID := uuid.New()
	records := []*domain.HistoryRecord{
		domain.NewCashIn(depositID, walletID, "BTC", decimal.NewFromInt(5), nil, now.Add(-2*time.Hour)),
		domain.NewCashOut(uuid.New(), walletID, "BTC", decimal.NewFromInt(1), nil, now.Add(-1*time.Hour)),
	}
	result := app.cashProj.Project(ctx, records)
	require.False(t, result.Retry)

	// Transfer decoded from the wire: debit + credit legs under one id.
	transferBody := fmt.Sprintf(
		`{"type":"CashTransferProcessedEvent","payload":{"operationId":"%s","fromWalletId":"%s","toWalletId":"%s","assetId":"BTC","volume":"2","timestamp":"%s"}}`,
		transferID, walletID, otherWallet, now.Format(time.RFC3339),
	)
	update, err := contract.DecodeCashUpdate([]byte(transferBody))
	require.NoError(t, err)
	result = app.cashProj.Project(ctx, update.Records)
	require.False(t, result.Retry)

	// Redelivery of the same batch must not duplicate anything.
	result = app.cashProj.Project(ctx, records)
	require.False(t, result.Retry)

	// Hash back-fill covers every leg of the deposit operation.
	result = app.hashProj.Project(ctx, []domain.HashBackfill{{OperationID: depositID, Hash: "0xabc123"}})
	require.False(t, result.Retry)

	var history []struct {
		ID             string `json:"id"`
		Type           string `json:"type"`
		Volume         string `json:"volume"`
		BlockchainHash string `json:"blockchain_hash"`
	}
	code := app.getJSON(t, "/api/v1/wallets/"+walletID.String()+"/history", &history)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, history, 3)

	byID := make(map[string]string)
	hashes := make(map[string]string)
	for _, h := range history {
		byID[h.ID] = h.Volume
		hashes[h.ID] = h.BlockchainHash
	}
	assert.Equal(t, "5", byID[depositID.String()])
	assert.Equal(t, "-2", byID[transferID.String()], "source wallet sees the debit leg")
	assert.Equal(t, "0xabc123", hashes[depositID.String()])

	// Target wallet sees the credit leg of the same operation.
	var credit struct {
		Type   string `json:"type"`
		Volume string `json:"volume"`
	}
	code = app.getJSON(t, "/api/v1/wallets/"+otherWallet.String()+"/history/"+transferID.String(), &credit)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "CashIn", credit.Type)
	assert.Equal(t, "2", credit.Volume)

	// Kind filter narrows to deposits only.
	code = app.getJSON(t, "/api/v1/wallets/"+walletID.String()+"/history?type=CashIn", &history)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, history, 1)
	assert.Equal(t, depositID.String(), history[0].ID)
}

func TestExecutionFlowEndToEnd(t *testing.T) {
	app := newTestApp(t, 0)
	defer app.close()

	ctx := context.Background()
	walletID := uuid.New()
	orderID := uuid.New()
	tradeID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	order := &domain.Order{
		ID:             orderID,
		MatchingID:     uuid.New(),
		WalletID:       walletID,
		Type:           domain.OrderTypeLimit,
		Side:           domain.OrderSideBuy,
		Status:         domain.OrderStatusMatched,
		AssetPairID:    "BTCUSD",
		Volume:         decimal.NewFromInt(1),
		CreateDt:       now,
		RegisterDt:     now,
		StatusDt:       now,
		SequenceNumber: 42,
		Trades: []domain.Trade{{
			ID:             tradeID,
			OrderID:        orderID,
			WalletID:       walletID,
			AssetPairID:    "BTCUSD",
			BaseAssetID:    "BTC",
			BaseVolume:     decimal.NewFromInt(1),
			QuotingAssetID: "USD",
			QuotingVolume:  decimal.NewFromInt(-64000),
			Price:          decimal.NewFromInt(64000),
			Role:           domain.TradeRoleTaker,
			Timestamp:      now,
		}},
	}

	result := app.execProj.Project(ctx, []*domain.Order{order})
	require.False(t, result.Retry)

	// Order by id, served first from the repo and then from the cache.
	for i := 0; i < 2; i++ {
		var got struct {
			ID             string `json:"id"`
			Status         string `json:"status"`
			SequenceNumber int64  `json:"sequence_number"`
		}
		code := app.getJSON(t, "/api/v1/orders/"+orderID.String(), &got)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, orderID.String(), got.ID)
		assert.Equal(t, "Matched", got.Status)
		assert.Equal(t, int64(42), got.SequenceNumber)
	}

	// Trades were projected into wallet history.
	var trades []struct {
		ID      string  `json:"id"`
		Type    string  `json:"type"`
		OrderID *string `json:"order_id"`
	}
	code := app.getJSON(t, "/api/v1/wallets/"+walletID.String()+"/trades", &trades)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, trades, 1)
	assert.Equal(t, tradeID.String(), trades[0].ID)
	assert.Equal(t, "Trade", trades[0].Type)
	require.NotNil(t, trades[0].OrderID)
	assert.Equal(t, orderID.String(), *trades[0].OrderID)

	// And the per-order trade listing.
	var orderTrades []struct {
		Price string `json:"price"`
		Role  string `json:"role"`
	}
	code = app.getJSON(t, "/api/v1/wallets/"+walletID.String()+"/orders/"+orderID.String()+"/trades", &orderTrades)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, orderTrades, 1)
	assert.Equal(t, "64000", orderTrades[0].Price)
	assert.Equal(t, "Taker", orderTrades[0].Role)

	// Status filter on the wallet order listing.
	var orders []struct {
		ID string `json:"id"`
	}
	code = app.getJSON(t, "/api/v1/wallets/"+walletID.String()+"/orders?status=Matched", &orders)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, orders, 1)

	code = app.getJSON(t, "/api/v1/wallets/"+walletID.String()+"/orders?status=Cancelled", &orders)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, orders)
}

func TestRateLimitRejectsBurst(t *testing.T) {
	app := newTestApp(t, 2)
	defer app.close()

	walletID := uuid.New()
	path := "/api/v1/wallets/" + walletID.String() + "/history"

	for i := 0; i < 2; i++ {
		code := app.getJSON(t, path, nil)
		require.Equal(t, http.StatusOK, code)
	}

	resp, err := http.Get(app.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	var body struct {
		ErrorCode string `json:"error_code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "SYS_002", body.ErrorCode)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t, 0)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status       string                       `json:"status"`
		Dependencies map[string]map[string]string `json:"dependencies"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Dependencies["redis"]["status"])
}
