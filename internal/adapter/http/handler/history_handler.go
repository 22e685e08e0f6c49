package handler

import (
	"strconv"
	"time"

	"trade-history-service/internal/adapter/http/dto"
	"trade-history-service/internal/core/domain"
	"trade-history-service/internal/core/ports"
	"trade-history-service/pkg/apperror"
	"trade-history-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HistoryHandler serves wallet history queries.
type HistoryHandler struct {
	historySvc ports.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historySvc ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc}
}

// GetByWallet handles GET /wallets/:walletId/history.
// Query: type (repeatable), assetId, assetPairId, from, to, offset, limit.
func (h *HistoryHandler) GetByWallet(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("walletId"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidID("wallet id"))
		return
	}

	kinds, ok := parseKinds(c)
	if !ok {
		return
	}
	from, to, ok := parseTimeRange(c)
	if !ok {
		return
	}
	offset, limit, ok := parsePage(c)
	if !ok {
		return
	}

	records, err := h.historySvc.GetByWallet(c.Request.Context(), ports.HistoryQuery{
		WalletID:    walletID,
		Kinds:       kinds,
		AssetID:     c.Query("assetId"),
		AssetPairID: c.Query("assetPairId"),
		From:        from,
		To:          to,
		Offset:      offset,
		Limit:       limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromHistoryRecords(records))
}

// GetRecord handles GET /wallets/:walletId/history/:id.
func (h *HistoryHandler) GetRecord(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("walletId"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidID("wallet id"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidID("record id"))
		return
	}

	rec, err := h.historySvc.GetRecord(c.Request.Context(), id, walletID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromHistoryRecord(rec))
}

// GetTradesByWallet handles GET /wallets/:walletId/trades.
// Query: assetId, assetPairId, buyTrades, from, to, offset, limit.
func (h *HistoryHandler) GetTradesByWallet(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("walletId"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidID("wallet id"))
		return
	}

	from, to, ok := parseTimeRange(c)
	if !ok {
		return
	}
	offset, limit, ok := parsePage(c)
	if !ok {
		return
	}

	var buyTrades *bool
	if raw := c.Query("buyTrades"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, apperror.Validation("buyTrades must be a boolean"))
			return
		}
		buyTrades = &v
	}

	records, err := h.historySvc.GetTradesByWallet(c.Request.Context(), ports.TradeQuery{
		WalletID:    walletID,
		AssetID:     c.Query("assetId"),
		AssetPairID: c.Query("assetPairId"),
		BuyTrades:   buyTrades,
		From:        from,
		To:          to,
		Offset:      offset,
		Limit:       limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromHistoryRecords(records))
}

// GetTradesByDates handles GET /history/trades. Both from and to are
// required; the interval is half-open [from, to).
func (h *HistoryHandler) GetTradesByDates(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		response.Error(c, apperror.Validation("from must be an RFC3339 timestamp"))
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		response.Error(c, apperror.Validation("to must be an RFC3339 timestamp"))
		return
	}
	offset, limit, ok := parsePage(c)
	if !ok {
		return
	}

	records, err := h.historySvc.GetByDates(c.Request.Context(), from, to, offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromHistoryRecords(records))
}

func parseKinds(c *gin.Context) ([]domain.HistoryKind, bool) {
	values := c.QueryArray("type")
	kinds := make([]domain.HistoryKind, 0, len(values))
	for _, v := range values {
		kind, ok := domain.ParseHistoryKind(v)
		if !ok {
			response.Error(c, apperror.ErrInvalidKind(v))
			return nil, false
		}
		kinds = append(kinds, kind)
	}
	return kinds, true
}

func parseTimeRange(c *gin.Context) (*time.Time, *time.Time, bool) {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, apperror.Validation("from must be an RFC3339 timestamp"))
			return nil, nil, false
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, apperror.Validation("to must be an RFC3339 timestamp"))
			return nil, nil, false
		}
		to = &t
	}
	return from, to, true
}

func parsePage(c *gin.Context) (int, int, bool) {
	offset := 0
	limit := 0
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			response.Error(c, apperror.Validation("offset must be a non-negative integer"))
			return 0, 0, false
		}
		offset = v
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			response.Error(c, apperror.Validation("limit must be a non-negative integer"))
			return 0, 0, false
		}
		limit = v
	}
	return offset, limit, true
}
