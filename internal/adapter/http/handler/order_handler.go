package handler

import (
	"trade-history-service/internal/adapter/http/dto"
	"trade-history-service/internal/core/domain"
	"trade-history-service/internal/core/ports"
	"trade-history-service/pkg/apperror"
	"trade-history-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler serves order snapshot queries.
type OrderHandler struct {
	orderSvc ports.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderSvc ports.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// GetOrder handles GET /orders/:id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidID("order id"))
		return
	}

	order, err := h.orderSvc.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromOrder(order))
}

// GetByWallet handles GET /wallets/:walletId/orders.
// Query: type (repeatable), status (repeatable), assetPairId, offset, limit.
func (h *OrderHandler) GetByWallet(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("walletId"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidID("wallet id"))
		return
	}

	statuses := make([]domain.OrderStatus, 0)
	for _, v := range c.QueryArray("status") {
		status, ok := domain.ParseOrderStatus(v)
		if !ok {
			response.Error(c, apperror.Validation("unknown order status "+v))
			return
		}
		statuses = append(statuses, status)
	}

	types := make([]domain.OrderType, 0)
	for _, v := range c.QueryArray("type") {
		typ, ok := domain.ParseOrderType(v)
		if !ok {
			response.Error(c, apperror.Validation("unknown order type "+v))
			return
		}
		types = append(types, typ)
	}

	offset, limit, ok := parsePage(c)
	if !ok {
		return
	}

	orders, err := h.orderSvc.GetByWallet(c.Request.Context(), ports.OrderQuery{
		WalletID:    walletID,
		Types:       types,
		Statuses:    statuses,
		AssetPairID: c.Query("assetPairId"),
		Offset:      offset,
		Limit:       limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromOrders(orders))
}

// GetTrades handles GET /wallets/:walletId/orders/:id/trades.
func (h *OrderHandler) GetTrades(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("walletId"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidID("wallet id"))
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidID("order id"))
		return
	}

	trades, err := h.orderSvc.GetTradesByOrder(c.Request.Context(), walletID, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.FromTrades(trades))
}
