package handler

import (
	"time"

	"trade-history-service/internal/adapter/http/middleware"
	redisStore "trade-history-service/internal/adapter/storage/redis"
	"trade-history-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	HistorySvc     ports.HistoryService
	OrderSvc       ports.OrderService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	RateLimitRPM   int64
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Metrics())

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rl := func(c *gin.Context) { c.Next() }
	if deps.RateLimitStore != nil && deps.RateLimitRPM > 0 {
		rl = middleware.RateLimiter(deps.RateLimitStore, deps.RateLimitRPM, time.Minute, deps.Logger)
	}

	historyHandler := NewHistoryHandler(deps.HistorySvc)
	orderHandler := NewOrderHandler(deps.OrderSvc)

	v1 := r.Group("/api/v1", gin.HandlerFunc(rl))

	wallets := v1.Group("/wallets/:walletId")
	{
		wallets.GET("/history", historyHandler.GetByWallet)
		wallets.GET("/history/:id", historyHandler.GetRecord)
		wallets.GET("/trades", historyHandler.GetTradesByWallet)
		wallets.GET("/orders", orderHandler.GetByWallet)
		wallets.GET("/orders/:id/trades", orderHandler.GetTrades)
	}

	v1.GET("/orders/:id", orderHandler.GetOrder)
	v1.GET("/history/trades", historyHandler.GetTradesByDates)

	return r
}
