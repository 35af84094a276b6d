package handler

import (
	"jetwallet/internal/adapter/http/middleware"
	"jetwallet/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Ledger         ports.LedgerService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check verifies the snapshot store backend
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	walletHandler := NewWalletHandler(deps.Ledger)
	txnHandler := NewTransactionHandler(deps.Ledger)
	cardHandler := NewCardHandler(deps.Ledger)

	v1 := r.Group("/api/v1")

	wallets := v1.Group("/wallets")
	{
		wallets.GET("", walletHandler.List)
		wallets.POST("", walletHandler.Create)
		wallets.PUT("/active", walletHandler.SelectActive)
		wallets.DELETE("/:index", walletHandler.Remove)
		wallets.POST("/:index/fund", walletHandler.Fund)
	}

	cards := v1.Group("/cards")
	{
		cards.GET("", cardHandler.List)
		cards.DELETE("/:id", cardHandler.Remove)
	}

	v1.GET("/transactions", txnHandler.List)

	return r
}
