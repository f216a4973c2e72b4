package handler

import (
	"offline-voucher-sync/internal/adapter/http/middleware"
	"offline-voucher-sync/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	SyncSvc        ports.SyncService
	LedgerSvc      ports.LedgerService
	ReceiptSvc     ports.ReceiptService
	TokenSvc       ports.TokenService
	WalletRepo     ports.WalletRepository
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
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL and Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	v1 := r.Group("/api/v1")

	voucherHandler := NewVoucherHandler(deps.SyncSvc, deps.ReceiptSvc)
	walletHandler := NewWalletHandler(deps.LedgerSvc, deps.WalletRepo)
	authHandler := NewAuthHandler(deps.TokenSvc)

	v1.POST("/auth/token", authHandler.Token)

	// Receipt verification is public: it needs nothing but the receipt
	// and the sender's public key.
	v1.POST("/vouchers/verify-receipt", voucherHandler.VerifyReceipt)

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	vouchers := v1.Group("/vouchers", jwtAuth)
	{
		vouchers.GET("", voucherHandler.List)
		vouchers.POST("", voucherHandler.Submit)
		vouchers.POST("/prepare", voucherHandler.Prepare)
		vouchers.POST("/sync", voucherHandler.Sync)
		vouchers.POST("/:id/confirm", voucherHandler.Confirm)
	}

	wallets := v1.Group("/wallets", jwtAuth)
	{
		wallets.GET("/balance", walletHandler.Balance)
		wallets.POST("/topup/request", walletHandler.TopUpRequest)
		wallets.POST("/topup/confirm", walletHandler.TopUpConfirm)
	}

	return r
}
