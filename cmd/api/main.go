package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"offline-voucher-sync/config"
	httpHandler "offline-voucher-sync/internal/adapter/http/handler"
	pgStorage "offline-voucher-sync/internal/adapter/storage/postgres"
	redisStorage "offline-voucher-sync/internal/adapter/storage/redis"
	"offline-voucher-sync/internal/core/ports"
	"offline-voucher-sync/internal/service"
	"offline-voucher-sync/pkg/logger"

	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Offline Voucher Sync")

	maxOfflineBalance, err := decimal.NewFromString(cfg.Wallet.MaxOfflineBalance)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Wallet.MaxOfflineBalance).Msg("Invalid max offline balance")
	}

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	nonceCache := redisStorage.NewNonceCache(rdb)

	// Initialize core services
	cryptoSvc := service.NewRSACryptoService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	replayGuard := service.NewReplayGuardService(txRepo, nonceCache, log)

	// Initialize business services
	ledgerSvc := service.NewLedgerService(walletRepo, transactor, maxOfflineBalance, log)
	receiptSvc := service.NewReceiptService(cryptoSvc, log)
	syncSvc := service.NewSyncService(
		txRepo,
		walletRepo,
		transactor,
		replayGuard,
		ledgerSvc,
		cryptoSvc,
		receiptSvc,
		cfg.Replay.MaxAge,
		cfg.Replay.SyncMaxAge,
		cfg.Sync.MaxBatchSize,
		log,
	)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SyncSvc:        syncSvc,
		LedgerSvc:      ledgerSvc,
		ReceiptSvc:     receiptSvc,
		TokenSvc:       tokenSvc,
		WalletRepo:     walletRepo,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
