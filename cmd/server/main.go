package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hypergate/hypergate/internal/config"
	"github.com/hypergate/hypergate/internal/delegation"
	"github.com/hypergate/hypergate/internal/handler"
	"github.com/hypergate/hypergate/internal/hyperliquid"
	"github.com/hypergate/hypergate/internal/manager"
	"github.com/hypergate/hypergate/internal/market"
	"github.com/hypergate/hypergate/internal/middleware"
	"github.com/hypergate/hypergate/internal/order"
	"github.com/hypergate/hypergate/internal/pkg/logger"
	"github.com/hypergate/hypergate/internal/repository"
	"github.com/hypergate/hypergate/internal/service"
	"github.com/hypergate/hypergate/internal/wallet"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)

	// 1. Wallet keyring and descriptors
	if cfg.Wallet.EmbeddedKey == "" {
		log.Fatal("wallet.embedded_key is required")
	}
	adapter, err := wallet.NewKeyringAdapter(cfg.Wallet.EmbeddedKey, cfg.Wallet.EOAKey)
	if err != nil {
		log.Fatalf("Failed to load wallet keys: %v", err)
	}

	embedded, err := wallet.NewLocalSigner(cfg.Wallet.EmbeddedKey)
	if err != nil {
		log.Fatalf("Invalid embedded key: %v", err)
	}
	wallets := []wallet.Wallet{{Address: embedded.Address(), Kind: wallet.KindEmbedded}}
	if cfg.Wallet.EOAKey != "" {
		eoa, err := wallet.NewLocalSigner(cfg.Wallet.EOAKey)
		if err != nil {
			log.Fatalf("Invalid EOA key: %v", err)
		}
		wallets = append(wallets, wallet.Wallet{Address: eoa.Address(), Kind: wallet.KindExternal})
	}
	provider := wallet.NewStaticProvider(wallets)

	// 2. Exchange client and market data
	client := hyperliquid.NewClient(
		cfg.Exchange.BaseURL,
		cfg.Exchange.IsMainnet,
		hyperliquid.WithTimeout(time.Duration(cfg.Exchange.TimeoutMs)*time.Millisecond),
	)
	exchange := hyperliquid.NewExchange(client, manager.NewNonceManager())
	snapshots := market.NewSnapshotService(client)

	midStream := market.NewMidStream(cfg.Exchange.WSURL)
	midStream.Start()

	// 3. Idempotency store (Redis > Memory)
	var idempotencyStore middleware.IdempotencyStore
	if redisClient := repository.NewRedisClient(cfg.Redis); redisClient != nil {
		logger.Info("Connected to Redis")
		idempotencyStore = repository.NewRedisIdempotencyStore(
			redisClient, time.Duration(cfg.Redis.IdempotencyTTLSeconds)*time.Second)
	} else {
		idempotencyStore = middleware.NewInMemIdempotencyStore()
	}

	// 4. Core services
	delegationMgr := delegation.NewManager(exchange, cfg.Order.AgentName)
	submitSvc := service.NewSubmitService(
		cfg, provider, adapter, snapshots, order.NewBuilder(), exchange, delegationMgr, client)

	orderHandler := handler.NewOrderHandler(submitSvc)
	// The informational asset endpoint may serve briefly cached snapshots;
	// submissions always price off a fresh one.
	marketHandler := handler.NewMarketHandler(market.NewCachedReader(snapshots, 2*time.Second), midStream)

	// 5. Router
	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "hypergate"})
	})

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	v1 := r.Group("/v1")
	v1.Use(middleware.AuthMiddleware(cfg.Server.APIKey))
	v1.Use(middleware.RateLimitMiddleware(cfg.Server.RateLimit, cfg.Server.RateBurst))
	v1.Use(middleware.IdempotencyMiddleware(idempotencyStore))
	{
		v1.POST("/orders", orderHandler.Submit)
		v1.GET("/assets/:name", marketHandler.GetAsset)
		v1.GET("/markets/:name/mid", marketHandler.GetMid)
	}

	// 6. Serve with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("HyperGate started",
			"port", cfg.Server.Port,
			"mainnet", cfg.Exchange.IsMainnet,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	midStream.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	logger.Info("Server exiting")
}
