package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/oms/backend/internal/application/billing"
	orderapp "github.com/oms/backend/internal/application/order"
	returnsapp "github.com/oms/backend/internal/application/returns"
	"github.com/oms/backend/internal/infrastructure/cache"
	"github.com/oms/backend/internal/infrastructure/config"
	"github.com/oms/backend/internal/infrastructure/event"
	"github.com/oms/backend/internal/infrastructure/logger"
	"github.com/oms/backend/internal/infrastructure/persistence"
	"github.com/oms/backend/internal/interfaces/http/handler"
	"github.com/oms/backend/internal/interfaces/http/middleware"
	"github.com/oms/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting OMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled {
		if err := db.EnableTracing(cfg.Database.DBName); err != nil {
			log.Fatal("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Repositories on the shared connection pool; transactional work goes
	// through the scopes instead.
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	historyRepo := persistence.NewGormHistoryRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	returnRepo := persistence.NewGormReturnRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)

	orderScope := persistence.NewGormOrderTransactionScope(db.DB)
	billingScope := persistence.NewGormBillingTransactionScope(db.DB)
	returnScope := persistence.NewGormReturnTransactionScope(db.DB)

	bus := event.NewInMemoryEventBus(log)

	actorCache, err := cache.NewRedisActorCache(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := actorCache.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	log.Info("Redis connected successfully")

	issuer := billingapp.NewIssuer(log)

	statusService := orderapp.NewStatusService(orderScope, orderRepo, historyRepo, bus, actorCache, log)
	settlementService := orderapp.NewSettlementService(orderScope, issuer, cfg.Billing.InvoiceDueDays, bus, actorCache, log)
	assignmentService := orderapp.NewAssignmentService(orderScope, actorCache, log)
	invoiceService := billingapp.NewInvoiceService(billingScope, issuer, invoiceRepo, bus, log)
	restocker := returnsapp.NewRestocker(returnRepo, inventoryRepo, bus, actorCache, log)
	returnService := returnsapp.NewService(returnScope, returnRepo, restocker, bus, log)

	engine := router.New(router.Handlers{
		Orders:   handler.NewOrderHandler(statusService, settlementService, assignmentService),
		Invoices: handler.NewInvoiceHandler(invoiceService),
		Returns:  handler.NewReturnHandler(returnService),
	}, middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
