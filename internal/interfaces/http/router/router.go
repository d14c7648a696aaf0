package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oms/backend/internal/interfaces/http/handler"
	"github.com/oms/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"

	loggerpkg "github.com/oms/backend/internal/infrastructure/logger"
)

// Handlers bundles the HTTP handlers wired into the router
type Handlers struct {
	Orders   *handler.OrderHandler
	Invoices *handler.InvoiceHandler
	Returns  *handler.ReturnHandler
}

// New builds the gin engine with middleware and all API routes registered
func New(handlers Handlers, tracing middleware.TracingConfig, logger *zap.Logger) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(tracing))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(loggerpkg.GinMiddleware(logger))
	engine.Use(loggerpkg.Recovery(logger))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.ActorContext())

	orders := api.Group("/orders")
	{
		orders.GET("", handlers.Orders.List)
		orders.GET("/:id", handlers.Orders.Get)
		orders.GET("/:id/history", handlers.Orders.History)
		orders.PATCH("/:id/status", handlers.Orders.ChangeStatus)
		orders.POST("/:id/settle", handlers.Orders.Settle)
		orders.POST("/:id/assign", handlers.Orders.Assign)
		orders.GET("/:id/invoice", handlers.Invoices.GetByOrder)
		orders.POST("/:id/returns", handlers.Returns.File)
		orders.GET("/:id/return", handlers.Returns.GetByOrder)
	}

	invoices := api.Group("/invoices")
	{
		invoices.POST("", handlers.Invoices.Create)
		invoices.GET("/:id", handlers.Invoices.Get)
	}

	returns := api.Group("/returns")
	{
		returns.GET("/:id", handlers.Returns.Get)
		returns.PATCH("/:id/status", handlers.Returns.UpdateStatus)
	}

	return engine
}
