package routes

import (
	"cartonera/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes        = "/quotes"
	PathOrders        = "/orders"
	PathChecks        = "/checks"
	PathPricingConfig = "/pricing-config"
)

type routeHandlers struct {
	quotes  *handlers.QuoteHandler
	orders  *handlers.OrderHandler
	checks  *handlers.CheckHandler
	pricing *handlers.PricingConfigHandler
}

func addQuoteRoutes(rg *gin.RouterGroup, h *handlers.QuoteHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("/calculate", h.Calculate)
		quotes.POST("/expire", h.ExpireDue)
		quotes.POST("", h.Create)
		quotes.GET("/:id", h.GetByID)
		quotes.GET("/:id/export", h.Export)
		quotes.PATCH("/:id/send", h.Send)
		quotes.PATCH("/:id/approve", h.Approve)
		quotes.PATCH("/:id/reject", h.Reject)
		quotes.POST("/:id/convert", h.Convert)
	}
}

func addOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.GET("/:id", h.GetByID)
		orders.PATCH("/:id/status", h.TransitionStatus)
		orders.POST("/:id/payments", h.RegisterPayment)
		orders.GET("/:id/payments", h.ListPayments)
		orders.POST("/:id/confirm-quantities", h.ConfirmQuantities)
		orders.POST("/:id/dispatch", h.Dispatch)
	}
}

func addCheckRoutes(rg *gin.RouterGroup, h *handlers.CheckHandler) {
	checks := rg.Group(PathChecks)
	{
		checks.GET("", h.List)
		checks.GET("/:id", h.GetByID)
		// deposit, cash, endorse, reject
		checks.PATCH("/:id/:action", h.Move)
	}
}

func addPricingConfigRoutes(rg *gin.RouterGroup, h *handlers.PricingConfigHandler) {
	pricing := rg.Group(PathPricingConfig)
	{
		pricing.GET("", h.GetActive)
		pricing.POST("", h.Create)
	}
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}

func addRoutes(rg *gin.RouterGroup, h routeHandlers) {
	addPingRoutes(rg)
	addQuoteRoutes(rg, h.quotes)
	addOrderRoutes(rg, h.orders)
	addCheckRoutes(rg, h.checks)
	addPricingConfigRoutes(rg, h.pricing)
}
