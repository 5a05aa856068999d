// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/winston-coffee/ordering-backend/internal/config"
	"github.com/winston-coffee/ordering-backend/internal/interfaces/http/handlers"
	"github.com/winston-coffee/ordering-backend/internal/interfaces/http/middleware"
)

// Handlers bundles the handler set the routes are wired against
type Handlers struct {
	Menu    *handlers.MenuHandler
	Cart    *handlers.CartHandler
	Order   *handlers.OrderHandler
	Payment *handlers.PaymentHandler
	Staff   *handlers.StaffHandler
}

// SetupRoutes wires the guest ordering API and the staff API under /api/v1
func SetupRoutes(rg *gin.RouterGroup, h *Handlers, cfg *config.Config) {
	setupMenuRoutes(rg, h)
	setupCartRoutes(rg, h)
	setupOrderRoutes(rg, h)
	setupStaffRoutes(rg, h, cfg)
}

// SetupShimRoutes registers the legacy token endpoints and the gateway
// notification URL outside /api/v1. Existing clients and the Midtrans
// dashboard post to these exact paths, so they stay at the root.
func SetupShimRoutes(engine *gin.Engine, h *Handlers) {
	engine.POST("/create-transaction", h.Payment.CreateTransaction)
	engine.POST("/api/midtrans", h.Payment.CreateTransaction)
	engine.POST("/api/midtrans/notification", h.Payment.HandleNotification)
}

func setupMenuRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/menu", h.Menu.GetMenu)
}

func setupCartRoutes(rg *gin.RouterGroup, h *Handlers) {
	crt := rg.Group("/cart")
	{
		crt.GET("", h.Cart.GetCart)
		crt.POST("/items", h.Cart.AddItem)
		crt.PUT("/items/:key", h.Cart.UpdateItem)
		crt.PUT("/note", h.Cart.SetNote)
		crt.DELETE("", h.Cart.ClearCart)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.POST("/checkout", h.Order.Checkout)

	orders := rg.Group("/orders")
	{
		orders.GET("/:id", h.Order.GetOrder)
		orders.GET("/:id/flow", h.Order.GetFlow)
		orders.POST("/:id/token", h.Order.RetryToken)
	}
}

func setupStaffRoutes(rg *gin.RouterGroup, h *Handlers, cfg *config.Config) {
	rg.POST("/auth/login", h.Staff.Login)

	staff := rg.Group("/staff")
	staff.Use(middleware.StaffAuth(cfg))
	{
		staff.GET("/orders", h.Staff.ListOrders)
		staff.PUT("/orders/:id/status", h.Staff.UpdateOrderStatus)
		staff.POST("/orders/:id/cash", h.Staff.ConfirmCash)
	}
}
