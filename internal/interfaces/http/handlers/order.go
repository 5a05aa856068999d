// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/winston-coffee/ordering-backend/internal/domain/cart"
	"github.com/winston-coffee/ordering-backend/internal/domain/order"
	"github.com/winston-coffee/ordering-backend/internal/domain/payment"
)

// OrderHandler handles checkout and order status endpoints
type OrderHandler struct {
	orchestrator *payment.Orchestrator
	orderService *order.Service
	cartService  *cart.Service
	logger       *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orchestrator *payment.Orchestrator, orderService *order.Service, cartService *cart.Service, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		orchestrator: orchestrator,
		orderService: orderService,
		cartService:  cartService,
		logger:       logger,
	}
}

// Checkout handles POST /checkout
//
// The session's cart and bound table become an order. Cash orders finalize
// immediately; QRIS orders come back with a payment token and a countdown.
// The cart is cleared once the order is accepted.
func (h *OrderHandler) Checkout(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req struct {
		PaymentMethod order.PaymentMethod `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	crt, err := h.cartService.Get(ctx, sessionID)
	if err != nil {
		respondError(c, err, "Failed to retrieve cart")
		return
	}

	table, err := h.cartService.Table(ctx, sessionID)
	if err != nil {
		respondError(c, err, "Failed to resolve table")
		return
	}

	result, err := h.orchestrator.Checkout(ctx, crt, table, crt.Note, req.PaymentMethod)
	if err != nil {
		respondError(c, err, "Failed to place order")
		return
	}

	if err := h.cartService.Clear(ctx, sessionID); err != nil {
		// Order is already placed, so log and keep going
		h.logger.WithError(err).WithField("order_id", result.OrderID).
			Warn("failed to clear cart after checkout")
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    result,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	ord, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    ord,
	})
}

// GetFlow handles GET /orders/:id/flow
func (h *OrderHandler) GetFlow(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	flow, ok := h.orchestrator.FlowState(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No active checkout flow for this order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Flow state retrieved successfully",
		"data": gin.H{
			"order_id":            id,
			"state":               flow.State(),
			"countdown_remaining": flow.CountdownRemaining(),
		},
	})
}

// RetryToken handles POST /orders/:id/token
//
// Recovers a QRIS order whose token request failed, or re-serves the token
// an earlier checkout already obtained.
func (h *OrderHandler) RetryToken(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	result, err := h.orchestrator.RetryToken(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to obtain payment token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment token ready",
		"data":    result,
	})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}
