// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/winston-coffee/ordering-backend/internal/domain/cart"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	crt, err := h.cartService.Get(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err, "Failed to retrieve cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.response(c, sessionID, crt),
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req cart.AddVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	crt, err := h.cartService.AddVariant(c.Request.Context(), sessionID, &req)
	if err != nil {
		respondError(c, err, "Failed to add item to cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data":    h.response(c, sessionID, crt),
	})
}

// UpdateItem handles PUT /cart/items/:key
//
// The delta is applied to the line's quantity; a quantity at or below zero
// removes the line. Unknown keys leave the cart untouched.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	lineKey := c.Param("key")

	var req cart.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	crt, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, lineKey, req.Delta)
	if err != nil {
		respondError(c, err, "Failed to update cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"data":    h.response(c, sessionID, crt),
	})
}

// SetNote handles PUT /cart/note
func (h *CartHandler) SetNote(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	crt, err := h.cartService.SetNote(c.Request.Context(), sessionID, req.Note)
	if err != nil {
		respondError(c, err, "Failed to update order note")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order note updated",
		"data":    h.response(c, sessionID, crt),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	if err := h.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		respondError(c, err, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}

func (h *CartHandler) response(c *gin.Context, sessionID string, crt *cart.Cart) *cart.Response {
	table, _ := h.cartService.Table(c.Request.Context(), sessionID)
	return h.cartService.BuildResponse(crt, table)
}
