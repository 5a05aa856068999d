// internal/interfaces/http/handlers/menu.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/winston-coffee/ordering-backend/internal/domain/cart"
	"github.com/winston-coffee/ordering-backend/internal/domain/menu"
)

// MenuHandler handles menu endpoints
type MenuHandler struct {
	loader      *menu.Loader
	cartService *cart.Service
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(loader *menu.Loader, cartService *cart.Service) *MenuHandler {
	return &MenuHandler{
		loader:      loader,
		cartService: cartService,
	}
}

// GetMenu handles GET /menu
//
// A table number in the query string (from the table's QR code) binds the
// session to that table. Without a bound table the menu is off limits.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	if table := c.Query("table"); table != "" {
		if err := h.cartService.SetTable(c.Request.Context(), sessionID, table); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to bind table",
			})
			return
		}
	}

	table, err := h.cartService.Table(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to resolve table",
		})
		return
	}
	if table == "" {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Scan the table QR code to start ordering",
		})
		return
	}

	items, categories := h.loader.Load(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu retrieved successfully",
		"data": gin.H{
			"items":        items,
			"categories":   categories,
			"table_number": table,
		},
	})
}
