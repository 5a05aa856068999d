// internal/interfaces/http/handlers/staff.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/winston-coffee/ordering-backend/internal/domain/order"
	"github.com/winston-coffee/ordering-backend/internal/domain/staff"
)

// StaffHandler handles staff authentication and order management endpoints
type StaffHandler struct {
	staffService *staff.Service
	orderService *order.Service
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *staff.Service, orderService *order.Service) *StaffHandler {
	return &StaffHandler{
		staffService: staffService,
		orderService: orderService,
	}
}

// Login handles POST /auth/login
func (h *StaffHandler) Login(c *gin.Context) {
	var req staff.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.staffService.Login(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid username or password",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    resp,
	})
}

// ListOrders handles GET /staff/orders
func (h *StaffHandler) ListOrders(c *gin.Context) {
	var req order.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	resp, err := h.orderService.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    resp,
	})
}

// UpdateOrderStatus handles PUT /staff/orders/:id/status
func (h *StaffHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	var req struct {
		Status order.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err, "Failed to update order status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
	})
}

// ConfirmCash handles POST /staff/orders/:id/cash
//
// Marks a cash order's payment as collected at the counter.
func (h *StaffHandler) ConfirmCash(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	if err := h.orderService.MarkCashPaid(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to confirm cash payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cash payment confirmed",
	})
}
