// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/winston-coffee/ordering-backend/internal/domain/order"
	"github.com/winston-coffee/ordering-backend/internal/domain/payment"
)

// PaymentHandler handles the token shim and gateway notification endpoints
type PaymentHandler struct {
	snapClient   *payment.SnapClient
	orderService *order.Service
	logger       *logrus.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(snapClient *payment.SnapClient, orderService *order.Service, logger *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{
		snapClient:   snapClient,
		orderService: orderService,
		logger:       logger,
	}
}

// tokenRequest accepts both snake_case and camelCase field names, since
// both shapes are in use by existing clients.
type tokenRequest struct {
	OrderID          string `json:"order_id"`
	OrderIDCamel     string `json:"orderId"`
	GrossAmount      int64  `json:"gross_amount"`
	GrossAmountCamel int64  `json:"grossAmount"`
}

func (r *tokenRequest) normalize() (string, int64) {
	orderID := r.OrderID
	if orderID == "" {
		orderID = r.OrderIDCamel
	}
	amount := r.GrossAmount
	if amount == 0 {
		amount = r.GrossAmountCamel
	}
	return orderID, amount
}

// CreateTransaction handles POST /create-transaction and POST /api/midtrans
//
// A thin pass-through to the Snap API: the response carries only the token,
// and any gateway failure collapses to a generic 500.
func (h *PaymentHandler) CreateTransaction(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	orderID, amount := req.normalize()
	if orderID == "" || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "order_id and gross_amount are required",
		})
		return
	}

	token, err := h.snapClient.CreateTransaction(c.Request.Context(), orderID, amount)
	if err != nil {
		h.logger.WithError(err).WithField("order_ref", orderID).
			Error("snap transaction request failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create transaction",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}

// notificationRequest is the subset of the Midtrans HTTP notification
// payload the order lifecycle cares about.
type notificationRequest struct {
	OrderID           string `json:"order_id" binding:"required"`
	StatusCode        string `json:"status_code" binding:"required"`
	GrossAmount       string `json:"gross_amount" binding:"required"`
	SignatureKey      string `json:"signature_key" binding:"required"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	FraudStatus       string `json:"fraud_status"`
}

// HandleNotification handles POST /api/midtrans/notification
//
// The signature is verified before anything touches an order; a forged or
// replayed payload with a bad signature is rejected outright.
func (h *PaymentHandler) HandleNotification(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid notification payload",
		})
		return
	}

	if !h.snapClient.VerifyNotificationSignature(req.OrderID, req.StatusCode, req.GrossAmount, req.SignatureKey) {
		h.logger.WithField("order_ref", req.OrderID).
			Warn("midtrans notification with invalid signature rejected")
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Invalid signature",
		})
		return
	}

	orderID, err := payment.ParseOrderRef(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unrecognized order reference",
		})
		return
	}

	if err := h.orderService.ApplyGatewayResult(c.Request.Context(), orderID, req.TransactionStatus, req.FraudStatus); err != nil {
		respondError(c, err, "Failed to apply payment result")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"order_id":           orderID,
		"transaction_status": req.TransactionStatus,
	}).Info("midtrans notification applied")

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification processed",
	})
}
