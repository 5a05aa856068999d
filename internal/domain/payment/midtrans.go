// internal/domain/payment/midtrans.go
package payment

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/winston-coffee/ordering-backend/internal/config"
	"github.com/winston-coffee/ordering-backend/internal/pkg/apperrors"
)

// Gateway creates payment transactions. Satisfied by SnapClient; test
// doubles stand in for it in the orchestrator tests.
type Gateway interface {
	CreateTransaction(ctx context.Context, orderRef string, grossAmount int64) (string, error)
}

// SnapClient wraps the Midtrans Snap transaction-creation API
type SnapClient struct {
	serverKey  string
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewSnapClient creates a Snap client from configuration. The server key
// comes from the environment; config validation already rejected an empty one.
func NewSnapClient(cfg *config.Config, logger *logrus.Logger) *SnapClient {
	timeout := cfg.Payment.GatewayTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SnapClient{
		serverKey: cfg.Midtrans.ServerKey,
		baseURL:   cfg.GetMidtransBaseURL(),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// snapTransactionRequest is the Snap create-transaction payload with the
// fixed QRIS instrument configuration
type snapTransactionRequest struct {
	TransactionDetails struct {
		OrderID     string `json:"order_id"`
		GrossAmount int64  `json:"gross_amount"`
	} `json:"transaction_details"`
	QRIS struct {
		Acquirer string `json:"acquirer"`
	} `json:"qris"`
}

type snapTransactionResponse struct {
	Token         string   `json:"token"`
	RedirectURL   string   `json:"redirect_url"`
	ErrorMessages []string `json:"error_messages,omitempty"`
}

// CreateTransaction requests a Snap token for the given order reference and
// amount. Any failure is logged and surfaced as a GatewayError; there is no
// retry here; the caller presents the failure state.
func (c *SnapClient) CreateTransaction(ctx context.Context, orderRef string, grossAmount int64) (string, error) {
	if orderRef == "" {
		return "", apperrors.Validation("order reference required")
	}
	if grossAmount <= 0 {
		return "", apperrors.Validation("gross amount must be positive")
	}

	var payload snapTransactionRequest
	payload.TransactionDetails.OrderID = orderRef
	payload.TransactionDetails.GrossAmount = grossAmount
	payload.QRIS.Acquirer = "gopay"

	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.Gateway("failed to encode transaction request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/snap/v1/transactions", bytes.NewBuffer(body))
	if err != nil {
		return "", apperrors.Gateway("failed to build transaction request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.serverKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("order_ref", orderRef).Error("snap transaction request failed")
		return "", apperrors.Gateway("failed to reach payment gateway", err)
	}
	defer resp.Body.Close()

	var snapResp snapTransactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&snapResp); err != nil {
		c.logger.WithError(err).WithField("order_ref", orderRef).Error("snap response decode failed")
		return "", apperrors.Gateway("failed to decode gateway response", err)
	}

	if resp.StatusCode >= 400 || snapResp.Token == "" {
		err := fmt.Errorf("gateway returned status %d: %v", resp.StatusCode, snapResp.ErrorMessages)
		c.logger.WithError(err).WithField("order_ref", orderRef).Error("snap transaction rejected")
		return "", apperrors.Gateway("failed to create transaction", err)
	}

	return snapResp.Token, nil
}

// VerifyNotificationSignature checks a Midtrans HTTP notification's
// signature_key: sha512(order_id + status_code + gross_amount + server_key)
func (c *SnapClient) VerifyNotificationSignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + c.serverKey))
	return hex.EncodeToString(sum[:]) == signatureKey
}
