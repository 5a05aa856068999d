package payment

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/winston-coffee/ordering-backend/internal/pkg/apperrors"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(baseURL string) *SnapClient {
	return &SnapClient{
		serverKey:  "test-server-key",
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     quietLogger(),
	}
}

func TestCreateTransactionReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/snap/v1/transactions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if user, _, ok := r.BasicAuth(); !ok || user != "test-server-key" {
			t.Errorf("expected basic auth with server key")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"abc","redirect_url":"https://example.test/redirect"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	token, err := client.CreateTransaction(context.Background(), "ORD1", 50000)
	if err != nil {
		t.Fatalf("CreateTransaction returned error: %v", err)
	}
	if token != "abc" {
		t.Fatalf("token = %q, want %q", token, "abc")
	}
}

func TestCreateTransactionGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error_messages":["Access denied"]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	token, err := client.CreateTransaction(context.Background(), "ORD1", 50000)
	if !apperrors.IsKind(err, apperrors.KindGateway) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if token != "" {
		t.Fatalf("expected no token on failure, got %q", token)
	}
}

func TestCreateTransactionUnreachableGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := newTestClient(srv.URL)
	_, err := client.CreateTransaction(context.Background(), "ORD1", 50000)
	if !apperrors.IsKind(err, apperrors.KindGateway) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
}

func TestCreateTransactionValidatesInput(t *testing.T) {
	client := newTestClient("http://unused.test")

	tests := []struct {
		name     string
		orderRef string
		amount   int64
	}{
		{"empty order ref", "", 50000},
		{"zero amount", "ORD1", 0},
		{"negative amount", "ORD1", -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateTransaction(context.Background(), tt.orderRef, tt.amount)
			if !apperrors.IsKind(err, apperrors.KindValidation) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestVerifyNotificationSignature(t *testing.T) {
	client := newTestClient("http://unused.test")

	sum := sha512.Sum512([]byte("ORD1" + "200" + "50000.00" + "test-server-key"))
	good := hex.EncodeToString(sum[:])

	if !client.VerifyNotificationSignature("ORD1", "200", "50000.00", good) {
		t.Fatalf("expected valid signature to verify")
	}
	if client.VerifyNotificationSignature("ORD1", "200", "50000.00", "forged") {
		t.Fatalf("expected forged signature to fail")
	}
}
