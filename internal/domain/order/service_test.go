package order

import (
	"context"
	"testing"

	"github.com/winston-coffee/ordering-backend/internal/domain/cart"
	"github.com/winston-coffee/ordering-backend/internal/pkg/apperrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&Order{}, &Item{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewService(db, nil)
}

func cartWith(t *testing.T, lines map[string]int64) *cart.Cart {
	t.Helper()
	crt := cart.New()
	id := uint(1)
	for name, price := range lines {
		crt.AddVariant(cart.ItemSnapshot{ID: id, Name: name}, "Hot", price)
		id++
	}
	return crt
}

func TestSubmitEmptyCartFails(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name  string
		crt   *cart.Cart
		table string
	}{
		{"nil cart", nil, "5"},
		{"empty cart with table", cart.New(), "5"},
		{"empty cart without table", cart.New(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.crt, tt.table, "", MethodCash)
			if !apperrors.IsKind(err, apperrors.KindValidation) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestSubmitMissingTableFailsBeforeWrite(t *testing.T) {
	svc := newTestService(t)
	crt := cartWith(t, map[string]int64{"Latte": 25000})

	_, err := svc.Submit(context.Background(), crt, "", "", MethodQRIS)
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	var count int64
	svc.db.Model(&Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no orders written, found %d", count)
	}
}

func TestSubmitCashOrder(t *testing.T) {
	svc := newTestService(t)
	crt := cartWith(t, map[string]int64{"Latte": 25000, "Matcha": 28000})

	id, err := svc.Submit(context.Background(), crt, "7", "no sugar", MethodCash)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	ord, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if ord.Status != StatusAwaitingProcessing {
		t.Fatalf("status = %s, want %s", ord.Status, StatusAwaitingProcessing)
	}
	if ord.PaymentStatus != PaymentStatusCash {
		t.Fatalf("payment status = %s, want %s", ord.PaymentStatus, PaymentStatusCash)
	}
	if ord.TotalAmount != crt.Total() {
		t.Fatalf("total = %d, want %d", ord.TotalAmount, crt.Total())
	}
	if len(ord.Items) != 2 {
		t.Fatalf("expected 2 line snapshots, got %d", len(ord.Items))
	}
	for _, item := range ord.Items {
		if item.TotalPrice != int64(item.Quantity)*item.Price {
			t.Fatalf("line total %d != qty %d * price %d", item.TotalPrice, item.Quantity, item.Price)
		}
	}
	if ord.Note != "no sugar" {
		t.Fatalf("note = %q, want %q", ord.Note, "no sugar")
	}
}

func TestSubmitQRISOrderStartsPending(t *testing.T) {
	svc := newTestService(t)
	crt := cartWith(t, map[string]int64{"Latte": 25000})

	id, err := svc.Submit(context.Background(), crt, "3", "", MethodQRIS)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	ord, _ := svc.Get(context.Background(), id)
	if ord.Status != StatusAwaitingPayment || ord.PaymentStatus != PaymentStatusPending {
		t.Fatalf("got %s/%s, want %s/%s", ord.Status, ord.PaymentStatus, StatusAwaitingPayment, PaymentStatusPending)
	}
}

func TestApplyGatewayResult(t *testing.T) {
	tests := []struct {
		name              string
		transactionStatus string
		fraudStatus       string
		wantStatus        Status
		wantPayment       PaymentStatus
	}{
		{"settlement pays the order", "settlement", "accept", StatusAwaitingProcessing, PaymentStatusPaid},
		{"capture challenged stays pending", "capture", "challenge", StatusAwaitingPayment, PaymentStatusPending},
		{"expire fails the order", "expire", "", StatusCancelled, PaymentStatusFailed},
		{"pending stays pending", "pending", "", StatusAwaitingPayment, PaymentStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			crt := cartWith(t, map[string]int64{"Latte": 25000})
			id, _ := svc.Submit(context.Background(), crt, "3", "", MethodQRIS)

			if err := svc.ApplyGatewayResult(context.Background(), id, tt.transactionStatus, tt.fraudStatus); err != nil {
				t.Fatalf("ApplyGatewayResult returned error: %v", err)
			}

			ord, _ := svc.Get(context.Background(), id)
			if ord.Status != tt.wantStatus || ord.PaymentStatus != tt.wantPayment {
				t.Fatalf("got %s/%s, want %s/%s", ord.Status, ord.PaymentStatus, tt.wantStatus, tt.wantPayment)
			}
		})
	}
}

func TestUpdateStatusValidatesTransitions(t *testing.T) {
	svc := newTestService(t)
	crt := cartWith(t, map[string]int64{"Latte": 25000})
	id, _ := svc.Submit(context.Background(), crt, "3", "", MethodCash)

	// awaiting_processing -> completed skips processing
	err := svc.UpdateStatus(context.Background(), id, StatusCompleted)
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected ValidationError for invalid transition, got %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), id, StatusProcessing); err != nil {
		t.Fatalf("valid transition failed: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), id, StatusCompleted); err != nil {
		t.Fatalf("valid transition failed: %v", err)
	}
}

func TestMarkCashPaid(t *testing.T) {
	svc := newTestService(t)
	crt := cartWith(t, map[string]int64{"Latte": 25000})
	id, _ := svc.Submit(context.Background(), crt, "3", "", MethodCash)

	if err := svc.MarkCashPaid(context.Background(), id); err != nil {
		t.Fatalf("MarkCashPaid returned error: %v", err)
	}

	ord, _ := svc.Get(context.Background(), id)
	if ord.PaymentStatus != PaymentStatusPaid {
		t.Fatalf("payment status = %s, want %s", ord.PaymentStatus, PaymentStatusPaid)
	}

	qrisID, _ := svc.Submit(context.Background(), cartWith(t, map[string]int64{"Matcha": 28000}), "3", "", MethodQRIS)
	err := svc.MarkCashPaid(context.Background(), qrisID)
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected ValidationError for QRIS order, got %v", err)
	}
}

func TestAttachToken(t *testing.T) {
	svc := newTestService(t)
	crt := cartWith(t, map[string]int64{"Latte": 25000})
	id, _ := svc.Submit(context.Background(), crt, "3", "", MethodQRIS)

	if err := svc.AttachToken(context.Background(), id, "tok-123"); err != nil {
		t.Fatalf("AttachToken returned error: %v", err)
	}

	ord, _ := svc.Get(context.Background(), id)
	if ord.SnapToken != "tok-123" {
		t.Fatalf("snap token = %q, want %q", ord.SnapToken, "tok-123")
	}

	err := svc.AttachToken(context.Background(), 999, "tok-456")
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected ValidationError for unknown order, got %v", err)
	}
}
