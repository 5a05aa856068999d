package staff

import (
	"context"
	"testing"

	"github.com/winston-coffee/ordering-backend/internal/config"
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
	if err := db.AutoMigrate(&Staff{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{}
	cfg.Security.BcryptCost = 4 // minimum cost keeps the test fast
	cfg.JWT.Secret = "test-secret-with-32-characters!!!"
	return NewService(db, cfg)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Create(context.Background(), "cashier", "ChangeMe123!", RoleCashier); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	resp, err := svc.Login(context.Background(), &LoginRequest{Username: "cashier", Password: "ChangeMe123!"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.Staff.Role != RoleCashier {
		t.Fatalf("role = %s, want %s", resp.Staff.Role, RoleCashier)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Create(context.Background(), "cashier", "ChangeMe123!", RoleCashier); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, badUser := svc.Login(context.Background(), &LoginRequest{Username: "nobody", Password: "ChangeMe123!"})
	_, badPass := svc.Login(context.Background(), &LoginRequest{Username: "cashier", Password: "wrong"})

	for _, err := range []error{badUser, badPass} {
		if !apperrors.IsKind(err, apperrors.KindValidation) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if err.Error() != badUser.Error() {
			t.Fatalf("unknown-user and bad-password responses differ: %q vs %q", badUser, err)
		}
	}
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	svc := newTestService(t)
	account, err := svc.Create(context.Background(), "cashier", "ChangeMe123!", RoleCashier)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	account.IsActive = false
	if err := svc.db.Save(account).Error; err != nil {
		t.Fatalf("failed to deactivate account: %v", err)
	}

	// The deactivation must actually persist as false
	var stored Staff
	if err := svc.db.First(&stored, account.ID).Error; err != nil {
		t.Fatalf("failed to reload account: %v", err)
	}
	if stored.IsActive {
		t.Fatal("deactivation did not persist")
	}

	_, loginErr := svc.Login(context.Background(), &LoginRequest{Username: "cashier", Password: "ChangeMe123!"})
	if !apperrors.IsKind(loginErr, apperrors.KindValidation) {
		t.Fatalf("expected ValidationError for deactivated account, got %v", loginErr)
	}
}
