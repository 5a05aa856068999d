package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "SB-Mid-server-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Payment.CountdownSeconds != 60 {
		t.Fatalf("expected default countdown of 60 seconds, got %d", cfg.Payment.CountdownSeconds)
	}
	if cfg.Midtrans.Environment != "sandbox" {
		t.Fatalf("expected default midtrans environment sandbox, got %s", cfg.Midtrans.Environment)
	}
}

func TestValidateRequiresServerKey(t *testing.T) {
	t.Setenv("MIDTRANS_SERVER_KEY", "SB-Mid-server-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	cfg.Midtrans.ServerKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation to fail without MIDTRANS_SERVER_KEY")
	}

	cfg.Midtrans.ServerKey = "SB-Mid-server-test"
	cfg.Midtrans.Environment = "staging"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation to fail for unknown midtrans environment")
	}

	cfg.Midtrans.Environment = "sandbox"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}
}

func TestMidtransBaseURLPerEnvironment(t *testing.T) {
	cfg := &Config{}

	cfg.Midtrans.Environment = "sandbox"
	if got := cfg.GetMidtransBaseURL(); got != "https://app.sandbox.midtrans.com" {
		t.Fatalf("unexpected sandbox base URL: %s", got)
	}

	cfg.Midtrans.Environment = "production"
	if got := cfg.GetMidtransBaseURL(); got != "https://app.midtrans.com" {
		t.Fatalf("unexpected production base URL: %s", got)
	}
}
