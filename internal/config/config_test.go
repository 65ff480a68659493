package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "PLAN_CACHE_TTL", "WORKERS", "MAX_DELIVERIES", "TOP_K", "DATABASE_URL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.PlanCacheTTL != 15*time.Minute {
		t.Fatalf("PlanCacheTTL = %v, want 15m", cfg.PlanCacheTTL)
	}
	if cfg.MaxDeliveries != 8 || cfg.TopK != 3 {
		t.Fatalf("MaxDeliveries, TopK = %d, %d, want 8, 3", cfg.MaxDeliveries, cfg.TopK)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PLAN_CACHE_TTL", "90s")
	t.Setenv("WORKERS", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.PlanCacheTTL != 90*time.Second {
		t.Fatalf("PlanCacheTTL = %v, want 90s", cfg.PlanCacheTTL)
	}
	if cfg.Workers != 4 {
		t.Fatalf("Workers = %d, want 4", cfg.Workers)
	}
}

func TestLoad_RejectsMalformedValues(t *testing.T) {
	tests := []struct {
		key, val string
	}{
		{"WORKERS", "many"},
		{"TOP_K", "-1"},
		{"PLAN_CACHE_TTL", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}
