package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("rate limiting disabled by default")
	}
	if cfg.Capacity < 1 || cfg.RefillTokens < 1 {
		t.Errorf("invalid defaults: capacity=%d refill=%d", cfg.Capacity, cfg.RefillTokens)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Errorf("TTL %v shorter than five refill intervals", cfg.TTL)
	}
}

func TestLoadRateLimitConfigOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 5 {
		t.Errorf("Capacity = %d, want 5", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 || cfg.RefillInterval != 2*time.Second {
		t.Errorf("refill = %d per %v, want 1 per 2s", cfg.RefillTokens, cfg.RefillInterval)
	}
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Methods["GET"] {
		t.Error("GET not cached by default")
	}
	if cfg.TTL <= 0 {
		t.Errorf("TTL = %v", cfg.TTL)
	}
}
