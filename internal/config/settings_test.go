package config

import (
	"errors"
	"testing"
	"time"
)

func TestFromEnv_RequiresToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	_, err := FromEnv()
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("err = %v, want ErrNoToken", err)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("MUZBOT_CACHE_TTL", "")
	t.Setenv("MUZBOT_CACHE_SIZE", "")
	t.Setenv("MUZBOT_VERBOSE", "")

	settings, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if settings.Token != "123:abc" {
		t.Errorf("Token = %q", settings.Token)
	}
	if settings.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %v, want 30m", settings.CacheTTL)
	}
	if settings.CacheSize != 1000 {
		t.Errorf("CacheSize = %d, want 1000", settings.CacheSize)
	}
	if settings.Verbose {
		t.Error("Verbose = true, want false by default")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("MUZBOT_CACHE_TTL", "5m")
	t.Setenv("MUZBOT_CACHE_SIZE", "50")
	t.Setenv("MUZBOT_VERBOSE", "true")

	settings, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if settings.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", settings.CacheTTL)
	}
	if settings.CacheSize != 50 {
		t.Errorf("CacheSize = %d, want 50", settings.CacheSize)
	}
	if !settings.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad ttl", "MUZBOT_CACHE_TTL", "soon"},
		{"bad size", "MUZBOT_CACHE_SIZE", "many"},
		{"zero size", "MUZBOT_CACHE_SIZE", "0"},
		{"bad verbose", "MUZBOT_VERBOSE", "yep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BOT_TOKEN", "123:abc")
			t.Setenv(tt.key, tt.value)

			if _, err := FromEnv(); err == nil {
				t.Errorf("FromEnv accepted %s=%q", tt.key, tt.value)
			}
		})
	}
}
