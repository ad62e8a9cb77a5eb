package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Settings holds all process configuration.
type Settings struct {
	// Token is the Telegram bot credential. Required.
	Token string

	// CacheTTL is how long a cached search result set stays clickable.
	CacheTTL time.Duration

	// CacheSize caps how many result sets are kept at once.
	CacheSize int

	// RequestTimeout bounds one whole incoming chat request.
	RequestTimeout time.Duration

	// Verbose enables debug-level logging.
	Verbose bool
}

// ErrNoToken is returned when the bot token is missing from the
// environment. The process must not start without it.
var ErrNoToken = errors.New("BOT_TOKEN environment variable is required")

// DefaultSettings returns settings with default values. The token has
// no default.
func DefaultSettings() *Settings {
	return &Settings{
		CacheTTL:       30 * time.Minute,
		CacheSize:      1000,
		RequestTimeout: 2 * time.Minute,
	}
}

// FromEnv builds Settings from the process environment:
//
//	BOT_TOKEN            required credential
//	MUZBOT_CACHE_TTL     optional, Go duration (default 30m)
//	MUZBOT_CACHE_SIZE    optional, integer (default 1000)
//	MUZBOT_VERBOSE       optional, boolean (default false)
func FromEnv() (*Settings, error) {
	settings := DefaultSettings()

	settings.Token = os.Getenv("BOT_TOKEN")
	if settings.Token == "" {
		return nil, ErrNoToken
	}

	if raw := os.Getenv("MUZBOT_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid MUZBOT_CACHE_TTL: %w", err)
		}
		settings.CacheTTL = ttl
	}

	if raw := os.Getenv("MUZBOT_CACHE_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return nil, fmt.Errorf("invalid MUZBOT_CACHE_SIZE %q", raw)
		}
		settings.CacheSize = size
	}

	if raw := os.Getenv("MUZBOT_VERBOSE"); raw != "" {
		verbose, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid MUZBOT_VERBOSE %q", raw)
		}
		settings.Verbose = verbose
	}

	return settings, nil
}
