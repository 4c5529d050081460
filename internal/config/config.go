// Package config loads the Smart Wallet configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Errors for missing required configuration. Any of these is fatal at
// startup.
var (
	ErrBackendURLMissing = errors.New("BACKEND_URL must be set")
	ErrBackendURLInvalid = errors.New("BACKEND_URL is not a valid URL")
	ErrAnonKeyMissing    = errors.New("BACKEND_ANON_KEY must be set")
	ErrServiceKeyMissing = errors.New("BACKEND_SERVICE_ROLE_KEY must be set")
)

// Config is the complete configuration for the core and the gateway.
type Config struct {
	// BackendURL is the base URL of the hosted backend.
	BackendURL *url.URL

	// AnonKey authenticates unprivileged record and realtime access.
	AnonKey string

	// ServiceRoleKey authenticates privileged server-side operations:
	// receipt parsing, storage uploads and user bootstrap. Optional for
	// the core library, required by the gateway.
	ServiceRoleKey string

	// Bucket is the storage bucket uploads are written to.
	Bucket string

	// AIModel is the model requested for receipt parsing.
	AIModel string

	Port string

	// CacheTTL is the freshness window for cached queries. A cached
	// value older than this is still served, but triggers a background
	// refetch.
	CacheTTL time.Duration

	// RequestTimeout bounds every single backend request.
	RequestTimeout time.Duration
}

// Load reads the configuration from the environment. Missing required
// values return an error; the caller is expected to treat it as fatal.
func Load() (Config, error) {
	raw, ok := os.LookupEnv("BACKEND_URL")
	if !ok || raw == "" {
		return Config{}, ErrBackendURLMissing
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("%w: %q", ErrBackendURLInvalid, raw)
	}

	anonKey, ok := os.LookupEnv("BACKEND_ANON_KEY")
	if !ok || anonKey == "" {
		return Config{}, ErrAnonKeyMissing
	}

	return Config{
		BackendURL:     u,
		AnonKey:        anonKey,
		ServiceRoleKey: os.Getenv("BACKEND_SERVICE_ROLE_KEY"),
		Bucket:         getenv("STORAGE_BUCKET", "uploads"),
		AIModel:        getenv("AI_MODEL", "gpt-4o-mini"),
		Port:           getenv("PORT", "8080"),
		CacheTTL:       getenvDuration("CACHE_TTL", 30*time.Second),
		RequestTimeout: getenvDuration("REQUEST_TIMEOUT", 30*time.Second),
	}, nil
}

// RequireServiceRoleKey verifies that the service role key is configured.
func (c Config) RequireServiceRoleKey() error {
	if c.ServiceRoleKey == "" {
		return ErrServiceKeyMissing
	}

	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}

	return def
}
