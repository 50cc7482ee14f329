package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alurubalakarthikeya/Zephra/internal/dashboard"
)

// AppConfig is the full service configuration, read from environment.
type AppConfig struct {
	Port string

	// DataMode selects the startup data source ("mock" or "live").
	DataMode dashboard.Mode

	// DefaultLocation is used when a request names no location.
	DefaultLocation string

	// Locations the scheduler re-primes after a day rollover.
	Locations []string

	// MockLatency is the artificial delay of the synthetic provider.
	// Zero disables it; correctness never depends on it.
	MockLatency time.Duration

	// SeedPollInterval controls how often the rollover poll runs.
	SeedPollInterval time.Duration

	// HTTPTimeout applies to outbound live-API calls.
	HTTPTimeout time.Duration

	// CacheMaxAge bounds how long a cached dashboard is served within
	// one seed epoch.
	CacheMaxAge time.Duration

	// GeocoderAPIKey is the Google geocoding key for the live provider.
	GeocoderAPIKey string

	LogLevel string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	mode := dashboard.Mode(getenvDefault("DATA_MODE", string(dashboard.ModeMock)))
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid DATA_MODE: %q", mode)
	}
	cfg.DataMode = mode

	cfg.DefaultLocation = getenvDefault("DEFAULT_LOCATION", "New York")
	cfg.Locations = splitList(getenvDefault("LOCATIONS", cfg.DefaultLocation))

	var err error
	if cfg.MockLatency, err = getenvDuration("MOCK_LATENCY", 0); err != nil {
		return nil, err
	}
	if cfg.SeedPollInterval, err = getenvDuration("SEED_POLL_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheMaxAge, err = getenvDuration("CACHE_MAX_AGE", 10*time.Minute); err != nil {
		return nil, err
	}

	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
