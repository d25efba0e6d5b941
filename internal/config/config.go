package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port          string
	Env           string
	StoreURL      string // hosted table-store endpoint, e.g. postgres://db.example.com:5432/app
	StoreKey      string // service access key, folded into the connection credentials
	SessionSecret string
	SessionTTL    time.Duration
}

// Load reads configuration from the environment. STORE_URL and STORE_ACCESS_KEY
// identify the hosted table store and are mandatory; everything else has a
// development default.
// Precedence: explicit env var > .env file (if loaded by the caller) > default.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("APP_ENV", "development"),
		StoreURL:      strings.TrimSpace(os.Getenv("STORE_URL")),
		StoreKey:      strings.TrimSpace(os.Getenv("STORE_ACCESS_KEY")),
		SessionSecret: getEnv("SESSION_SECRET", "devsessionsecret"),
		SessionTTL:    14 * 24 * time.Hour,
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SESSION_TTL %q: %w", v, err)
		}
		cfg.SessionTTL = d
	}
	var missing []string
	if cfg.StoreURL == "" {
		missing = append(missing, "STORE_URL")
	}
	if cfg.StoreKey == "" {
		missing = append(missing, "STORE_ACCESS_KEY")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
