package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultRequestTimeout = 15 * time.Second
	defaultProbeTimeout   = 3 * time.Second
)

type AppConfig struct {
	Port             string
	DBPath           string
	APIBaseURL       string // blank selects the mock client
	RequestTimeout   time.Duration
	ProbeTimeout     time.Duration
	OwnerPlaceholder string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getDur := func(k string, def time.Duration) time.Duration {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("[cfg] invalid %s=%q, using %s: %v", k, v, def, err)
			return def
		}
		return d
	}
	cfg := AppConfig{
		Port:             get("PORT", "8090"),
		DBPath:           get("DB_PATH", "wellconnect.db"),
		APIBaseURL:       get("API_BASE_URL", ""),
		RequestTimeout:   getDur("API_TIMEOUT", defaultRequestTimeout),
		ProbeTimeout:     getDur("PROBE_TIMEOUT", defaultProbeTimeout),
		OwnerPlaceholder: get("OWNER_PLACEHOLDER", "Unknown owner"),
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}
