package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Cfg is the global configuration loaded at startup.
var Cfg Config

// Config holds all application configuration.
type Config struct {
	// Server
	Port    string
	BaseURL string

	// Sentry
	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string

	// Catalog
	CatalogPath    string
	CatalogURL     string
	CatalogWatch   bool
	CatalogTimeout time.Duration

	// Rate limiter
	RateLimitRPS   int
	RateLimitBurst int

	// Link checker
	LinkCheckEnabled  bool
	LinkCheckInterval time.Duration
	LinkCheckDelay    time.Duration

	// HTTP
	UserAgent string

	// Gzip
	GzipEnabled bool

	// Metrics
	MetricsEnabled bool
}

// Load reads .env (if present) and populates Cfg from environment variables.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables")
	}

	Cfg = Config{
		Port:    envOr("PORT", "8080"),
		BaseURL: envOr("BASE_URL", "https://foerderrechner.de"),

		SentryDSN:         os.Getenv("SENTRY_DSN"),
		SentryEnvironment: envOr("SENTRY_ENVIRONMENT", "production"),
		SentryRelease:     envOr("SENTRY_RELEASE", "foerderrechner@1.0.0"),

		CatalogPath:    envOr("CATALOG_PATH", "data/data.json"),
		CatalogURL:     os.Getenv("CATALOG_URL"),
		CatalogWatch:   envBool("CATALOG_WATCH", true),
		CatalogTimeout: envDuration("CATALOG_TIMEOUT", 30*time.Second),

		RateLimitRPS:   envInt("RATE_LIMIT_RPS", 30),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 60),

		LinkCheckEnabled:  envBool("LINKCHECK_ENABLED", true),
		LinkCheckInterval: envDuration("LINKCHECK_INTERVAL", 24*time.Hour),
		LinkCheckDelay:    envDuration("LINKCHECK_DELAY", 5*time.Second),

		UserAgent: envOr("USER_AGENT", "Mozilla/5.0 (compatible; FoerderRechnerBot/1.0; +https://foerderrechner.de)"),

		GzipEnabled: envBool("GZIP_ENABLED", true),

		MetricsEnabled: envBool("METRICS_ENABLED", true),
	}

	log.Printf("config: loaded (port=%s, catalog=%s, linkcheck=%v)",
		Cfg.Port, catalogSource(), Cfg.LinkCheckEnabled)
}

func catalogSource() string {
	if Cfg.CatalogURL != "" {
		return Cfg.CatalogURL
	}
	return Cfg.CatalogPath
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
