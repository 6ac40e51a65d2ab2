package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	DefaultCurrency string

	// Telemetry
	PosthogAPIKey string

	// Reconciliation scheduling
	ReconcileInterval time.Duration
	ReconcileTimeout  time.Duration
	// Rate limit for manually triggered runs, in ulule/limiter notation
	// (e.g. "10-M" is ten requests per minute per client).
	ReconcileRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DEFAULT_CURRENCY", "EUR")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("RECONCILE_INTERVAL", "24h")
	viper.SetDefault("RECONCILE_TIMEOUT", "5m")
	viper.SetDefault("RECONCILE_RATE_LIMIT", "10-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.DefaultCurrency = viper.GetString("DEFAULT_CURRENCY")
	if len(cfg.DefaultCurrency) != 3 {
		log.Printf("Warning: Invalid DEFAULT_CURRENCY (%q). Defaulting to EUR.\n", cfg.DefaultCurrency)
		cfg.DefaultCurrency = "EUR"
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	reconcileIntervalStr := viper.GetString("RECONCILE_INTERVAL")
	reconcileInterval, err := time.ParseDuration(reconcileIntervalStr)
	if err != nil || reconcileInterval <= 0 {
		reconcileInterval = 24 * time.Hour
		log.Printf("Warning: Invalid value for RECONCILE_INTERVAL ('%s'). Defaulting to %s.\n", reconcileIntervalStr, reconcileInterval.String())
	}
	cfg.ReconcileInterval = reconcileInterval

	reconcileTimeoutStr := viper.GetString("RECONCILE_TIMEOUT")
	reconcileTimeout, err := time.ParseDuration(reconcileTimeoutStr)
	if err != nil || reconcileTimeout <= 0 {
		reconcileTimeout = 5 * time.Minute
		log.Printf("Warning: Invalid value for RECONCILE_TIMEOUT ('%s'). Defaulting to %s.\n", reconcileTimeoutStr, reconcileTimeout.String())
	}
	cfg.ReconcileTimeout = reconcileTimeout

	cfg.ReconcileRateLimit = viper.GetString("RECONCILE_RATE_LIMIT")
	if cfg.ReconcileRateLimit == "" {
		cfg.ReconcileRateLimit = "10-M"
	}

	return cfg, nil
}
