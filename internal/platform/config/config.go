package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// DueWindowDays is the number of days before a cheque's date during which it
	// is flagged DUE rather than merely RECEIVED.
	DueWindowDays int

	// DepositGraceDays is how many days before the cheque date a deposit may be
	// recorded.
	DepositGraceDays int

	// SweepInterval is how often the due-window sweep runs.
	SweepInterval time.Duration

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DUE_WINDOW_DAYS", 7)
	viper.SetDefault("DEPOSIT_GRACE_DAYS", 3)
	viper.SetDefault("SWEEP_INTERVAL", "24h")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.DueWindowDays = viper.GetInt("DUE_WINDOW_DAYS")
	if cfg.DueWindowDays < 0 {
		log.Printf("Warning: DUE_WINDOW_DAYS is negative (%d). Defaulting to 7.\n", cfg.DueWindowDays)
		cfg.DueWindowDays = 7
	}

	cfg.DepositGraceDays = viper.GetInt("DEPOSIT_GRACE_DAYS")
	if cfg.DepositGraceDays < 0 {
		log.Printf("Warning: DEPOSIT_GRACE_DAYS is negative (%d). Defaulting to 3.\n", cfg.DepositGraceDays)
		cfg.DepositGraceDays = 3
	}

	sweepIntervalStr := viper.GetString("SWEEP_INTERVAL")
	sweepInterval, err := time.ParseDuration(sweepIntervalStr)
	if err != nil {
		log.Printf("Warning: Invalid value for SWEEP_INTERVAL ('%s'). Defaulting to 24h.\n", sweepIntervalStr)
		sweepInterval = 24 * time.Hour
	}
	cfg.SweepInterval = sweepInterval

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
