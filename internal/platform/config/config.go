package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// insecureDevJWTSecret signs tokens only outside production.
const insecureDevJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string

	// CronSecret guards the scheduler-triggered finalization route. Empty disables it.
	CronSecret string

	PaymentIntentTTL   time.Duration
	FinalizationWindow time.Duration
	FinalizerEnabled   bool
	FinalizerInterval  time.Duration

	QRBaseURL          string
	CORSAllowedOrigins []string
	ConfirmRateLimit   string
	CronRateLimit      string
	ShutdownTimeout    time.Duration

	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("CRON_SECRET", "")
	viper.SetDefault("PAYMENT_INTENT_TTL", "15m")
	viper.SetDefault("FINALIZATION_WINDOW", "24h")
	viper.SetDefault("FINALIZER_ENABLED", true)
	viper.SetDefault("FINALIZER_INTERVAL", "5m")
	viper.SetDefault("QR_BASE_URL", "https://pay.example.com/pay")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT_CONFIRM", "30-M")
	viper.SetDefault("RATE_LIMIT_CRON", "60-M")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		MigrationsPath:   viper.GetString("MIGRATIONS_PATH"),
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:    viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		CronSecret:       viper.GetString("CRON_SECRET"),
		FinalizerEnabled: viper.GetBool("FINALIZER_ENABLED"),
		QRBaseURL:        strings.TrimRight(viper.GetString("QR_BASE_URL"), "/"),
		ConfirmRateLimit: viper.GetString("RATE_LIMIT_CONFIRM"),
		CronRateLimit:    viper.GetString("RATE_LIMIT_CRON"),
		PosthogAPIKey:    viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:  viper.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = insecureDevJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.CronSecret == "" {
		log.Println("Warning: CRON_SECRET not set. /cron/finalize-ledger will answer with a configuration error.")
	}

	cfg.PaymentIntentTTL = durationOrDefault("PAYMENT_INTENT_TTL", 15*time.Minute)
	cfg.FinalizationWindow = durationOrDefault("FINALIZATION_WINDOW", 24*time.Hour)
	cfg.FinalizerInterval = durationOrDefault("FINALIZER_INTERVAL", 5*time.Minute)
	cfg.ShutdownTimeout = durationOrDefault("SHUTDOWN_TIMEOUT", 15*time.Second)

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

// Validate reports settings without which no command can run.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("PGSQL_URL is required")
	}
	if c.IsProduction && (c.JWTSecret == "" || c.JWTSecret == insecureDevJWTSecret) {
		return errors.New("JWT_SECRET is required in production")
	}
	return nil
}

// durationOrDefault parses a duration setting, falling back when it is missing or malformed.
func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
