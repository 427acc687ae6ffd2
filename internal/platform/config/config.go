package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	Port           string
	IsProduction   bool
	StorageBackend string
	DatabaseURL    string
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	// LedgerOwner is bootstrapped as owner and ADMIN on first start.
	LedgerOwner string

	RateLimit          string
	CORSAllowedOrigins []string

	PosthogAPIKey   string
	PosthogEndpoint string
	MetricsEnabled  bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_BACKEND", StorageMemory)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("LEDGER_OWNER", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("METRICS_ENABLED", true)

	// Environment variables override the defaults and anything loaded from .env
	viper.AutomaticEnv()

	cfg := &Config{
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		StorageBackend:     strings.ToLower(strings.TrimSpace(viper.GetString("STORAGE_BACKEND"))),
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		EnableDBCheck:      viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:     viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		JWTIssuer:          viper.GetString("JWT_ISSUER"),
		LedgerOwner:        strings.TrimSpace(viper.GetString("LEDGER_OWNER")),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		PosthogAPIKey:      viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:    viper.GetString("POSTHOG_ENDPOINT"),
		MetricsEnabled:     viper.GetBool("METRICS_ENABLED"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageBackend {
	case StorageMemory:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_BACKEND is %s", StoragePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q, expected %s or %s", cfg.StorageBackend, StorageMemory, StoragePostgres)
	}

	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.LedgerOwner == "" {
		log.Println("Warning: LEDGER_OWNER not set. The ledger will have no owner or admin until one is configured.")
	}

	if _, err := limiter.NewRateFromFormatted(cfg.RateLimit); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
	}

	if len(cfg.CORSAllowedOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin or \"*\"")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
