package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string
	MemorySeedFile string

	JWTSecret string
	JWTIssuer string

	CORSAllowedOrigins []string
	RateLimit          string

	RedisURL string

	ReconciliationInterval time.Duration
	ReconciliationCron     string // overrides the interval when set
	ReconciliationTimezone *time.Location
	ReconciliationLockTTL  time.Duration
	// Completed days each scheduled run covers, so a day that failed is
	// retried by later runs.
	ReconciliationLookbackDays int
	ReconciliationRunOnStart   bool

	EnforceOfficerSeniority bool
	ShutdownTimeout         time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("MEMORY_SEED_FILE", "")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "org-banking")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RECONCILIATION_INTERVAL", "1h")
	v.SetDefault("RECONCILIATION_CRON", "")
	v.SetDefault("RECONCILIATION_TIMEZONE", "UTC")
	v.SetDefault("RECONCILIATION_LOCK_TTL", "10m")
	v.SetDefault("RECONCILIATION_LOOKBACK_DAYS", 3)
	v.SetDefault("RECONCILIATION_RUN_ON_START", true)
	v.SetDefault("ENFORCE_OFFICER_SENIORITY", true)
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")

	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:             v.GetString("PGSQL_URL"),
		Port:                    v.GetString("PORT"),
		IsProduction:            v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:           v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:           strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		MigrationsPath:          v.GetString("MIGRATIONS_PATH"),
		MemorySeedFile:          v.GetString("MEMORY_SEED_FILE"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		JWTIssuer:               v.GetString("JWT_ISSUER"),
		CORSAllowedOrigins:      splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:               v.GetString("RATE_LIMIT"),
		RedisURL:                v.GetString("REDIS_URL"),
		ReconciliationCron:      strings.TrimSpace(v.GetString("RECONCILIATION_CRON")),
		EnforceOfficerSeniority: v.GetBool("ENFORCE_OFFICER_SENIORITY"),
	}
	cfg.ReconciliationLookbackDays = v.GetInt("RECONCILIATION_LOOKBACK_DAYS")
	cfg.ReconciliationRunOnStart = v.GetBool("RECONCILIATION_RUN_ON_START")

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, data is kept in-process and lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}

	if cfg.ReconciliationLookbackDays < 1 {
		return nil, fmt.Errorf("RECONCILIATION_LOOKBACK_DAYS must be at least 1, got %d", cfg.ReconciliationLookbackDays)
	}

	var err error
	if cfg.ReconciliationInterval, err = parseDuration(v, "RECONCILIATION_INTERVAL"); err != nil {
		return nil, err
	}
	if cfg.ReconciliationLockTTL, err = parseDuration(v, "RECONCILIATION_LOCK_TTL"); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDuration(v, "SHUTDOWN_TIMEOUT"); err != nil {
		return nil, err
	}

	tz := v.GetString("RECONCILIATION_TIMEZONE")
	cfg.ReconciliationTimezone, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILIATION_TIMEZONE %q: %w", tz, err)
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
