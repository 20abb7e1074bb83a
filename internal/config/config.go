// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string // empty logs to stdout only
	Environment string
	ServiceName string
	Version     string
	AdminAPIKey string // API key for admin routes

	// TrustedProxies may set X-Forwarded-For
	TrustedProxies []string

	StorageBackend    string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	SQLitePath        string

	CatalogPath        string
	GeminiAPIKey       string
	MessageTimeout     time.Duration
	SpinRevealDelay    time.Duration
	ScratchRevealDelay time.Duration
	SessionIdleTTL     time.Duration
	JanitorInterval    time.Duration
	DeadLetterPath     string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:   getEnv(EnvLogFormat, DefaultLogFormat),
		LogDir:      getEnv(EnvLogDir, ""),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName: getEnv(EnvServiceName, DefaultServiceName),
		Version:     getEnv(EnvVersion, DefaultVersion),
		AdminAPIKey: getEnv(EnvAdminAPIKey, ""),

		TrustedProxies: getEnvAsList(EnvTrustedProxies),

		StorageBackend:    getEnv(EnvStorageBackend, StorageMemory),
		DBUser:            getEnv(EnvDBUser, DefaultDBUser),
		DBPassword:        getEnv(EnvDBPassword, DefaultDBPassword),
		DBHost:            getEnv(EnvDBHost, DefaultDBHost),
		DBPort:            getEnv(EnvDBPort, DefaultDBPort),
		DBName:            getEnv(EnvDBName, DefaultDBName),
		DBMaxConns:        getEnvAsInt(EnvDBMaxConns, DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration(EnvDBMaxConnIdleTime, DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration(EnvDBMaxConnLifetime, DefaultDBMaxConnLifetime),
		SQLitePath:        getEnv(EnvSQLitePath, DefaultSQLitePath),

		CatalogPath:        getEnv(EnvCatalogPath, ""),
		GeminiAPIKey:       getEnv(EnvGeminiAPIKey, ""),
		MessageTimeout:     getEnvAsDuration(EnvMessageTimeout, DefaultMessageTimeout),
		SpinRevealDelay:    getEnvAsDuration(EnvSpinRevealDelay, DefaultSpinRevealDelay),
		ScratchRevealDelay: getEnvAsDuration(EnvScratchRevealDelay, DefaultScratchRevealDelay),
		SessionIdleTTL:     getEnvAsDuration(EnvSessionIdleTTL, DefaultSessionIdleTTL),
		JanitorInterval:    getEnvAsDuration(EnvJanitorInterval, DefaultJanitorInterval),
		DeadLetterPath:     getEnv(EnvDeadLetterPath, DefaultDeadLetterPath),
	}

	port, err := strconv.Atoi(getEnv(EnvPort, DefaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.AdminAPIKey == "" {
		return nil, fmt.Errorf("%s environment variable must be set for security", EnvAdminAPIKey)
	}
	switch cfg.StorageBackend {
	case StorageMemory, StoragePostgres, StorageSQLite:
	default:
		return nil, fmt.Errorf("invalid %s value %q: expected %s, %s or %s",
			EnvStorageBackend, cfg.StorageBackend, StorageMemory, StoragePostgres, StorageSQLite)
	}

	return cfg, nil
}

// UsePostgres reports whether the ledger is backed by Postgres
func (c *Config) UsePostgres() bool {
	return c.StorageBackend == StoragePostgres
}

// UseSQLite reports whether the ledger is a local SQLite file
func (c *Config) UseSQLite() bool {
	return c.StorageBackend == StorageSQLite
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt falls back to defaultValue when the variable is unset or not an integer
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration falls back to defaultValue when the variable is unset or unparsable
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
