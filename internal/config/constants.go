package config

import "time"

// Environment variable names
const (
	EnvPort               = "PORT"
	EnvLogLevel           = "LOG_LEVEL"
	EnvLogFormat          = "LOG_FORMAT"
	EnvLogDir             = "LOG_DIR"
	EnvEnvironment        = "ENVIRONMENT"
	EnvServiceName        = "SERVICE_NAME"
	EnvVersion            = "VERSION"
	EnvAdminAPIKey        = "ADMIN_API_KEY"
	EnvTrustedProxies     = "TRUSTED_PROXIES"
	EnvStorageBackend     = "STORAGE_BACKEND"
	EnvDBUser             = "DB_USER"
	EnvDBPassword         = "DB_PASSWORD"
	EnvDBHost             = "DB_HOST"
	EnvDBPort             = "DB_PORT"
	EnvDBName             = "DB_NAME"
	EnvDBMaxConns         = "DB_MAX_CONNS"
	EnvDBMaxConnIdleTime  = "DB_MAX_CONN_IDLE_TIME"
	EnvDBMaxConnLifetime  = "DB_MAX_CONN_LIFETIME"
	EnvSQLitePath         = "SQLITE_PATH"
	EnvCatalogPath        = "CATALOG_PATH"
	EnvGeminiAPIKey       = "GEMINI_API_KEY"
	EnvMessageTimeout     = "MESSAGE_TIMEOUT"
	EnvSpinRevealDelay    = "SPIN_REVEAL_DELAY"
	EnvScratchRevealDelay = "SCRATCH_REVEAL_DELAY"
	EnvSessionIdleTTL     = "SESSION_IDLE_TTL"
	EnvJanitorInterval    = "JANITOR_INTERVAL"
	EnvDeadLetterPath     = "DEAD_LETTER_PATH"
	EnvSchemaVersion      = "ENV_SCHEMA_VERSION"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Defaults
const (
	DefaultPort               = "8080"
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultEnvironment        = "dev"
	DefaultServiceName        = "ioc-spinwheel"
	DefaultVersion            = "dev"
	DefaultDBUser             = "postgres"
	DefaultDBPassword         = "postgres"
	DefaultDBHost             = "localhost"
	DefaultDBPort             = "5432"
	DefaultDBName             = "spinwheel"
	DefaultDBMaxConns         = 20
	DefaultDBMaxConnIdleTime  = 5 * time.Minute
	DefaultDBMaxConnLifetime  = 30 * time.Minute
	DefaultSQLitePath         = "data/spinwheel.db"
	DefaultMessageTimeout     = 5 * time.Second
	DefaultSpinRevealDelay    = time.Second
	DefaultScratchRevealDelay = 1500 * time.Millisecond
	DefaultSessionIdleTTL     = time.Hour
	DefaultJanitorInterval    = 5 * time.Minute
	DefaultDeadLetterPath     = "logs/deadletter.jsonl"
)

// Example values shipped in .env.example
const (
	ExampleDBPassword  = "change_this_secure_password"
	ExampleAdminAPIKey = "generate_with_openssl_rand_hex_32"
)
