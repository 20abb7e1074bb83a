package bootstrap

// File system permissions
const (
	DirPermission     = 0755
	LogFilePermission = 0666
)

// Logger file output
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	// LogFileRetentionCount is how many old log files survive a restart
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting IOC spin-wheel"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
)

// Catalog and storage messages
const (
	LogMsgCatalogLoaded     = "Prize catalog loaded"
	LogMsgStorageReady      = "Player storage ready"
	ErrMsgFailedLoadCatalog = "failed to load catalog"
	ErrMsgInvalidCatalog    = "invalid catalog"
	ErrMsgFailedConnectDB   = "failed to connect to database"
	ErrMsgFailedMigrate     = "failed to apply migrations"
	CatalogSourceBuiltin    = "builtin"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgBackgroundJobsStopped      = "Background jobs stopped"
	LogMsgSessionsClosed             = "Sessions closed"
)
