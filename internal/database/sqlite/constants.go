package sqlite

// DriverName is the database/sql name registered by modernc.org/sqlite
const DriverName = "sqlite"

// DirPermission is used when creating the database directory
const DirPermission = 0755

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA busy_timeout=5000",
}

const (
	profileColumns = `mobile, name, email, vehicle_number, attempts, droplets_balance,
		daily_plays, daily_plays_date, created_at, last_activity`
)

// Messages
const (
	ErrMsgFailedToOpen    = "failed to open sqlite database"
	ErrMsgFailedPragma    = "failed to apply pragma"
	ErrMsgFailedToMigrate = "failed to apply sqlite migrations"
	LogMsgOpened          = "SQLite ledger opened"
	LogMsgCloseFailed     = "Failed to close sqlite database"
)
