package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Column lists shared by the queries
const (
	profileColumns = `mobile, name, email, vehicle_number, attempts, droplets_balance,
		daily_plays, daily_plays_date, created_at, last_activity`
)
