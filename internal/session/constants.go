package session

import "time"

// Session lifetime defaults
const (
	DefaultIdleTTL         = time.Hour
	DefaultJanitorInterval = 5 * time.Minute
	JanitorJobName         = "session-janitor"
)

// Log messages
const (
	LogMsgSessionCreated  = "Session created"
	LogMsgSessionEvicted  = "Idle session evicted"
	LogMsgSessionEnded    = "Session ended"
	LogMsgRevealScheduled = "Reveal scheduled"
	LogMsgRevealCancelled = "Pending reveal cancelled"
	LogMsgRevealFailed    = "Deferred win could not be recorded"
	LogMsgPrizeResolved   = "Prize resolved"
)
