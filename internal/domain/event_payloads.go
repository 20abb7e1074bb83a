package domain

// WinRecordedPayload fires after RecordWin succeeds
type WinRecordedPayload struct {
	Mobile    string   `json:"mobile"`
	RecordID  string   `json:"record_id"`
	PrizeID   string   `json:"prize_id"`
	Category  Category `json:"category"`
	Droplets  int      `json:"droplets"`
	Attempts  int      `json:"attempts"`
	Timestamp int64    `json:"timestamp"`
}

// DropletsRedeemedPayload fires after a successful redemption
type DropletsRedeemedPayload struct {
	Mobile      string `json:"mobile"`
	RecordID    string `json:"record_id"`
	RewardLabel string `json:"reward_label"`
	Cost        int    `json:"cost"`
	Balance     int    `json:"balance"`
	Timestamp   int64  `json:"timestamp"`
}

// ClaimAttachedPayload fires when a claim code is attached
type ClaimAttachedPayload struct {
	Mobile    string   `json:"mobile"`
	RecordID  string   `json:"record_id"`
	Category  Category `json:"category"`
	Timestamp int64    `json:"timestamp"`
}

// CatalogUpdatedPayload fires after the prize list or config changes
type CatalogUpdatedPayload struct {
	PrizeCount int   `json:"prize_count"`
	Odds       Odds  `json:"odds"`
	Timestamp  int64 `json:"timestamp"`
}

// SessionEvictedPayload fires when an idle session is dropped
type SessionEvictedPayload struct {
	SessionID string `json:"session_id"`
	Mobile    string `json:"mobile"`
	Timestamp int64  `json:"timestamp"`
}
