package domain

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action>
const (
	// EventTypeWinRecorded is published after a game outcome is written to the ledger
	EventTypeWinRecorded = "win.recorded"

	// EventTypeDropletsRedeemed is published after droplets are exchanged for a reward
	EventTypeDropletsRedeemed = "droplets.redeemed"

	// EventTypeClaimAttached is published when a claim code is attached to a win
	EventTypeClaimAttached = "claim.attached"

	// EventTypeCatalogUpdated is published when the prize list changes
	EventTypeCatalogUpdated = "catalog.updated"

	// EventTypeConfigUpdated is published when the game configuration changes
	EventTypeConfigUpdated = "config.updated"

	// EventTypeSessionEvicted is published when the janitor drops an idle session
	EventTypeSessionEvicted = "session.evicted"
)
