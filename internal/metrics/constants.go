package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric
const Namespace = "spinwheel"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameGamesPlayed       = "games_played_total"
	MetricNameDropletsAwarded   = "droplets_awarded_total"
	MetricNameDropletsRedeemed  = "droplets_redeemed_total"
	MetricNameRedemptions       = "redemptions_total"
	MetricNameClaimsAttached    = "claims_attached_total"
	MetricNameSessionsEvicted   = "sessions_evicted_total"
	MetricNameSessionsActive    = "sessions_active"
	MetricNameCatalogPrizeCount = "catalog_prizes"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextGamesPlayed       = "Total number of completed games by outcome category"
	HelpTextDropletsAwarded   = "Total fuel droplets credited to players"
	HelpTextDropletsRedeemed  = "Total fuel droplets spent on rewards"
	HelpTextRedemptions       = "Total number of droplet redemptions by reward"
	HelpTextClaimsAttached    = "Total number of claim codes attached by category"
	HelpTextSessionsEvicted   = "Total number of idle sessions evicted"
	HelpTextSessionsActive    = "Current number of live sessions"
	HelpTextCatalogPrizeCount = "Number of prizes in the catalog"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelCategory = "category"
	LabelReward   = "reward"
)

// UnmatchedRoute labels requests chi could not route
const UnmatchedRoute = "unmatched"

// SessionGaugeJobName names the sampling job on the worker pool
const SessionGaugeJobName = "session-gauge"

// HTTPLatencyBuckets ranges from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecode = "Event payload could not be decoded"
	LogMsgMetricsRecorded    = "Metrics recorded for event"
)
