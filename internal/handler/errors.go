package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidDraws      = "draws must be a positive integer"
	ErrMsgInvalidImportMode = "mode must be append or replace"

	// Catalog error messages
	ErrMsgImportFailed = "Failed to import prizes"
	ErrMsgExportFailed = "Failed to export catalog"

	// Player error messages
	ErrMsgListPlayersFailed = "Failed to list players"
)

// Success messages for API responses
const (
	MsgLoggedOut        = "Logged out"
	MsgPrizesUpdated    = "Prize catalog updated"
	MsgConfigUpdated    = "Game configuration updated"
	MsgPrizesImported   = "Prizes imported"
	MsgAdminModeEntered = "Admin mode entered"
	MsgAdminModeExited  = "Admin mode exited"
)

// Query parameters and import modes
const (
	QueryParamDraws   = "draws"
	QueryParamMode    = "mode"
	ImportModeAppend  = "append"
	ImportModeReplace = "replace"

	URLParamSessionID = "id"
	URLParamMobile    = "mobile"

	ContentTypeYAML = "application/yaml"

	// MaxImportBytes bounds a CSV upload
	MaxImportBytes = 1 << 20
)
