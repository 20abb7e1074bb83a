package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Player errors
	ErrMsgPlayerNotFound   = "player not found"
	ErrMsgInvalidMobile    = "invalid mobile number"
	ErrMsgNotEligible      = "player is not eligible to play"
	ErrMsgAttemptsExceeded = "attempts exhausted"
	ErrMsgDailyLimit       = "daily play limit reached"

	// Ledger errors
	ErrMsgInsufficientBalance = "insufficient droplets"
	ErrMsgInvalidCost         = "redemption cost must be positive"
	ErrMsgRewardNotFound      = "reward not found"

	// Claim errors
	ErrMsgWinRecordNotFound = "win record not found"
	ErrMsgNotClaimable      = "prize is not claimable"
	ErrMsgCodeExhausted     = "could not generate a unique code"

	// Catalog/config errors
	ErrMsgInvalidOdds   = "invalid odds"
	ErrMsgInvalidConfig = "invalid game configuration"
	ErrMsgEmptyCatalog  = "prize catalog cannot be empty"
	ErrMsgInvalidPrize  = "invalid prize"
	ErrMsgPrizeNotFound = "prize not found"

	// Session errors
	ErrMsgGameDisabled      = "game is disabled"
	ErrMsgSessionNotFound   = "session not found"
	ErrMsgInvalidTransition = "invalid state transition"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Player errors
	ErrPlayerNotFound   = errors.New(ErrMsgPlayerNotFound)
	ErrInvalidMobile    = errors.New(ErrMsgInvalidMobile)
	ErrNotEligible      = errors.New(ErrMsgNotEligible)
	ErrAttemptsExceeded = errors.New(ErrMsgAttemptsExceeded)
	ErrDailyLimit       = errors.New(ErrMsgDailyLimit)

	// Ledger errors
	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)
	ErrInvalidCost         = errors.New(ErrMsgInvalidCost)
	ErrRewardNotFound      = errors.New(ErrMsgRewardNotFound)

	// Claim errors
	ErrWinRecordNotFound = errors.New(ErrMsgWinRecordNotFound)
	ErrNotClaimable      = errors.New(ErrMsgNotClaimable)
	ErrCodeExhausted     = errors.New(ErrMsgCodeExhausted)

	// Catalog/config errors
	ErrInvalidOdds   = errors.New(ErrMsgInvalidOdds)
	ErrInvalidConfig = errors.New(ErrMsgInvalidConfig)
	ErrEmptyCatalog  = errors.New(ErrMsgEmptyCatalog)
	ErrInvalidPrize  = errors.New(ErrMsgInvalidPrize)
	ErrPrizeNotFound = errors.New(ErrMsgPrizeNotFound)

	// Session errors
	ErrGameDisabled      = errors.New(ErrMsgGameDisabled)
	ErrSessionNotFound   = errors.New(ErrMsgSessionNotFound)
	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)

	// Database/System errors
	ErrDatabase = errors.New(ErrMsgDatabaseError)
	ErrTxClosed = errors.New(ErrMsgTxClosed)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
