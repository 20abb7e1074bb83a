package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and writes the mapped user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", "error", err)
	} else {
		log.Warn(op+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgAuthFailedError      = "Authentication failed. Please check your API key."
	ErrMsgTooManyRequestsError = "Too many requests. Please try again later."

	ErrMsgPlayerNotFoundError    = "Player not found. Please log in first."
	ErrMsgSessionNotFoundError   = "Session not found. Please log in again."
	ErrMsgRewardNotFoundError    = "Reward not found"
	ErrMsgPrizeNotFoundError     = "Prize not found"
	ErrMsgWinRecordNotFoundError = "Win not found"
	ErrMsgInvalidMobileError     = "Please enter a valid mobile number"
	ErrMsgGameDisabledError      = domain.MsgGameDisabled
	ErrMsgInvalidTransitionError = "That action is not available right now"
	ErrMsgNotClaimableError      = "This prize cannot be claimed"
	ErrMsgCodeExhaustedError     = "Could not issue a code. Please try again."
	ErrMsgEmptyCatalogError      = "Prize catalog cannot be empty"
)

// mapServiceErrorToUserMessage converts domain errors to HTTP status codes
// and messages users can act upon. Errors whose detail is meant for the
// player, like the ineligibility reason, carry that detail through.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidMobile):
		return http.StatusBadRequest, ErrMsgInvalidMobileError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusPaymentRequired, detail(err, domain.ErrInsufficientBalance)
	case errors.Is(err, domain.ErrInvalidOdds),
		errors.Is(err, domain.ErrInvalidConfig),
		errors.Is(err, domain.ErrInvalidPrize),
		errors.Is(err, domain.ErrInvalidCost),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrEmptyCatalog):
		return http.StatusBadRequest, ErrMsgEmptyCatalogError
	case errors.Is(err, domain.ErrNotEligible):
		return http.StatusForbidden, detail(err, domain.ErrNotEligible)
	case errors.Is(err, domain.ErrAttemptsExceeded):
		return http.StatusForbidden, detail(err, domain.ErrAttemptsExceeded)
	case errors.Is(err, domain.ErrDailyLimit):
		return http.StatusForbidden, detail(err, domain.ErrDailyLimit)
	case errors.Is(err, domain.ErrNotClaimable):
		return http.StatusForbidden, ErrMsgNotClaimableError
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound, ErrMsgPlayerNotFoundError
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundError
	case errors.Is(err, domain.ErrRewardNotFound):
		return http.StatusNotFound, ErrMsgRewardNotFoundError
	case errors.Is(err, domain.ErrPrizeNotFound):
		return http.StatusNotFound, ErrMsgPrizeNotFoundError
	case errors.Is(err, domain.ErrWinRecordNotFound):
		return http.StatusNotFound, ErrMsgWinRecordNotFoundError
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, ErrMsgInvalidTransitionError
	case errors.Is(err, domain.ErrGameDisabled):
		return http.StatusServiceUnavailable, ErrMsgGameDisabledError
	case errors.Is(err, domain.ErrCodeExhausted):
		return http.StatusServiceUnavailable, ErrMsgCodeExhaustedError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// detail strips the sentinel prefix from a wrapped error so the player sees
// only the reason. A bare sentinel yields its own message.
func detail(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()+": "); i >= 0 {
		return msg[i+len(sentinel.Error())+2:]
	}
	return sentinel.Error()
}
