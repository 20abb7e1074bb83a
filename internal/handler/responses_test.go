package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"invalid mobile", fmt.Errorf("%w: %q", domain.ErrInvalidMobile, "x"), http.StatusBadRequest, ErrMsgInvalidMobileError},
		{
			"ineligible carries reason",
			fmt.Errorf("%w: %s", domain.ErrNotEligible, fmt.Sprintf(domain.MsgMaxAttemptsFormat, 3)),
			http.StatusForbidden, "You have reached the maximum limit of 3 attempts.",
		},
		{"attempts exceeded", fmt.Errorf("%w: today", domain.ErrAttemptsExceeded), http.StatusForbidden, "today"},
		{
			"daily limit carries reason",
			fmt.Errorf("%w: "+domain.MsgDailyLimitFormat, domain.ErrDailyLimit, 2),
			http.StatusForbidden, "You have reached today's limit of 2 games. Come back tomorrow!",
		},
		{
			"insufficient balance carries shortfall",
			fmt.Errorf("%w: "+domain.MsgInsufficientFmt, domain.ErrInsufficientBalance, 25),
			http.StatusPaymentRequired, "Insufficient droplets! You need 25 more.",
		},
		{"bare sentinel", domain.ErrInsufficientBalance, http.StatusPaymentRequired, domain.ErrMsgInsufficientBalance},
		{"odds", fmt.Errorf("%w: odds must sum to 100%%, current sum: 90%%", domain.ErrInvalidOdds), http.StatusBadRequest, "invalid odds: odds must sum to 100%, current sum: 90%"},
		{"empty catalog", domain.ErrEmptyCatalog, http.StatusBadRequest, ErrMsgEmptyCatalogError},
		{"player not found", fmt.Errorf("%w: 9", domain.ErrPlayerNotFound), http.StatusNotFound, ErrMsgPlayerNotFoundError},
		{"session not found", domain.ErrSessionNotFound, http.StatusNotFound, ErrMsgSessionNotFoundError},
		{"transition", fmt.Errorf("%w: cannot spin", domain.ErrInvalidTransition), http.StatusConflict, ErrMsgInvalidTransitionError},
		{"disabled", domain.ErrGameDisabled, http.StatusServiceUnavailable, domain.MsgGameDisabled},
		{"not claimable", domain.ErrNotClaimable, http.StatusForbidden, ErrMsgNotClaimableError},
		{"database errors stay internal", fmt.Errorf("%w: pq: relation missing", domain.ErrDatabase), http.StatusInternalServerError, ErrMsgGenericServerError},
		{"unknown errors stay internal", assert.AnError, http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
