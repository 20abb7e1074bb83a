package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/logger"
	"github.com/kylasweb/IOC-Spinwheel/internal/session"
)

// SessionStore is the part of session.Manager the HTTP layer drives
type SessionStore interface {
	Login(ctx context.Context, mobile string) (*session.Controller, error)
	Get(id string) (*session.Controller, error)
	End(ctx context.Context, id string)
}

// ProfileReader exposes ledger reads
type ProfileReader interface {
	Profile(ctx context.Context, mobile string) (*domain.Profile, error)
}

// ConfigReader exposes the live game configuration
type ConfigReader interface {
	Config() domain.GameConfig
}

// SessionHandler serves the player-facing game flow
type SessionHandler struct {
	sessions SessionStore
	profiles ProfileReader
	config   ConfigReader
}

// NewSessionHandler wires the player endpoints
func NewSessionHandler(sessions SessionStore, profiles ProfileReader, config ConfigReader) *SessionHandler {
	return &SessionHandler{sessions: sessions, profiles: profiles, config: config}
}

// LoginRequest starts a session
type LoginRequest struct {
	Mobile string `json:"mobile" validate:"required,mobile"`
}

// CompleteSpinRequest confirms the wheel stopped on the resolved prize
type CompleteSpinRequest struct {
	PrizeID string `json:"prize_id" validate:"omitempty,max=64"`
}

// RevealRequest reports how much of the card has been scratched
type RevealRequest struct {
	Percent int `json:"percent" validate:"min=0,max=100"`
}

// ClaimRequest carries the personal details collected on claim
type ClaimRequest struct {
	Name          string `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Email         string `json:"email" validate:"required,email,max=254"`
	VehicleNumber string `json:"vehicle_number" validate:"required,max=20,excludesall=\x00\n\r\t"`
}

// RedeemRequest names the reward to buy with droplets
type RedeemRequest struct {
	RewardID string `json:"reward_id" validate:"required,max=64"`
}

// SessionResponse is the session view enriched with ledger counters
type SessionResponse struct {
	session.View
	Attempts        int `json:"attempts"`
	MaxAttempts     int `json:"max_attempts"`
	DropletsBalance int `json:"droplets_balance"`
}

// ClaimResponse returns the issued claim code
type ClaimResponse struct {
	ClaimCode string          `json:"claim_code"`
	Session   SessionResponse `json:"session"`
}

// RedeemResponse returns the redemption record and its code
type RedeemResponse struct {
	Record  *domain.WinRecord `json:"record"`
	Session SessionResponse   `json:"session"`
}

// HistoryResponse lists a player's wins, oldest first
type HistoryResponse struct {
	Mobile  string             `json:"mobile"`
	History []domain.WinRecord `json:"history"`
}

// HandleLogin creates a session for a mobile number
func (h *SessionHandler) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
			return
		}

		c, err := h.sessions.Login(r.Context(), req.Mobile)
		if err != nil {
			respondServiceError(w, r, "Login", err)
			return
		}

		logger.FromContext(r.Context()).Info("Session started", "session_id", c.ID())
		respondJSON(w, http.StatusCreated, h.view(r.Context(), c))
	}
}

// HandleGetSession returns the current view, used for polling the message
func (h *SessionHandler) HandleGetSession() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, c *session.Controller) {
		respondJSON(w, http.StatusOK, h.view(r.Context(), c))
	})
}

// HandleStartSpin begins spin mode
func (h *SessionHandler) HandleStartSpin() http.HandlerFunc {
	return h.action("Start spin", func(ctx context.Context, c *session.Controller) error {
		return c.StartSpin(ctx)
	})
}

// HandleResolveSpin picks the prize the wheel will stop on
func (h *SessionHandler) HandleResolveSpin() http.HandlerFunc {
	return h.action("Resolve spin", func(ctx context.Context, c *session.Controller) error {
		_, err := c.RequestResolution(ctx)
		return err
	})
}

// HandleCompleteSpin records the resolved prize once the wheel stops
func (h *SessionHandler) HandleCompleteSpin() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, c *session.Controller) {
		var req CompleteSpinRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Complete spin"); err != nil {
			return
		}
		if err := c.CompleteSpin(r.Context(), req.PrizeID); err != nil {
			respondServiceError(w, r, "Complete spin", err)
			return
		}
		respondJSON(w, http.StatusOK, h.view(r.Context(), c))
	})
}

// HandleStartScratch begins scratch mode with a freshly resolved prize
func (h *SessionHandler) HandleStartScratch() http.HandlerFunc {
	return h.action("Start scratch", func(ctx context.Context, c *session.Controller) error {
		_, err := c.StartScratch(ctx)
		return err
	})
}

// HandleReveal reports the scratched percentage
func (h *SessionHandler) HandleReveal() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, c *session.Controller) {
		var req RevealRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Reveal"); err != nil {
			return
		}
		if err := c.RevealThreshold(r.Context(), req.Percent); err != nil {
			respondServiceError(w, r, "Reveal", err)
			return
		}
		respondJSON(w, http.StatusOK, h.view(r.Context(), c))
	})
}

// HandleReloadScratch redraws the card and cancels a pending reveal
func (h *SessionHandler) HandleReloadScratch() http.HandlerFunc {
	return h.action("Reload scratch", func(ctx context.Context, c *session.Controller) error {
		return c.ReloadScratch(ctx)
	})
}

// HandleReset returns to the dashboard
func (h *SessionHandler) HandleReset() http.HandlerFunc {
	return h.action("Reset", func(ctx context.Context, c *session.Controller) error {
		return c.Reset(ctx)
	})
}

// HandleLogout returns the kiosk to the welcome screen and ends the session
func (h *SessionHandler) HandleLogout() http.HandlerFunc {
	return h.action("Logout", func(ctx context.Context, c *session.Controller) error {
		c.Logout(ctx)
		h.sessions.End(ctx, c.ID())
		return nil
	})
}

// HandleClaim attaches personal details to the current win
func (h *SessionHandler) HandleClaim() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, c *session.Controller) {
		var req ClaimRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim"); err != nil {
			return
		}
		code, err := c.Claim(r.Context(), domain.PersonalInfo{
			Name:          req.Name,
			Email:         req.Email,
			VehicleNumber: req.VehicleNumber,
		})
		if err != nil {
			respondServiceError(w, r, "Claim", err)
			return
		}
		respondJSON(w, http.StatusOK, ClaimResponse{ClaimCode: code, Session: h.view(r.Context(), c)})
	})
}

// HandleRedeem exchanges droplets for a catalog reward
func (h *SessionHandler) HandleRedeem() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, c *session.Controller) {
		var req RedeemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Redeem"); err != nil {
			return
		}
		rec, err := c.Redeem(r.Context(), req.RewardID)
		if err != nil {
			respondServiceError(w, r, "Redeem", err)
			return
		}
		respondJSON(w, http.StatusOK, RedeemResponse{Record: rec, Session: h.view(r.Context(), c)})
	})
}

// HandleHistory lists the logged-in player's wins
func (h *SessionHandler) HandleHistory() http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, c *session.Controller) {
		mobile := c.Mobile()
		if mobile == "" {
			respondServiceError(w, r, "History", domain.ErrPlayerNotFound)
			return
		}
		p, err := h.profiles.Profile(r.Context(), mobile)
		if err != nil {
			respondServiceError(w, r, "History", err)
			return
		}
		history := p.History
		if history == nil {
			history = []domain.WinRecord{}
		}
		respondJSON(w, http.StatusOK, HistoryResponse{Mobile: mobile, History: history})
	})
}

// HandleEnterAdmin switches the kiosk session into the admin branch
func (h *SessionHandler) HandleEnterAdmin() http.HandlerFunc {
	return h.action("Enter admin", func(ctx context.Context, c *session.Controller) error {
		return c.EnterAdmin(ctx)
	})
}

// HandleExitAdmin leaves the admin branch and ends the session
func (h *SessionHandler) HandleExitAdmin() http.HandlerFunc {
	return h.action("Exit admin", func(ctx context.Context, c *session.Controller) error {
		if err := c.ExitAdmin(ctx); err != nil {
			return err
		}
		h.sessions.End(ctx, c.ID())
		return nil
	})
}

type sessionFunc func(w http.ResponseWriter, r *http.Request, c *session.Controller)

// withSession resolves the {id} path parameter before calling fn
func (h *SessionHandler) withSession(fn sessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := h.sessions.Get(chi.URLParam(r, URLParamSessionID))
		if err != nil {
			respondServiceError(w, r, "Session lookup", err)
			return
		}
		fn(w, r, c)
	}
}

// action is the shape of every bodiless transition: run it, then render
func (h *SessionHandler) action(op string, fn func(context.Context, *session.Controller) error) http.HandlerFunc {
	return h.withSession(func(w http.ResponseWriter, r *http.Request, c *session.Controller) {
		if err := fn(r.Context(), c); err != nil {
			respondServiceError(w, r, op, err)
			return
		}
		respondJSON(w, http.StatusOK, h.view(r.Context(), c))
	})
}

func (h *SessionHandler) view(ctx context.Context, c *session.Controller) SessionResponse {
	resp := SessionResponse{
		View:        c.Snapshot(),
		MaxAttempts: h.config.Config().MaxRetries,
	}
	if resp.Mobile == "" {
		return resp
	}
	p, err := h.profiles.Profile(ctx, resp.Mobile)
	if err != nil {
		logger.FromContext(ctx).Warn("Profile lookup for session view failed", "error", err)
		return resp
	}
	resp.Attempts = p.Attempts
	resp.DropletsBalance = p.DropletsBalance
	return resp
}
