// Package session sequences login, play and result for one player at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/logger"
	"github.com/kylasweb/IOC-Spinwheel/internal/message"
	"github.com/kylasweb/IOC-Spinwheel/internal/prize"
)

// Ledger is the subset of the player ledger a session drives
type Ledger interface {
	Register(ctx context.Context, mobile string) (*domain.Profile, error)
	CheckEligible(ctx context.Context, mobile string) (bool, string, error)
	RecordWin(ctx context.Context, mobile string, p domain.Prize) (*domain.WinRecord, error)
	RedeemReward(ctx context.Context, mobile, rewardID string) (*domain.WinRecord, error)
}

// Claims attaches claim codes to wins
type Claims interface {
	AttachClaimCode(ctx context.Context, mobile, recordID string, info domain.PersonalInfo) (string, error)
}

// Catalog supplies the live config and prize list
type Catalog interface {
	Config() domain.GameConfig
	Snapshot() (domain.Odds, []domain.Prize)
}

// Dependencies are shared by every session of a Manager
type Dependencies struct {
	Ledger       Ledger
	Claims       Claims
	Catalog      Catalog
	Messages     message.Generator
	RNG          prize.RandomSource
	SpinDelay    time.Duration
	ScratchDelay time.Duration
}

// Controller owns the state machine of one session. All methods are safe
// for concurrent use.
type Controller struct {
	mu   sync.Mutex
	id   string
	deps Dependencies
	now  func() time.Time

	state          domain.GameState
	mode           domain.GameMode
	mobile         string
	prize          *domain.Prize
	winID          string
	message        string
	messagePending bool
	lastError      string
	redemptionCode string
	lastActivity   time.Time

	// generation invalidates deferred callbacks; a callback only acts if
	// the generation it captured is still current
	generation uint64
	timer      *time.Timer
}

func newController(id string, deps Dependencies, now func() time.Time) *Controller {
	if deps.SpinDelay <= 0 {
		deps.SpinDelay = domain.DefaultSpinRevealDelay
	}
	if deps.ScratchDelay <= 0 {
		deps.ScratchDelay = domain.DefaultScratchRevealDelay
	}
	if deps.RNG == nil {
		deps.RNG = prize.DefaultRNG()
	}
	return &Controller{
		id:           id,
		deps:         deps,
		now:          now,
		state:        domain.StateWelcome,
		lastActivity: now(),
	}
}

// ID returns the session id
func (c *Controller) ID() string { return c.id }

// Login moves WELCOME to DASHBOARD for a valid mobile while the game is enabled
func (c *Controller) Login(ctx context.Context, mobile string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.state != domain.StateWelcome {
		return c.transitionErr("login")
	}
	if !domain.ValidMobile(mobile) {
		c.lastError = domain.MsgInvalidMobile
		return fmt.Errorf("%w: %q", domain.ErrInvalidMobile, mobile)
	}
	if !c.deps.Catalog.Config().EnableGame {
		c.lastError = domain.MsgGameDisabled
		return domain.ErrGameDisabled
	}

	if _, err := c.deps.Ledger.Register(ctx, mobile); err != nil {
		return err
	}
	c.mobile = mobile
	c.state = domain.StateDashboard
	c.lastError = ""
	return nil
}

// StartSpin enters SPINNING without resolving a prize
func (c *Controller) StartSpin(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.state != domain.StateDashboard {
		return c.transitionErr("start spin")
	}
	if err := c.checkEligibleLocked(ctx); err != nil {
		return err
	}
	c.clearRoundLocked()
	c.state = domain.StateSpinning
	c.mode = domain.ModeSpin
	return nil
}

// RequestResolution resolves the wheel's prize. Within one round it always
// returns the same prize.
func (c *Controller) RequestResolution(ctx context.Context) (domain.Prize, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.state != domain.StateSpinning {
		return domain.Prize{}, c.transitionErr("resolve")
	}
	if c.prize == nil {
		c.resolveLocked(ctx)
	}
	return *c.prize, nil
}

// CompleteSpin reports the wheel stopped on prizeID and schedules the win
func (c *Controller) CompleteSpin(ctx context.Context, prizeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.state != domain.StateSpinning || c.prize == nil {
		return c.transitionErr("complete spin")
	}
	if prizeID != "" && prizeID != c.prize.ID {
		return fmt.Errorf("%w: wheel stopped on %s, resolved %s", domain.ErrInvalidInput, prizeID, c.prize.ID)
	}
	c.scheduleLocked(ctx, c.deps.SpinDelay)
	return nil
}

// StartScratch enters SCRATCHING and resolves the prize immediately
func (c *Controller) StartScratch(ctx context.Context) (domain.Prize, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.state != domain.StateDashboard {
		return domain.Prize{}, c.transitionErr("start scratch")
	}
	if err := c.checkEligibleLocked(ctx); err != nil {
		return domain.Prize{}, err
	}
	c.clearRoundLocked()
	c.resolveLocked(ctx)
	c.state = domain.StateScratching
	c.mode = domain.ModeScratch
	return *c.prize, nil
}

// RevealThreshold reports the scratched share of the card. Crossing the
// threshold schedules the win; reporting again restarts the delay.
func (c *Controller) RevealThreshold(ctx context.Context, percent int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.state != domain.StateScratching {
		return c.transitionErr("reveal")
	}
	if percent < domain.ScratchRevealThreshold || percent > 100 {
		return fmt.Errorf("%w: reveal percent %d below threshold %d", domain.ErrInvalidInput, percent, domain.ScratchRevealThreshold)
	}
	c.scheduleLocked(ctx, c.deps.ScratchDelay)
	return nil
}

// ReloadScratch cancels a pending reveal and keeps the resolved prize
func (c *Controller) ReloadScratch(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.state != domain.StateScratching {
		return c.transitionErr("reload")
	}
	c.cancelPendingLocked(ctx)
	return nil
}

// Reset returns to DASHBOARD and cancels any pending win
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.mobile == "" || c.state == domain.StateAdmin {
		return c.transitionErr("reset")
	}
	c.cancelPendingLocked(ctx)
	c.clearRoundLocked()
	c.state = domain.StateDashboard
	return nil
}

// Logout returns to WELCOME, cancels any pending win and forgets the player
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()
	c.logoutLocked(ctx)
}

// EnterAdmin opens the admin branch from the dashboard
func (c *Controller) EnterAdmin(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.state != domain.StateDashboard {
		return c.transitionErr("enter admin")
	}
	c.state = domain.StateAdmin
	return nil
}

// ExitAdmin leaves the admin branch to WELCOME
func (c *Controller) ExitAdmin(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.state != domain.StateAdmin {
		return c.transitionErr("exit admin")
	}
	c.logoutLocked(ctx)
	return nil
}

// Claim attaches a claim code to the current result
func (c *Controller) Claim(ctx context.Context, info domain.PersonalInfo) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.state != domain.StateResult || c.winID == "" {
		return "", c.transitionErr("claim")
	}
	code, err := c.deps.Claims.AttachClaimCode(ctx, c.mobile, c.winID, info)
	if err != nil {
		return "", err
	}
	c.redemptionCode = code
	return code, nil
}

// Redeem exchanges droplets for a configured reward from the dashboard
func (c *Controller) Redeem(ctx context.Context, rewardID string) (*domain.WinRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touchLocked()

	if c.state != domain.StateDashboard {
		return nil, c.transitionErr("redeem")
	}
	rec, err := c.deps.Ledger.RedeemReward(ctx, c.mobile, rewardID)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			c.lastError = err.Error()
		}
		return nil, err
	}
	c.redemptionCode = rec.ClaimCode
	c.lastError = ""
	return rec, nil
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		SessionID:      c.id,
		State:          c.state,
		Mode:           c.mode,
		Mobile:         c.mobile,
		WinID:          c.winID,
		Message:        c.message,
		MessagePending: c.messagePending,
		RevealPending:  c.timer != nil,
		Error:          c.lastError,
		RedemptionCode: c.redemptionCode,
	}
	if c.prize != nil {
		p := *c.prize
		v.Prize = &p
	}
	return v
}

// Mobile returns the logged-in player, empty when logged out
func (c *Controller) Mobile() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mobile
}

// LastActivity reports when the session was last used
func (c *Controller) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActivity
}

// Close cancels pending callbacks. The session is unusable afterwards.
func (c *Controller) Close(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logoutLocked(ctx)
}

func (c *Controller) touchLocked() {
	c.lastActivity = c.now()
}

func (c *Controller) transitionErr(op string) error {
	return fmt.Errorf("%w: cannot %s from %s", domain.ErrInvalidTransition, op, c.state)
}

func (c *Controller) checkEligibleLocked(ctx context.Context) error {
	ok, reason, err := c.deps.Ledger.CheckEligible(ctx, c.mobile)
	if err != nil {
		c.lastError = reason
		return err
	}
	if !ok {
		c.lastError = reason
		if reason == domain.MsgGameDisabled {
			return domain.ErrGameDisabled
		}
		return fmt.Errorf("%w: %s", domain.ErrNotEligible, reason)
	}
	c.lastError = ""
	return nil
}

func (c *Controller) resolveLocked(ctx context.Context) {
	odds, prizes := c.deps.Catalog.Snapshot()
	p := prize.Resolve(odds, prizes, c.deps.RNG)
	c.prize = &p
	logger.FromContext(ctx).Debug(LogMsgPrizeResolved, "session_id", c.id, "prize", p.Label, "category", p.Category)
}

func (c *Controller) clearRoundLocked() {
	c.prize = nil
	c.winID = ""
	c.message = ""
	c.messagePending = false
	c.redemptionCode = ""
	c.mode = ""
}

func (c *Controller) logoutLocked(ctx context.Context) {
	c.cancelPendingLocked(ctx)
	c.clearRoundLocked()
	c.mobile = ""
	c.lastError = ""
	c.state = domain.StateWelcome
}

// cancelPendingLocked bumps the generation so no earlier callback can act
func (c *Controller) cancelPendingLocked(ctx context.Context) {
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
		logger.FromContext(ctx).Debug(LogMsgRevealCancelled, "session_id", c.id)
	}
}

func (c *Controller) scheduleLocked(ctx context.Context, delay time.Duration) {
	c.cancelPendingLocked(ctx)
	gen := c.generation
	won := *c.prize
	bg := context.WithoutCancel(ctx)
	c.timer = time.AfterFunc(delay, func() { c.fire(bg, gen, won) })
	logger.FromContext(ctx).Debug(LogMsgRevealScheduled, "session_id", c.id, "delay", delay)
}

// fire records the deferred win. The generation check and RecordWin happen
// under one lock hold, so a cancel either precedes the check or waits for it.
func (c *Controller) fire(ctx context.Context, gen uint64, won domain.Prize) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}
	c.timer = nil
	if c.state != domain.StateSpinning && c.state != domain.StateScratching {
		return
	}

	rec, err := c.deps.Ledger.RecordWin(ctx, c.mobile, won)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgRevealFailed, "session_id", c.id, "mobile", c.mobile, "error", err)
		c.clearRoundLocked()
		c.lastError = err.Error()
		c.state = domain.StateDashboard
		return
	}

	c.state = domain.StateResult
	c.winID = rec.ID
	if won.Category == domain.CategoryTryAgain {
		return
	}

	c.messagePending = true
	label := won.DisplayValue()
	go c.deliverMessage(ctx, c.generation, rec.ID, label)
}

func (c *Controller) deliverMessage(ctx context.Context, gen uint64, winID, label string) {
	msg, err := c.deps.Messages.Generate(ctx, label)
	if err != nil {
		msg = fmt.Sprintf(message.FallbackErrorFormat, label)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.winID != winID {
		return
	}
	c.message = msg
	c.messagePending = false
}
