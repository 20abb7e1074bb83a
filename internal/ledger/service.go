// Package ledger owns player progression: attempts, droplet balance and win history.
package ledger

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/kylasweb/IOC-Spinwheel/internal/claim"
	"github.com/kylasweb/IOC-Spinwheel/internal/concurrency"
	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/event"
	"github.com/kylasweb/IOC-Spinwheel/internal/logger"
	"github.com/kylasweb/IOC-Spinwheel/internal/prize"
	"github.com/kylasweb/IOC-Spinwheel/internal/repository"
)

// Catalog is the slice of the catalog store the ledger reads
type Catalog interface {
	Config() domain.GameConfig
	Reward(id string) (domain.RedeemableReward, error)
}

// Service defines the player ledger operations
type Service interface {
	Register(ctx context.Context, mobile string) (*domain.Profile, error)
	CheckEligible(ctx context.Context, mobile string) (bool, string, error)
	RecordWin(ctx context.Context, mobile string, p domain.Prize) (*domain.WinRecord, error)
	Redeem(ctx context.Context, mobile string, cost int, rewardLabel string) (*domain.WinRecord, error)
	RedeemReward(ctx context.Context, mobile, rewardID string) (*domain.WinRecord, error)
	Profile(ctx context.Context, mobile string) (*domain.Profile, error)
	ListProfiles(ctx context.Context) ([]*domain.Profile, error)
}

type service struct {
	repo      repository.Player
	catalog   Catalog
	codes     *claim.CodeGenerator
	locks     *concurrency.LockManager
	publisher event.Publisher
	now       func() time.Time // Injectable for testing
}

// NewService creates the ledger. locks must be shared with the claim service.
func NewService(repo repository.Player, catalog Catalog, codes *claim.CodeGenerator, locks *concurrency.LockManager, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		catalog:   catalog,
		codes:     codes,
		locks:     locks,
		publisher: publisher,
		now:       time.Now,
	}
}

// Register creates the profile on first login and refreshes activity afterwards
func (s *service) Register(ctx context.Context, mobile string) (*domain.Profile, error) {
	p, err := s.repo.RegisterProfile(ctx, mobile, s.now())
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug(LogMsgPlayerRegistered, "mobile", mobile, "attempts", p.Attempts)
	return p, nil
}

// CheckEligible fails closed: any lookup problem reports ineligible with a reason
func (s *service) CheckEligible(ctx context.Context, mobile string) (bool, string, error) {
	p, err := s.repo.GetProfile(ctx, mobile)
	if err != nil {
		return false, domain.MsgNotRegistered, err
	}

	cfg := s.catalog.Config()
	if !cfg.EnableGame {
		return false, domain.MsgGameDisabled, nil
	}
	if reason, cause := s.eligibility(p, cfg); cause != nil {
		return false, reason, nil
	}
	return true, "", nil
}

// eligibility returns the player-facing reason and the sentinel for the
// first gate that fails, or a nil sentinel when the player may play
func (s *service) eligibility(p *domain.Profile, cfg domain.GameConfig) (string, error) {
	if p.Attempts >= cfg.MaxRetries {
		return fmt.Sprintf(domain.MsgMaxAttemptsFormat, cfg.MaxRetries), domain.ErrAttemptsExceeded
	}
	if cfg.DailyLimit > 0 && playsToday(p, s.now()) >= cfg.DailyLimit {
		return fmt.Sprintf(domain.MsgDailyLimitFormat, cfg.DailyLimit), domain.ErrDailyLimit
	}
	return "", nil
}

// RecordWin counts one completed game and appends its record
func (s *service) RecordWin(ctx context.Context, mobile string, won domain.Prize) (*domain.WinRecord, error) {
	log := logger.FromContext(ctx)

	unlock := s.locks.Lock(mobile)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	p, err := tx.GetProfileForUpdate(ctx, mobile)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cfg := s.catalog.Config()
	if reason, cause := s.eligibility(p, cfg); cause != nil {
		log.Warn(LogMsgWinRejected,
			"mobile", mobile,
			"cause", cause.Error(),
			"attempts", p.Attempts,
			"max", cfg.MaxRetries,
			"daily_plays", playsToday(p, now),
			"daily_limit", cfg.DailyLimit)
		return nil, fmt.Errorf("%w: %s", cause, reason)
	}

	droplets := prize.DropletCount(won)
	p.Attempts++
	p.DropletsBalance += droplets
	rollDaily(p, now)
	p.DailyPlays++
	p.LastActivity = now

	rec := domain.WinRecord{ID: newRecordID(), Prize: won, WonAt: now}
	if err := tx.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	if err := tx.AppendWinRecord(ctx, mobile, rec); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Info(LogMsgWinRecorded,
		"mobile", mobile,
		"prize", won.Label,
		"category", won.Category,
		"droplets", droplets,
		"attempts", p.Attempts)
	s.publish(ctx, event.NewWinRecordedEvent(mobile, rec, droplets, p.Attempts))
	return &rec, nil
}

// Redeem debits cost and appends a synthetic Grand record carrying a RED code.
// It never consumes an attempt.
func (s *service) Redeem(ctx context.Context, mobile string, cost int, rewardLabel string) (*domain.WinRecord, error) {
	if cost <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidCost, cost)
	}

	unlock := s.locks.Lock(mobile)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	p, err := tx.GetProfileForUpdate(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if p.DropletsBalance < cost {
		return nil, fmt.Errorf("%w: "+domain.MsgInsufficientFmt, domain.ErrInsufficientBalance, cost-p.DropletsBalance)
	}

	code, err := s.codes.Generate(ctx, domain.RedemptionCodePrefix)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p.DropletsBalance -= cost
	p.LastActivity = now
	rec := domain.WinRecord{
		ID: newRecordID(),
		Prize: domain.Prize{
			ID:          domain.RedeemPrizeIDPrefix + strconv.FormatInt(now.UnixNano(), 10),
			Label:       rewardLabel,
			Category:    domain.CategoryGrand,
			Color:       RedeemPrizeColor,
			TextColor:   RedeemPrizeTextColor,
			Icon:        RedeemPrizeIcon,
			Value:       strconv.Itoa(cost),
			Description: domain.RedeemPrizeDescription,
		},
		WonAt:     now,
		ClaimCode: code,
	}

	if err := tx.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	if err := tx.AppendWinRecord(ctx, mobile, rec); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgDropletsRedeemed,
		"mobile", mobile,
		"reward", rewardLabel,
		"cost", cost,
		"balance", p.DropletsBalance)
	s.publish(ctx, event.NewDropletsRedeemedEvent(mobile, rec, cost, p.DropletsBalance))
	return &rec, nil
}

// RedeemReward redeems one of the configured rewards by id
func (s *service) RedeemReward(ctx context.Context, mobile, rewardID string) (*domain.WinRecord, error) {
	reward, err := s.catalog.Reward(rewardID)
	if err != nil {
		return nil, err
	}
	return s.Redeem(ctx, mobile, reward.Cost, reward.Label)
}

func (s *service) Profile(ctx context.Context, mobile string) (*domain.Profile, error) {
	return s.repo.GetProfile(ctx, mobile)
}

func (s *service) ListProfiles(ctx context.Context) ([]*domain.Profile, error) {
	return s.repo.ListProfiles(ctx)
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, e)
	}
}

// newRecordID returns a time-ordered id, falling back to a random one
func newRecordID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
