package claim

import (
	"context"
	"fmt"
	"time"

	"github.com/kylasweb/IOC-Spinwheel/internal/concurrency"
	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/event"
	"github.com/kylasweb/IOC-Spinwheel/internal/logger"
	"github.com/kylasweb/IOC-Spinwheel/internal/repository"
)

// Service attaches claim codes to recorded wins
type Service interface {
	AttachClaimCode(ctx context.Context, mobile, recordID string, info domain.PersonalInfo) (string, error)
}

type service struct {
	repo      repository.Player
	codes     *CodeGenerator
	locks     *concurrency.LockManager
	publisher event.Publisher
	now       func() time.Time
}

// NewService shares locks with the ledger so claims and wins on one player serialize
func NewService(repo repository.Player, codes *CodeGenerator, locks *concurrency.LockManager, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		codes:     codes,
		locks:     locks,
		publisher: publisher,
		now:       time.Now,
	}
}

// AttachClaimCode overwrites the player's personal info and sets a new code
// on the matching record. Claiming again replaces both; the latest claim wins.
func (s *service) AttachClaimCode(ctx context.Context, mobile, recordID string, info domain.PersonalInfo) (string, error) {
	log := logger.FromContext(ctx)

	unlock := s.locks.Lock(mobile)
	defer unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return "", err
	}
	defer repository.SafeRollback(ctx, tx)

	profile, err := tx.GetProfileForUpdate(ctx, mobile)
	if err != nil {
		return "", err
	}

	idx := profile.FindRecord(recordID)
	if idx < 0 {
		return "", fmt.Errorf("%w: %s", domain.ErrWinRecordNotFound, recordID)
	}
	record := profile.History[idx]
	if !record.Prize.Category.Claimable() {
		return "", fmt.Errorf("%w: %s", domain.ErrNotClaimable, record.Prize.Label)
	}

	code, err := s.codes.Generate(ctx, domain.ClaimCodePrefix)
	if err != nil {
		return "", err
	}

	profile.ApplyPersonalInfo(info)
	profile.LastActivity = s.now()
	if err := tx.SaveProfile(ctx, profile); err != nil {
		return "", err
	}
	if err := tx.SetClaimCode(ctx, mobile, recordID, code); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}

	if record.ClaimCode != "" {
		log.Info("Claim code replaced", "mobile", mobile, "record_id", recordID)
	}
	log.Info("Claim code attached", "mobile", mobile, "record_id", recordID, "prize", record.Prize.Label)

	record.ClaimCode = code
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewClaimAttachedEvent(mobile, record))
	}
	return code, nil
}
