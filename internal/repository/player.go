package repository

import (
	"context"
	"time"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
)

// Player defines the interface for player ledger persistence
type Player interface {
	// RegisterProfile creates a zeroed profile or refreshes LastActivity on an existing one
	RegisterProfile(ctx context.Context, mobile string, at time.Time) (*domain.Profile, error)
	GetProfile(ctx context.Context, mobile string) (*domain.Profile, error)
	ListProfiles(ctx context.Context) ([]*domain.Profile, error)

	BeginTx(ctx context.Context) (PlayerTx, error)
}

// PlayerTx is a read-modify-write unit over one or more profiles
type PlayerTx interface {
	Tx
	GetProfileForUpdate(ctx context.Context, mobile string) (*domain.Profile, error)
	// SaveProfile writes counters, balance, daily tracking and personal info. History is not touched.
	SaveProfile(ctx context.Context, profile *domain.Profile) error
	AppendWinRecord(ctx context.Context, mobile string, record domain.WinRecord) error
	SetClaimCode(ctx context.Context, mobile, recordID, code string) error
}

// CodeRegistry remembers every issued claim and redemption code
type CodeRegistry interface {
	// ReserveCode returns false when the code was issued before
	ReserveCode(ctx context.Context, code string) (bool, error)
}
