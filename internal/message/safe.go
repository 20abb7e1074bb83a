package message

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kylasweb/IOC-Spinwheel/internal/logger"
)

// Safe never fails: it bounds the inner generator by a timeout and falls
// back to fixed text. Every win gets a freshly generated message; only
// fallbacks are remembered per label so a failing upstream is not retried
// on each win until the entry expires.
type Safe struct {
	inner   Generator
	timeout time.Duration
	failed  *expirable.LRU[string, string]
}

// NewSafe wraps inner. A nil inner means no API key is configured.
func NewSafe(inner Generator, timeout time.Duration) *Safe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Safe{
		inner:   inner,
		timeout: timeout,
		failed:  expirable.NewLRU[string, string](DefaultCacheSize, nil, DefaultCacheTTL),
	}
}

// Message returns a congratulatory message for label
func (s *Safe) Message(ctx context.Context, label string) string {
	if s.inner == nil {
		return fmt.Sprintf(FallbackNoKeyFormat, label)
	}
	if msg, ok := s.failed.Get(label); ok {
		return msg
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	msg, err := s.inner.Generate(ctx, label)
	switch {
	case errors.Is(err, ErrEmptyResponse):
		msg = fmt.Sprintf(FallbackEmptyFormat, label)
	case err != nil:
		logger.FromContext(ctx).Warn("Message generation failed", "prize", label, "error", err)
		msg = fmt.Sprintf(FallbackErrorFormat, label)
	default:
		return msg
	}

	s.failed.Add(label, msg)
	return msg
}

// Generate satisfies Generator and never returns an error
func (s *Safe) Generate(ctx context.Context, label string) (string, error) {
	return s.Message(ctx, label), nil
}
