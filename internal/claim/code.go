// Package claim mints claim and redemption codes and attaches them to wins.
package claim

import (
	"context"
	"fmt"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/logger"
	"github.com/kylasweb/IOC-Spinwheel/internal/repository"
	"github.com/kylasweb/IOC-Spinwheel/internal/utils"
)

const (
	// CodeAlphabet is upper-case base36
	CodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// MaxCodeAttempts bounds collision retries against the registry
	MaxCodeAttempts = 5
)

// CodeGenerator mints PREFIX-XXXXXX codes that are unique within its registry
type CodeGenerator struct {
	registry repository.CodeRegistry
	random   func(alphabet string, n int) (string, error) // Injectable for testing
}

// NewCodeGenerator creates a generator backed by registry
func NewCodeGenerator(registry repository.CodeRegistry) *CodeGenerator {
	return &CodeGenerator{
		registry: registry,
		random:   utils.SecureRandomString,
	}
}

// Generate returns a fresh code reserved in the registry
func (g *CodeGenerator) Generate(ctx context.Context, prefix string) (string, error) {
	for attempt := 1; attempt <= MaxCodeAttempts; attempt++ {
		suffix, err := g.random(CodeAlphabet, domain.CodeSuffixLength)
		if err != nil {
			return "", fmt.Errorf("failed to draw code: %w", err)
		}
		code := prefix + "-" + suffix

		ok, err := g.registry.ReserveCode(ctx, code)
		if err != nil {
			return "", err
		}
		if ok {
			return code, nil
		}
		logger.FromContext(ctx).Warn("Code collision, retrying", "prefix", prefix, "attempt", attempt)
	}
	return "", fmt.Errorf("%w: prefix %s after %d attempts", domain.ErrCodeExhausted, prefix, MaxCodeAttempts)
}
