package memory

import (
	"context"
	"sync"
)

// CodeRegistry is an in-process set of issued codes
type CodeRegistry struct {
	mu    sync.Mutex
	codes map[string]struct{}
}

// NewCodeRegistry creates an empty registry
func NewCodeRegistry() *CodeRegistry {
	return &CodeRegistry{codes: make(map[string]struct{})}
}

func (r *CodeRegistry) ReserveCode(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.codes[code]; exists {
		return false, nil
	}
	r.codes[code] = struct{}{}
	return true, nil
}

// Len reports how many codes have been issued
func (r *CodeRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.codes)
}
