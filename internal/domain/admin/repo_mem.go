package admin

import (
	"context"
	"sync"
)

// MemRepo keeps the settings in process memory.
type MemRepo struct {
	mu      sync.RWMutex
	current *Settings
}

func NewMemRepo() *MemRepo {
	return &MemRepo{}
}

func (r *MemRepo) Get(ctx context.Context) (*Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return DefaultSettings(), nil
	}
	out := *r.current
	return &out, nil
}

func (r *MemRepo) Save(ctx context.Context, s *Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.current = &cp
	return nil
}
