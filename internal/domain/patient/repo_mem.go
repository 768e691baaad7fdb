package patient

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memRepo holds patients in memory. Mutations are replacement-style: the
// backing slice is rebuilt rather than edited in place, so concurrent
// readers never observe a half-applied change.
type memRepo struct {
	mu    sync.RWMutex
	items []*Patient
}

func NewMemRepo() Repository { return &memRepo{} }

func (r *memRepo) Create(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	next := make([]*Patient, 0, len(r.items)+1)
	cp := *p
	next = append(next, &cp)
	next = append(next, r.items...)
	r.items = next
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("patient %s not found", id)
}

func (r *memRepo) Update(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Patient, len(r.items))
	found := false
	for i, existing := range r.items {
		if existing.ID == p.ID {
			cp := *p
			cp.CreatedAt = existing.CreatedAt
			cp.UpdatedAt = time.Now()
			next[i] = &cp
			found = true
		} else {
			next[i] = existing
		}
	}
	if !found {
		return fmt.Errorf("patient %s not found", p.ID)
	}
	r.items = next
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Patient, 0, len(r.items))
	for _, p := range r.items {
		if p.ID != id {
			next = append(next, p)
		}
	}
	if len(next) == len(r.items) {
		return fmt.Errorf("patient %s not found", id)
	}
	r.items = next
	return nil
}

func (r *memRepo) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

func matches(p *Patient, params map[string]string) bool {
	if q, ok := params["q"]; ok && q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.ID.String()), q) {
			return false
		}
	}
	if s, ok := params["status"]; ok && s != "" && p.Status != s {
		return false
	}
	if d, ok := params["department"]; ok && d != "" && p.Department != d {
		return false
	}
	return true
}

func (r *memRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []*Patient
	for _, p := range r.items {
		if matches(p, params) {
			filtered = append(filtered, p)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := len(filtered)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if limit <= 0 || end > total {
		end = total
	}

	out := make([]*Patient, 0, end-start)
	for _, p := range filtered[start:end] {
		cp := *p
		out = append(out, &cp)
	}
	return out, total, nil
}
