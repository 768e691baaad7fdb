package staff

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memRepo struct {
	mu    sync.RWMutex
	items []*Doctor
}

func NewMemRepo() Repository { return &memRepo{} }

func (r *memRepo) Create(_ context.Context, d *Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	cp := *d
	r.items = append([]*Doctor{&cp}, r.items...)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.items {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("doctor %s not found", id)
}

func (r *memRepo) Update(_ context.Context, d *Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Doctor, len(r.items))
	found := false
	for i, existing := range r.items {
		if existing.ID == d.ID {
			cp := *d
			cp.CreatedAt = existing.CreatedAt
			cp.UpdatedAt = time.Now()
			next[i] = &cp
			found = true
		} else {
			next[i] = existing
		}
	}
	if !found {
		return fmt.Errorf("doctor %s not found", d.ID)
	}
	r.items = next
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Doctor, 0, len(r.items))
	for _, d := range r.items {
		if d.ID != id {
			next = append(next, d)
		}
	}
	if len(next) == len(r.items) {
		return fmt.Errorf("doctor %s not found", id)
	}
	r.items = next
	return nil
}

func (r *memRepo) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

func matches(d *Doctor, params map[string]string) bool {
	if q, ok := params["q"]; ok && q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(d.Name), q) &&
			!strings.Contains(strings.ToLower(d.Specialization), q) {
			return false
		}
	}
	if v, ok := params["department"]; ok && v != "" && d.Department != v {
		return false
	}
	if v, ok := params["availability"]; ok && v != "" && d.Availability != v {
		return false
	}
	return true
}

func (r *memRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Doctor, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []*Doctor
	for _, d := range r.items {
		if matches(d, params) {
			filtered = append(filtered, d)
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

	out := make([]*Doctor, 0, end-start)
	for _, d := range filtered[start:end] {
		cp := *d
		out = append(out, &cp)
	}
	return out, total, nil
}
