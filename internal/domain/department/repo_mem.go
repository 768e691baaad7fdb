package department

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
	items []*Department
}

func NewMemRepo() Repository { return &memRepo{} }

func (r *memRepo) Create(_ context.Context, d *Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	cp := *d
	r.items = append([]*Department{&cp}, r.items...)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.items {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("department %s not found", id)
}

func (r *memRepo) GetByName(_ context.Context, name string) (*Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.items {
		if strings.EqualFold(d.Name, name) {
			cp := *d
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("department %q not found", name)
}

func (r *memRepo) Update(_ context.Context, d *Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Department, len(r.items))
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
		return fmt.Errorf("department %s not found", d.ID)
	}
	r.items = next
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Department, 0, len(r.items))
	for _, d := range r.items {
		if d.ID != id {
			next = append(next, d)
		}
	}
	if len(next) == len(r.items) {
		return fmt.Errorf("department %s not found", id)
	}
	r.items = next
	return nil
}

func (r *memRepo) List(ctx context.Context, limit, offset int) ([]*Department, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

func (r *memRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Department, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []*Department
	for _, d := range r.items {
		if q, ok := params["q"]; ok && q != "" {
			ql := strings.ToLower(q)
			if !strings.Contains(strings.ToLower(d.Name), ql) &&
				!strings.Contains(strings.ToLower(d.Head), ql) {
				continue
			}
		}
		filtered = append(filtered, d)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Name < filtered[j].Name
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

	out := make([]*Department, 0, end-start)
	for _, d := range filtered[start:end] {
		cp := *d
		out = append(out, &cp)
	}
	return out, total, nil
}
