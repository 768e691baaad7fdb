package pharmacy

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
	items []*Medicine
}

func NewMemRepo() Repository { return &memRepo{} }

func (r *memRepo) Create(_ context.Context, m *Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	cp := *m
	r.items = append([]*Medicine{&cp}, r.items...)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.items {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("medicine %s not found", id)
}

func (r *memRepo) Update(_ context.Context, m *Medicine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Medicine, len(r.items))
	found := false
	for i, existing := range r.items {
		if existing.ID == m.ID {
			cp := *m
			cp.CreatedAt = existing.CreatedAt
			cp.UpdatedAt = time.Now()
			next[i] = &cp
			found = true
		} else {
			next[i] = existing
		}
	}
	if !found {
		return fmt.Errorf("medicine %s not found", m.ID)
	}
	r.items = next
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Medicine, 0, len(r.items))
	for _, m := range r.items {
		if m.ID != id {
			next = append(next, m)
		}
	}
	if len(next) == len(r.items) {
		return fmt.Errorf("medicine %s not found", id)
	}
	r.items = next
	return nil
}

func (r *memRepo) List(ctx context.Context, limit, offset int) ([]*Medicine, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

func matches(m *Medicine, params map[string]string) bool {
	if q, ok := params["q"]; ok && q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(m.Name), q) &&
			!strings.Contains(strings.ToLower(m.GenericName), q) {
			return false
		}
	}
	if v, ok := params["category"]; ok && v != "" && m.Category != v {
		return false
	}
	return true
}

func (r *memRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Medicine, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []*Medicine
	for _, m := range r.items {
		if matches(m, params) {
			filtered = append(filtered, m)
		}
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

	out := make([]*Medicine, 0, end-start)
	for _, m := range filtered[start:end] {
		cp := *m
		out = append(out, &cp)
	}
	return out, total, nil
}
