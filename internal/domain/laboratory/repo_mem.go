package laboratory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// priorityRank orders the worklist: stat first, then urgent, then routine.
var priorityRank = map[string]int{
	PriorityStat:    0,
	PriorityUrgent:  1,
	PriorityRoutine: 2,
}

type memRepo struct {
	mu    sync.RWMutex
	items []*Test
}

func NewMemRepo() Repository { return &memRepo{} }

func (r *memRepo) Create(_ context.Context, t *Test) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now()
	if t.RequestDate.IsZero() {
		t.RequestDate = now
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	cp := *t
	r.items = append([]*Test{&cp}, r.items...)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Test, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.items {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("lab test %s not found", id)
}

func (r *memRepo) Update(_ context.Context, t *Test) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Test, len(r.items))
	found := false
	for i, existing := range r.items {
		if existing.ID == t.ID {
			cp := *t
			cp.CreatedAt = existing.CreatedAt
			cp.UpdatedAt = time.Now()
			next[i] = &cp
			found = true
		} else {
			next[i] = existing
		}
	}
	if !found {
		return fmt.Errorf("lab test %s not found", t.ID)
	}
	r.items = next
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Test, 0, len(r.items))
	for _, t := range r.items {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if len(next) == len(r.items) {
		return fmt.Errorf("lab test %s not found", id)
	}
	r.items = next
	return nil
}

func (r *memRepo) List(ctx context.Context, limit, offset int) ([]*Test, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

func matches(t *Test, params map[string]string) bool {
	if q, ok := params["q"]; ok && q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(t.PatientName), q) &&
			!strings.Contains(strings.ToLower(t.TestType), q) {
			return false
		}
	}
	if v, ok := params["status"]; ok && v != "" && t.Status != v {
		return false
	}
	if v, ok := params["category"]; ok && v != "" && t.Category != v {
		return false
	}
	if v, ok := params["priority"]; ok && v != "" && t.Priority != v {
		return false
	}
	return true
}

func (r *memRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Test, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []*Test
	for _, t := range r.items {
		if matches(t, params) {
			filtered = append(filtered, t)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		pi, pj := priorityRank[filtered[i].Priority], priorityRank[filtered[j].Priority]
		if pi != pj {
			return pi < pj
		}
		return filtered[i].RequestDate.Before(filtered[j].RequestDate)
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

	out := make([]*Test, 0, end-start)
	for _, t := range filtered[start:end] {
		cp := *t
		out = append(out, &cp)
	}
	return out, total, nil
}
