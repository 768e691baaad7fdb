package emergency

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
	items []*Case
}

func NewMemRepo() Repository { return &memRepo{} }

func copyCase(e *Case) *Case {
	cp := *e
	cp.Symptoms = append([]string(nil), e.Symptoms...)
	return &cp
}

func (r *memRepo) Create(_ context.Context, e *Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now()
	if e.ArrivedAt.IsZero() {
		e.ArrivedAt = now
	}
	e.CreatedAt = now
	e.UpdatedAt = now

	r.items = append([]*Case{copyCase(e)}, r.items...)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.items {
		if e.ID == id {
			return copyCase(e), nil
		}
	}
	return nil, fmt.Errorf("emergency case %s not found", id)
}

func (r *memRepo) Update(_ context.Context, e *Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Case, len(r.items))
	found := false
	for i, existing := range r.items {
		if existing.ID == e.ID {
			cp := copyCase(e)
			cp.CreatedAt = existing.CreatedAt
			cp.ArrivedAt = existing.ArrivedAt
			cp.UpdatedAt = time.Now()
			next[i] = cp
			found = true
		} else {
			next[i] = existing
		}
	}
	if !found {
		return fmt.Errorf("emergency case %s not found", e.ID)
	}
	r.items = next
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Case, 0, len(r.items))
	for _, e := range r.items {
		if e.ID != id {
			next = append(next, e)
		}
	}
	if len(next) == len(r.items) {
		return fmt.Errorf("emergency case %s not found", id)
	}
	r.items = next
	return nil
}

func (r *memRepo) List(ctx context.Context, limit, offset int) ([]*Case, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

func matches(e *Case, params map[string]string) bool {
	if q, ok := params["q"]; ok && q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(e.Name), q) &&
			!strings.Contains(strings.ToLower(e.Condition), q) {
			return false
		}
	}
	if v, ok := params["triage"]; ok && v != "" && e.Triage != v {
		return false
	}
	if v, ok := params["status"]; ok && v != "" && e.Status != v {
		return false
	}
	return true
}

func (r *memRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Case, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []*Case
	for _, e := range r.items {
		if matches(e, params) {
			filtered = append(filtered, e)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		ri, rj := TriageRank(filtered[i].Triage), TriageRank(filtered[j].Triage)
		if ri != rj {
			return ri < rj
		}
		return filtered[i].ArrivedAt.Before(filtered[j].ArrivedAt)
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

	out := make([]*Case, 0, end-start)
	for _, e := range filtered[start:end] {
		out = append(out, copyCase(e))
	}
	return out, total, nil
}
