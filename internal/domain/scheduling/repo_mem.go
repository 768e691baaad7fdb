package scheduling

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
	items []*Appointment
}

func NewMemRepo() Repository { return &memRepo{} }

func (r *memRepo) Create(_ context.Context, a *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	cp := *a
	r.items = append([]*Appointment{&cp}, r.items...)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("appointment %s not found", id)
}

func (r *memRepo) Update(_ context.Context, a *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Appointment, len(r.items))
	found := false
	for i, existing := range r.items {
		if existing.ID == a.ID {
			cp := *a
			cp.CreatedAt = existing.CreatedAt
			cp.UpdatedAt = time.Now()
			next[i] = &cp
			found = true
		} else {
			next[i] = existing
		}
	}
	if !found {
		return fmt.Errorf("appointment %s not found", a.ID)
	}
	r.items = next
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Appointment, 0, len(r.items))
	for _, a := range r.items {
		if a.ID != id {
			next = append(next, a)
		}
	}
	if len(next) == len(r.items) {
		return fmt.Errorf("appointment %s not found", id)
	}
	r.items = next
	return nil
}

func (r *memRepo) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

func matches(a *Appointment, params map[string]string) bool {
	if q, ok := params["q"]; ok && q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(a.PatientName), q) &&
			!strings.Contains(strings.ToLower(a.Doctor), q) {
			return false
		}
	}
	if v, ok := params["status"]; ok && v != "" && a.Status != v {
		return false
	}
	if v, ok := params["doctor"]; ok && v != "" && a.Doctor != v {
		return false
	}
	if v, ok := params["date"]; ok && v != "" && a.Date != v {
		return false
	}
	return true
}

func (r *memRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []*Appointment
	for _, a := range r.items {
		if matches(a, params) {
			filtered = append(filtered, a)
		}
	}
	// Chronological: earliest appointment first.
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Date != filtered[j].Date {
			return filtered[i].Date < filtered[j].Date
		}
		return filtered[i].Time < filtered[j].Time
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

	out := make([]*Appointment, 0, end-start)
	for _, a := range filtered[start:end] {
		cp := *a
		out = append(out, &cp)
	}
	return out, total, nil
}
