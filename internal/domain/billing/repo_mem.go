package billing

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
	items []*Invoice
}

func NewMemRepo() Repository { return &memRepo{} }

func copyInvoice(inv *Invoice) *Invoice {
	cp := *inv
	cp.Items = append([]LineItem(nil), inv.Items...)
	return &cp
}

func (r *memRepo) Create(_ context.Context, inv *Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	now := time.Now()
	if inv.Date.IsZero() {
		inv.Date = now
	}
	inv.CreatedAt = now
	inv.UpdatedAt = now

	r.items = append([]*Invoice{copyInvoice(inv)}, r.items...)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, inv := range r.items {
		if inv.ID == id {
			return copyInvoice(inv), nil
		}
	}
	return nil, fmt.Errorf("invoice %s not found", id)
}

func (r *memRepo) Update(_ context.Context, inv *Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Invoice, len(r.items))
	found := false
	for i, existing := range r.items {
		if existing.ID == inv.ID {
			cp := copyInvoice(inv)
			cp.CreatedAt = existing.CreatedAt
			cp.UpdatedAt = time.Now()
			next[i] = cp
			found = true
		} else {
			next[i] = existing
		}
	}
	if !found {
		return fmt.Errorf("invoice %s not found", inv.ID)
	}
	r.items = next
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]*Invoice, 0, len(r.items))
	for _, inv := range r.items {
		if inv.ID != id {
			next = append(next, inv)
		}
	}
	if len(next) == len(r.items) {
		return fmt.Errorf("invoice %s not found", id)
	}
	r.items = next
	return nil
}

func (r *memRepo) List(ctx context.Context, limit, offset int) ([]*Invoice, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

func matches(inv *Invoice, params map[string]string) bool {
	if q, ok := params["q"]; ok && q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(inv.PatientName), q) &&
			!strings.Contains(strings.ToLower(inv.ID.String()), q) {
			return false
		}
	}
	if v, ok := params["patient_id"]; ok && v != "" && inv.PatientID.String() != v {
		return false
	}
	return true
}

func (r *memRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Invoice, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []*Invoice
	for _, inv := range r.items {
		if matches(inv, params) {
			filtered = append(filtered, inv)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
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

	out := make([]*Invoice, 0, end-start)
	for _, inv := range filtered[start:end] {
		out = append(out, copyInvoice(inv))
	}
	return out, total, nil
}
