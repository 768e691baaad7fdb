package pharmacy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/notification"
)

type Service struct {
	repo   Repository
	events notification.Recorder
}

func NewService(repo Repository, events notification.Recorder) *Service {
	if events == nil {
		events = notification.Discard{}
	}
	return &Service{repo: repo, events: events}
}

func validate(m *Medicine) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	if m.ReorderLevel < 0 {
		return fmt.Errorf("reorder level cannot be negative")
	}
	if m.UnitPrice.IsNegative() {
		return fmt.Errorf("unit price cannot be negative")
	}
	return nil
}

func (s *Service) AddMedicine(ctx context.Context, m *Medicine) error {
	if err := validate(m); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return err
	}
	s.events.Record("medicine", "created", fmt.Sprintf("%s added to inventory", m.Name), notification.SeveritySuccess)
	return nil
}

func (s *Service) GetMedicine(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateMedicine(ctx context.Context, m *Medicine) error {
	if err := validate(m); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return err
	}
	s.events.Record("medicine", "updated", fmt.Sprintf("%s updated", m.Name), notification.SeverityInfo)
	return nil
}

// Dispense removes up to qty units from stock. Requests above the current
// stock level are clamped rather than rejected; the returned count is what
// was actually dispensed. Expired stock is never dispensed.
func (s *Service) Dispense(ctx context.Context, id uuid.UUID, qty int) (*Medicine, int, error) {
	if qty <= 0 {
		return nil, 0, fmt.Errorf("dispense quantity must be positive, got %d", qty)
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if m.Status() == StockExpired {
		return nil, 0, fmt.Errorf("%s batch %s is expired", m.Name, m.BatchNumber)
	}
	dispensed := qty
	if dispensed > m.Quantity {
		dispensed = m.Quantity
	}
	if dispensed == 0 {
		return nil, 0, fmt.Errorf("%s is out of stock", m.Name)
	}
	m.Quantity -= dispensed
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, 0, err
	}

	sev := notification.SeveritySuccess
	msg := fmt.Sprintf("Dispensed %d x %s", dispensed, m.Name)
	if st := m.Status(); st == StockLowStock || st == StockOutOfStock {
		sev = notification.SeverityWarning
		msg = fmt.Sprintf("%s; stock now %s (%d left)", msg, st, m.Quantity)
	}
	s.events.Record("medicine", "dispensed", msg, sev)
	return m, dispensed, nil
}

// Restock adds qty units to stock.
func (s *Service) Restock(ctx context.Context, id uuid.UUID, qty int) (*Medicine, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("restock quantity must be positive, got %d", qty)
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Quantity += qty
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	s.events.Record("medicine", "restocked", fmt.Sprintf("Restocked %d x %s", qty, m.Name), notification.SeveritySuccess)
	return m, nil
}

func (s *Service) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Record("medicine", "deleted", fmt.Sprintf("%s removed from inventory", m.Name), notification.SeverityWarning)
	return nil
}

// SearchMedicines filters inventory. The "status" param filters on the
// derived stock status and is applied here, after the repository filters.
func (s *Service) SearchMedicines(ctx context.Context, params map[string]string, limit, offset int) ([]*Medicine, int, error) {
	status := params["status"]
	if status == "" {
		return s.repo.Search(ctx, params, limit, offset)
	}

	repoParams := make(map[string]string, len(params))
	for k, v := range params {
		if k != "status" {
			repoParams[k] = v
		}
	}
	all, _, err := s.repo.Search(ctx, repoParams, 0, 0)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now()
	var filtered []*Medicine
	for _, m := range all {
		if StockStatusOf(m, now) == status {
			filtered = append(filtered, m)
		}
	}
	total := len(filtered)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if limit <= 0 || end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

// StockCounts tallies inventory by derived status. Used by the dashboard
// and the pharmacy report.
func (s *Service) StockCounts(ctx context.Context) (map[string]int, error) {
	all, _, err := s.repo.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	counts := make(map[string]int)
	for _, m := range all {
		counts[StockStatusOf(m, now)]++
	}
	return counts, nil
}
