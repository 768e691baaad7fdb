package department

import (
	"context"
	"fmt"

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

func validate(d *Department) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.TotalBeds < 0 {
		return fmt.Errorf("total beds cannot be negative")
	}
	if d.OccupiedBeds < 0 || d.OccupiedBeds > d.TotalBeds {
		return fmt.Errorf("occupied beds must be between 0 and %d", d.TotalBeds)
	}
	return nil
}

func (s *Service) CreateDepartment(ctx context.Context, d *Department) error {
	if err := validate(d); err != nil {
		return err
	}
	if existing, err := s.repo.GetByName(ctx, d.Name); err == nil {
		return fmt.Errorf("department %q already exists", existing.Name)
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return err
	}
	s.events.Record("department", "created", fmt.Sprintf("Department %s created", d.Name), notification.SeveritySuccess)
	return nil
}

func (s *Service) GetDepartment(ctx context.Context, id uuid.UUID) (*Department, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateDepartment(ctx context.Context, d *Department) error {
	if err := validate(d); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return err
	}
	s.events.Record("department", "updated", fmt.Sprintf("Department %s updated", d.Name), notification.SeverityInfo)
	return nil
}

// SetOccupiedBeds records bed occupancy, bounded by the department's
// capacity.
func (s *Service) SetOccupiedBeds(ctx context.Context, id uuid.UUID, occupied int) (*Department, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if occupied < 0 || occupied > d.TotalBeds {
		return nil, fmt.Errorf("occupied beds must be between 0 and %d", d.TotalBeds)
	}
	d.OccupiedBeds = occupied
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	s.events.Record("department", "occupancy",
		fmt.Sprintf("%s occupancy now %d/%d", d.Name, d.OccupiedBeds, d.TotalBeds), notification.SeverityInfo)
	return d, nil
}

func (s *Service) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Record("department", "deleted", fmt.Sprintf("Department %s removed", d.Name), notification.SeverityWarning)
	return nil
}

func (s *Service) SearchDepartments(ctx context.Context, params map[string]string, limit, offset int) ([]*Department, int, error) {
	return s.repo.Search(ctx, params, limit, offset)
}

// BedSummary aggregates bed capacity and occupancy across all departments.
type BedSummary struct {
	TotalBeds    int     `json:"total_beds"`
	OccupiedBeds int     `json:"occupied_beds"`
	Occupancy    float64 `json:"occupancy"`
}

func (s *Service) Beds(ctx context.Context) (*BedSummary, error) {
	items, _, err := s.repo.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	var sum BedSummary
	for _, d := range items {
		sum.TotalBeds += d.TotalBeds
		sum.OccupiedBeds += d.OccupiedBeds
	}
	if sum.TotalBeds > 0 {
		sum.Occupancy = float64(sum.OccupiedBeds) / float64(sum.TotalBeds) * 100
	}
	return &sum, nil
}
