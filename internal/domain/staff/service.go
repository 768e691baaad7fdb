package staff

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

func validate(d *Doctor) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Specialization == "" {
		return fmt.Errorf("specialization is required")
	}
	if d.Rating < 0 || d.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5, got %g", d.Rating)
	}
	if d.Experience < 0 {
		return fmt.Errorf("experience cannot be negative")
	}
	if d.Availability != "" && !ValidAvailability(d.Availability) {
		return fmt.Errorf("invalid availability: %s", d.Availability)
	}
	return nil
}

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if d.Availability == "" {
		d.Availability = AvailabilityAvailable
	}
	if err := validate(d); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return err
	}
	s.events.Record("doctor", "created", fmt.Sprintf("Dr. %s joined %s", d.Name, d.Department), notification.SeveritySuccess)
	return nil
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if err := validate(d); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return err
	}
	s.events.Record("doctor", "updated", fmt.Sprintf("Dr. %s updated", d.Name), notification.SeverityInfo)
	return nil
}

// SetAvailability changes only the doctor's availability state.
func (s *Service) SetAvailability(ctx context.Context, id uuid.UUID, availability string) (*Doctor, error) {
	if !ValidAvailability(availability) {
		return nil, fmt.Errorf("invalid availability: %s", availability)
	}
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Availability = availability
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	s.events.Record("doctor", "availability", fmt.Sprintf("Dr. %s is now %s", d.Name, availability), notification.SeverityInfo)
	return d, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Record("doctor", "deleted", fmt.Sprintf("Dr. %s removed", d.Name), notification.SeverityWarning)
	return nil
}

func (s *Service) SearchDoctors(ctx context.Context, params map[string]string, limit, offset int) ([]*Doctor, int, error) {
	return s.repo.Search(ctx, params, limit, offset)
}

// CountAvailable returns the number of doctors currently available. Used by
// the dashboard summary.
func (s *Service) CountAvailable(ctx context.Context) (int, error) {
	_, total, err := s.repo.Search(ctx, map[string]string{"availability": AvailabilityAvailable}, 0, 0)
	return total, err
}
