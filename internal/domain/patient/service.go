package patient

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

func validate(p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 0 || p.Age > 150 {
		return fmt.Errorf("invalid age: %d", p.Age)
	}
	if p.Status != "" && !ValidStatus(p.Status) {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	return nil
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.Status == "" {
		p.Status = StatusStable
	}
	if err := validate(p); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.events.Record("patient", "created", fmt.Sprintf("Patient %s registered", p.Name), notification.SeveritySuccess)
	return nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if err := validate(p); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.events.Record("patient", "updated", fmt.Sprintf("Patient %s updated", p.Name), notification.SeverityInfo)
	return nil
}

// DischargePatient marks the patient as discharged without touching the rest
// of the record.
func (s *Service) DischargePatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusDischarged {
		return nil, fmt.Errorf("patient %s is already discharged", id)
	}
	p.Status = StatusDischarged
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.events.Record("patient", "discharged", fmt.Sprintf("Patient %s discharged", p.Name), notification.SeveritySuccess)
	return p, nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Record("patient", "deleted", fmt.Sprintf("Patient %s removed", p.Name), notification.SeverityWarning)
	return nil
}

func (s *Service) SearchPatients(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	return s.repo.Search(ctx, params, limit, offset)
}

// CountByStatus tallies every patient by admission status. Used by the
// dashboard and the reporting endpoints.
func (s *Service) CountByStatus(ctx context.Context) (map[string]int, error) {
	items, _, err := s.repo.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, p := range items {
		counts[p.Status]++
	}
	return counts, nil
}
