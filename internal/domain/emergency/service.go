package emergency

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

func validate(e *Case) error {
	if e.Name == "" {
		return fmt.Errorf("name is required")
	}
	if e.Condition == "" {
		return fmt.Errorf("condition is required")
	}
	if !ValidTriage(e.Triage) {
		return fmt.Errorf("invalid triage level: %s", e.Triage)
	}
	if e.Vitals.HR != 0 && (e.Vitals.HR < 20 || e.Vitals.HR > 250) {
		return fmt.Errorf("heart rate out of range: %d", e.Vitals.HR)
	}
	if e.Vitals.SpO2 < 0 || e.Vitals.SpO2 > 100 {
		return fmt.Errorf("spo2 out of range: %d", e.Vitals.SpO2)
	}
	if e.Status != "" && !ValidStatus(e.Status) {
		return fmt.Errorf("invalid status: %s", e.Status)
	}
	return nil
}

// AdmitCase registers a new emergency arrival. New cases enter the queue as
// Waiting.
func (s *Service) AdmitCase(ctx context.Context, e *Case) error {
	e.Status = StatusWaiting
	if err := validate(e); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return err
	}
	sev := notification.SeverityInfo
	if e.Triage == TriageRed {
		sev = notification.SeverityWarning
	}
	s.events.Record("emergency", "admitted",
		fmt.Sprintf("%s triage case admitted: %s", e.Triage, e.Name), sev)
	return nil
}

func (s *Service) GetCase(ctx context.Context, id uuid.UUID) (*Case, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateCase(ctx context.Context, e *Case) error {
	if err := validate(e); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return err
	}
	s.events.Record("emergency", "updated", fmt.Sprintf("Case %s updated", e.Name), notification.SeverityInfo)
	return nil
}

// AssignCase hands the case to a clinician and moves it into treatment.
func (s *Service) AssignCase(ctx context.Context, id uuid.UUID, assignee string) (*Case, error) {
	if assignee == "" {
		return nil, fmt.Errorf("assignee is required")
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.AssignedTo = assignee
	e.Status = StatusInTreatment
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	s.events.Record("emergency", "assigned",
		fmt.Sprintf("Case %s assigned to %s", e.Name, assignee), notification.SeveritySuccess)
	return e, nil
}

// SetStatus moves a case through the floor workflow.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Case, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Status = status
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	s.events.Record("emergency", "status",
		fmt.Sprintf("Case %s is now %s", e.Name, status), notification.SeverityInfo)
	return e, nil
}

func (s *Service) DeleteCase(ctx context.Context, id uuid.UUID) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Record("emergency", "deleted", fmt.Sprintf("Case %s removed", e.Name), notification.SeverityWarning)
	return nil
}

func (s *Service) SearchCases(ctx context.Context, params map[string]string, limit, offset int) ([]*Case, int, error) {
	return s.repo.Search(ctx, params, limit, offset)
}

// Queue returns cases still waiting for treatment, most urgent first.
func (s *Service) Queue(ctx context.Context) ([]*Case, error) {
	items, _, err := s.repo.Search(ctx, map[string]string{"status": StatusWaiting}, 0, 0)
	return items, err
}

// CountCritical returns the number of Red triage cases not yet discharged.
// Used by the dashboard summary.
func (s *Service) CountCritical(ctx context.Context) (int, error) {
	items, _, err := s.repo.Search(ctx, map[string]string{"triage": TriageRed}, 0, 0)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range items {
		if e.Status != StatusDischarged {
			n++
		}
	}
	return n, nil
}
