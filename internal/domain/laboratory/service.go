package laboratory

import (
	"context"
	"fmt"
	"strings"
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

// RequestTest registers a new test order. The category is derived from the
// test type and the order always starts pending.
func (s *Service) RequestTest(ctx context.Context, t *Test) error {
	if t.PatientName == "" {
		return fmt.Errorf("patient name is required")
	}
	if t.TestType == "" {
		return fmt.Errorf("test type is required")
	}
	if t.Priority == "" {
		t.Priority = PriorityRoutine
	}
	if !ValidPriority(t.Priority) {
		return fmt.Errorf("invalid priority: %s", t.Priority)
	}
	t.Category = CategoryOf(t.TestType)
	t.Status = StatusPending
	t.SampleCollected = false
	t.Result = ""
	t.CompletedAt = nil

	if err := s.repo.Create(ctx, t); err != nil {
		return err
	}
	sev := notification.SeverityInfo
	if t.Priority == PriorityStat {
		sev = notification.SeverityWarning
	}
	s.events.Record("lab_test", "requested",
		fmt.Sprintf("%s ordered for %s (%s)", t.TestType, t.PatientName, t.Priority), sev)
	return nil
}

func (s *Service) GetTest(ctx context.Context, id uuid.UUID) (*Test, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to string, mutate func(*Test)) (*Test, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(t.Status, to) {
		return nil, transitionErr(t.Status, to)
	}
	t.Status = to
	if mutate != nil {
		mutate(t)
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// CollectSample marks the specimen as collected.
func (s *Service) CollectSample(ctx context.Context, id uuid.UUID) (*Test, error) {
	t, err := s.transition(ctx, id, StatusSampleCollected, func(t *Test) {
		t.SampleCollected = true
	})
	if err != nil {
		return nil, err
	}
	s.events.Record("lab_test", "sample-collected",
		fmt.Sprintf("Sample collected for %s (%s)", t.PatientName, t.TestType), notification.SeverityInfo)
	return t, nil
}

// StartProcessing moves a collected sample onto the bench.
func (s *Service) StartProcessing(ctx context.Context, id uuid.UUID) (*Test, error) {
	t, err := s.transition(ctx, id, StatusProcessing, nil)
	if err != nil {
		return nil, err
	}
	s.events.Record("lab_test", "processing",
		fmt.Sprintf("%s for %s is processing", t.TestType, t.PatientName), notification.SeverityInfo)
	return t, nil
}

// CompleteTest records the result. Only a processing test can complete, and
// the result text must be non-empty.
func (s *Service) CompleteTest(ctx context.Context, id uuid.UUID, result string) (*Test, error) {
	if strings.TrimSpace(result) == "" {
		return nil, fmt.Errorf("result is required to complete a test")
	}
	t, err := s.transition(ctx, id, StatusCompleted, func(t *Test) {
		t.Result = result
		now := time.Now()
		t.CompletedAt = &now
	})
	if err != nil {
		return nil, err
	}
	s.events.Record("lab_test", "completed",
		fmt.Sprintf("%s for %s completed", t.TestType, t.PatientName), notification.SeveritySuccess)
	return t, nil
}

// CancelTest cancels a test that has not yet started processing.
func (s *Service) CancelTest(ctx context.Context, id uuid.UUID) (*Test, error) {
	t, err := s.transition(ctx, id, StatusCancelled, nil)
	if err != nil {
		return nil, err
	}
	s.events.Record("lab_test", "cancelled",
		fmt.Sprintf("%s for %s cancelled", t.TestType, t.PatientName), notification.SeverityWarning)
	return t, nil
}

func (s *Service) DeleteTest(ctx context.Context, id uuid.UUID) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Record("lab_test", "deleted",
		fmt.Sprintf("%s for %s removed", t.TestType, t.PatientName), notification.SeverityWarning)
	return nil
}

func (s *Service) SearchTests(ctx context.Context, params map[string]string, limit, offset int) ([]*Test, int, error) {
	return s.repo.Search(ctx, params, limit, offset)
}

// CountPending returns the number of tests not yet completed or cancelled.
// Used by the dashboard summary.
func (s *Service) CountPending(ctx context.Context) (int, error) {
	all, _, err := s.repo.List(ctx, 0, 0)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, t := range all {
		if t.Status != StatusCompleted && t.Status != StatusCancelled {
			n++
		}
	}
	return n, nil
}
