package scheduling

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

func validate(a *Appointment) error {
	if a.PatientName == "" {
		return fmt.Errorf("patient name is required")
	}
	if a.Doctor == "" {
		return fmt.Errorf("doctor is required")
	}
	if a.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %d", a.Duration)
	}
	if _, err := time.Parse("2006-01-02", a.Date); err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", a.Date)
	}
	if _, err := time.Parse("15:04", a.Time); err != nil {
		return fmt.Errorf("invalid time %q, want HH:MM", a.Time)
	}
	return nil
}

func (s *Service) BookAppointment(ctx context.Context, a *Appointment) error {
	a.Status = StatusPending
	if err := validate(a); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return err
	}
	s.events.Record("appointment", "booked",
		fmt.Sprintf("Appointment for %s with %s on %s %s", a.PatientName, a.Doctor, a.Date, a.Time),
		notification.SeveritySuccess)
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	existing, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	a.Status = existing.Status
	if err := validate(a); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return err
	}
	s.events.Record("appointment", "updated",
		fmt.Sprintf("Appointment for %s updated", a.PatientName), notification.SeverityInfo)
	return nil
}

// ConfirmAppointment moves a pending appointment to confirmed.
func (s *Service) ConfirmAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusPending {
		return nil, fmt.Errorf("cannot confirm appointment in status %q", a.Status)
	}
	a.Status = StatusConfirmed
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	s.events.Record("appointment", "confirmed",
		fmt.Sprintf("Appointment for %s confirmed", a.PatientName), notification.SeveritySuccess)
	return a, nil
}

// CancelAppointment cancels a pending or confirmed appointment.
func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusCancelled {
		return nil, fmt.Errorf("appointment is already cancelled")
	}
	a.Status = StatusCancelled
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	s.events.Record("appointment", "cancelled",
		fmt.Sprintf("Appointment for %s cancelled", a.PatientName), notification.SeverityWarning)
	return a, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Record("appointment", "deleted",
		fmt.Sprintf("Appointment for %s removed", a.PatientName), notification.SeverityWarning)
	return nil
}

func (s *Service) SearchAppointments(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.Search(ctx, params, limit, offset)
}

// CountForDate returns the number of appointments on the given ISO date.
// Used by the dashboard summary.
func (s *Service) CountForDate(ctx context.Context, date string) (int, error) {
	_, total, err := s.repo.Search(ctx, map[string]string{"date": date}, 0, 0)
	return total, err
}
