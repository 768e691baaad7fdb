package admin

import (
	"context"
	"time"

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

func (s *Service) GetSettings(ctx context.Context) (*Settings, error) {
	return s.repo.Get(ctx)
}

// UpdateSettings replaces the record and reports the result immediately.
func (s *Service) UpdateSettings(ctx context.Context, in *Settings) (*Settings, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	in.UpdatedAt = time.Now()
	if err := s.repo.Save(ctx, in); err != nil {
		return nil, err
	}
	s.events.Record("settings", "updated", "Hospital settings saved", notification.SeveritySuccess)
	return in, nil
}
