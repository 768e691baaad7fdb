package admin

import (
	"context"
	"testing"
)

func TestGetSettings_Defaults(t *testing.T) {
	svc := NewService(NewMemRepo(), nil)

	s, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.HospitalName != "General Hospital" || s.AppointmentDuration != 30 {
		t.Errorf("unexpected defaults: %+v", s)
	}
}

func TestUpdateSettings_RoundTrip(t *testing.T) {
	svc := NewService(NewMemRepo(), nil)
	ctx := context.Background()

	in := DefaultSettings()
	in.HospitalName = "City Medical Center"
	in.MaintenanceMode = true
	if _, err := svc.UpdateSettings(ctx, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.HospitalName != "City Medical Center" || !out.MaintenanceMode {
		t.Errorf("settings not persisted: %+v", out)
	}
	if out.UpdatedAt.IsZero() {
		t.Error("expected updated timestamp to be set")
	}
}

func TestUpdateSettings_Validation(t *testing.T) {
	svc := NewService(NewMemRepo(), nil)
	ctx := context.Background()

	in := DefaultSettings()
	in.HospitalName = "  "
	if _, err := svc.UpdateSettings(ctx, in); err == nil {
		t.Error("expected error for blank hospital name")
	}

	in = DefaultSettings()
	in.Email = "not-an-address"
	if _, err := svc.UpdateSettings(ctx, in); err == nil {
		t.Error("expected error for malformed email")
	}

	in = DefaultSettings()
	in.AppointmentDuration = 0
	if _, err := svc.UpdateSettings(ctx, in); err == nil {
		t.Error("expected error for zero appointment duration")
	}
}
