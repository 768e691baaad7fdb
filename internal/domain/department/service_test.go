package department

import (
	"context"
	"testing"
)

func TestCreateDepartment_RejectsDuplicates(t *testing.T) {
	svc := NewService(NewMemRepo(), nil)
	ctx := context.Background()

	d := &Department{Name: "Cardiology", Head: "Dr. Emma Wilson", TotalBeds: 40}
	if err := svc.CreateDepartment(ctx, d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.CreateDepartment(ctx, &Department{Name: "cardiology"}); err == nil {
		t.Error("expected error for duplicate name (case-insensitive)")
	}
}

func TestCreateDepartment_Validation(t *testing.T) {
	svc := NewService(NewMemRepo(), nil)
	ctx := context.Background()

	if err := svc.CreateDepartment(ctx, &Department{}); err == nil {
		t.Error("expected error for missing name")
	}
	if err := svc.CreateDepartment(ctx, &Department{Name: "X", TotalBeds: 10, OccupiedBeds: 11}); err == nil {
		t.Error("expected error for occupancy above capacity")
	}
}

func TestSetOccupiedBeds(t *testing.T) {
	svc := NewService(NewMemRepo(), nil)
	ctx := context.Background()

	d := &Department{Name: "ICU", TotalBeds: 20, OccupiedBeds: 10}
	if err := svc.CreateDepartment(ctx, d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := svc.SetOccupiedBeds(ctx, d.ID, 18)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.OccupiedBeds != 18 {
		t.Errorf("expected 18 occupied, got %d", out.OccupiedBeds)
	}

	if _, err := svc.SetOccupiedBeds(ctx, d.ID, 21); err == nil {
		t.Error("expected error for occupancy above capacity")
	}
	if _, err := svc.SetOccupiedBeds(ctx, d.ID, -1); err == nil {
		t.Error("expected error for negative occupancy")
	}
}

func TestBeds_Aggregates(t *testing.T) {
	svc := NewService(NewMemRepo(), nil)
	ctx := context.Background()

	for _, d := range []*Department{
		{Name: "Cardiology", TotalBeds: 40, OccupiedBeds: 30},
		{Name: "Neurology", TotalBeds: 30, OccupiedBeds: 12},
		{Name: "Pediatrics", TotalBeds: 30, OccupiedBeds: 8},
	} {
		if err := svc.CreateDepartment(ctx, d); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	sum, err := svc.Beds(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.TotalBeds != 100 || sum.OccupiedBeds != 50 {
		t.Errorf("unexpected totals: %+v", sum)
	}
	if sum.Occupancy != 50 {
		t.Errorf("expected 50%% occupancy, got %g", sum.Occupancy)
	}
}
