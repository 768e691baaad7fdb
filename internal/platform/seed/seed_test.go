package seed

import (
	"context"
	"testing"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/department"
	"github.com/hms/hms/internal/domain/emergency"
	"github.com/hms/hms/internal/domain/laboratory"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/pharmacy"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/domain/staff"
)

func memStores() Stores {
	return Stores{
		Patients:     patient.NewMemRepo(),
		Doctors:      staff.NewMemRepo(),
		Departments:  department.NewMemRepo(),
		Appointments: scheduling.NewMemRepo(),
		Emergency:    emergency.NewMemRepo(),
		Medicines:    pharmacy.NewMemRepo(),
		LabTests:     laboratory.NewMemRepo(),
		Invoices:     billing.NewMemRepo(),
	}
}

func TestDemo_PopulatesEveryStore(t *testing.T) {
	stores := memStores()

	sum, err := Demo(context.Background(), stores)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Patients == 0 || sum.Doctors == 0 || sum.Departments == 0 ||
		sum.Appointments == 0 || sum.Emergency == 0 || sum.Medicines == 0 ||
		sum.LabTests == 0 || sum.Invoices == 0 {
		t.Errorf("expected every dataset populated: %+v", sum)
	}

	items, total, err := stores.Patients.Search(context.Background(), nil, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != sum.Patients || len(items) != sum.Patients {
		t.Errorf("patient store holds %d, summary says %d", total, sum.Patients)
	}
}

func TestDemo_FilterConjunction(t *testing.T) {
	stores := memStores()
	ctx := context.Background()

	if _, err := Demo(ctx, stores); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// q and department must both apply.
	items, total, err := stores.Patients.Search(ctx,
		map[string]string{"q": "johnson", "department": "Cardiology"}, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || items[0].Name != "Sarah Johnson" {
		t.Errorf("expected exactly Sarah Johnson, got %d records", total)
	}

	_, total, err = stores.Patients.Search(ctx,
		map[string]string{"q": "johnson", "department": "Neurology"}, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Errorf("expected no matches for conflicting filters, got %d", total)
	}
}

func TestDemo_StockStatusSpread(t *testing.T) {
	stores := memStores()
	ctx := context.Background()

	if _, err := Demo(ctx, stores); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, _, err := stores.Medicines.Search(ctx, nil, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := map[string]bool{}
	for _, m := range items {
		seen[m.Status()] = true
	}
	for _, want := range []string{
		pharmacy.StockInStock, pharmacy.StockLowStock,
		pharmacy.StockOutOfStock, pharmacy.StockExpired,
	} {
		if !seen[want] {
			t.Errorf("demo dataset missing a %s medicine", want)
		}
	}
}
