package pharmacy

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newMedicine(name string, qty, reorder int) *Medicine {
	return &Medicine{
		Name:         name,
		GenericName:  name,
		Category:     "Antibiotics",
		BatchNumber:  "B-100",
		ExpiryDate:   time.Now().AddDate(1, 0, 0),
		Quantity:     qty,
		ReorderLevel: reorder,
		UnitPrice:    decimal.NewFromFloat(2.50),
	}
}

func TestDispense_DecrementsStock(t *testing.T) {
	svc := NewService(NewMemRepo(), nil)
	ctx := context.Background()

	m := newMedicine("Amoxicillin", 100, 20)
	if err := svc.AddMedicine(ctx, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, dispensed, err := svc.Dispense(ctx, m.ID, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dispensed != 30 || out.Quantity != 70 {
		t.Errorf("expected 30 dispensed leaving 70, got %d leaving %d", dispensed, out.Quantity)
	}
}

func TestDispense_ClampsAtStock(t *testing.T) {
	svc := NewService(NewMemRepo(), nil)
	ctx := context.Background()

	m := newMedicine("Ibuprofen", 10, 5)
	if err := svc.AddMedicine(ctx, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, dispensed, err := svc.Dispense(ctx, m.ID, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dispensed != 10 || out.Quantity != 0 {
		t.Errorf("expected clamp to 10 leaving 0, got %d leaving %d", dispensed, out.Quantity)
	}
	if out.Status() != StockOutOfStock {
		t.Errorf("expected out-of-stock, got %q", out.Status())
	}

	if _, _, err := svc.Dispense(ctx, m.ID, 1); err == nil {
		t.Error("expected error dispensing from empty stock")
	}
}

func TestDispense_RejectsExpired(t *testing.T) {
	svc := NewService(NewMemRepo(), nil)
	ctx := context.Background()

	m := newMedicine("Old batch", 50, 10)
	m.ExpiryDate = time.Now().AddDate(0, -1, 0)
	if err := svc.AddMedicine(ctx, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := svc.Dispense(ctx, m.ID, 5); err == nil {
		t.Error("expected error dispensing expired stock")
	}
}

func TestSearchMedicines_DerivedStatusFilter(t *testing.T) {
	svc := NewService(NewMemRepo(), nil)
	ctx := context.Background()

	full := newMedicine("Amoxicillin", 500, 100)
	low := newMedicine("Ibuprofen", 20, 100)
	expired := newMedicine("Aspirin", 500, 100)
	expired.ExpiryDate = time.Now().AddDate(0, -1, 0)
	for _, m := range []*Medicine{full, low, expired} {
		if err := svc.AddMedicine(ctx, m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	items, total, err := svc.SearchMedicines(ctx, map[string]string{"status": StockLowStock}, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || items[0].Name != "Ibuprofen" {
		t.Errorf("expected only the low-stock medicine, got %d items", total)
	}

	_, total, err = svc.SearchMedicines(ctx, map[string]string{"status": StockExpired}, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 {
		t.Errorf("expected 1 expired, got %d", total)
	}
}

func TestStockCounts(t *testing.T) {
	svc := NewService(NewMemRepo(), nil)
	ctx := context.Background()

	for _, m := range []*Medicine{
		newMedicine("A", 500, 100),
		newMedicine("B", 500, 100),
		newMedicine("C", 50, 100),
		newMedicine("D", 0, 100),
	} {
		if err := svc.AddMedicine(ctx, m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	counts, err := svc.StockCounts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts[StockInStock] != 2 || counts[StockLowStock] != 1 || counts[StockOutOfStock] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
