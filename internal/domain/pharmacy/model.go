package pharmacy

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock statuses, derived from quantity, reorder level and expiry. Never
// stored or accepted as input.
const (
	StockInStock    = "in-stock"
	StockLowStock   = "low-stock"
	StockOutOfStock = "out-of-stock"
	StockExpired    = "expired"
)

// StockStatusOf derives the stock status at the given instant. An expired
// batch is reported expired regardless of quantity.
func StockStatusOf(m *Medicine, now time.Time) string {
	if !m.ExpiryDate.IsZero() && m.ExpiryDate.Before(now) {
		return StockExpired
	}
	switch {
	case m.Quantity == 0:
		return StockOutOfStock
	case m.Quantity <= m.ReorderLevel:
		return StockLowStock
	default:
		return StockInStock
	}
}

// Medicine maps to the medicines table.
type Medicine struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	GenericName  string          `db:"generic_name" json:"generic_name"`
	Category     string          `db:"category" json:"category"`
	Manufacturer string          `db:"manufacturer" json:"manufacturer"`
	BatchNumber  string          `db:"batch_number" json:"batch_number"`
	ExpiryDate   time.Time       `db:"expiry_date" json:"expiry_date"`
	Quantity     int             `db:"quantity" json:"quantity"`
	ReorderLevel int             `db:"reorder_level" json:"reorder_level"`
	UnitPrice    decimal.Decimal `db:"unit_price" json:"unit_price"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Status derives the current stock status.
func (m *Medicine) Status() string {
	return StockStatusOf(m, time.Now())
}

// MarshalJSON includes the derived status so consumers never see a stale
// stored value.
func (m Medicine) MarshalJSON() ([]byte, error) {
	type alias Medicine
	return json.Marshal(struct {
		alias
		Status string `json:"status"`
	}{alias(m), m.Status()})
}
