package billing

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment statuses. Paid and partial are always derived from amounts;
// overdue and cancelled are explicit marks set by billing staff.
const (
	StatusPaid      = "paid"
	StatusPending   = "pending"
	StatusPartial   = "partial"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
)

// LineItem is one billed service or article on an invoice.
type LineItem struct {
	Description string          `db:"description" json:"description"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
}

// Amount returns quantity times unit price.
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Invoice maps to the invoices table. Subtotal, tax, total, balance and the
// payment status are all derived from the items, the paid amount and the
// mark; they are recomputed on every read and never stored.
//
// TaxRate is snapshotted from configuration when the invoice is issued so
// that a later rate change does not alter already-issued invoices.
type Invoice struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	PatientName   string          `db:"patient_name" json:"patient_name"`
	PatientID     uuid.UUID       `db:"patient_id" json:"patient_id"`
	Date          time.Time       `db:"date" json:"date"`
	DueDate       time.Time       `db:"due_date" json:"due_date"`
	Items         []LineItem      `db:"items" json:"items"`
	TaxRate       decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	Paid          decimal.Decimal `db:"paid" json:"paid"`
	Mark          string          `db:"mark" json:"-"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// Subtotal sums the line item amounts.
func (inv *Invoice) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range inv.Items {
		sum = sum.Add(li.Amount())
	}
	return sum
}

// Tax applies the invoice's snapshotted rate to the subtotal.
func (inv *Invoice) Tax() decimal.Decimal {
	return inv.Subtotal().Mul(inv.TaxRate)
}

// Total is subtotal plus tax.
func (inv *Invoice) Total() decimal.Decimal {
	return inv.Subtotal().Add(inv.Tax())
}

// Balance is the amount still owed, never negative.
func (inv *Invoice) Balance() decimal.Decimal {
	b := inv.Total().Sub(inv.Paid)
	if b.IsNegative() {
		return decimal.Zero
	}
	return b
}

// PaymentStatusOf derives the payment status. A cancelled mark wins
// outright; otherwise amounts decide between paid and partial, and an
// explicit overdue mark only shows while nothing has been paid. Overdue is
// never computed from the due date.
func PaymentStatusOf(inv *Invoice) string {
	if inv.Mark == StatusCancelled {
		return StatusCancelled
	}
	if inv.Paid.GreaterThanOrEqual(inv.Total()) {
		return StatusPaid
	}
	if inv.Paid.IsPositive() {
		return StatusPartial
	}
	if inv.Mark == StatusOverdue {
		return StatusOverdue
	}
	return StatusPending
}

// Status derives the current payment status.
func (inv *Invoice) Status() string {
	return PaymentStatusOf(inv)
}

// MarshalJSON includes every derived amount so consumers never recompute or
// see stale values.
func (inv Invoice) MarshalJSON() ([]byte, error) {
	type alias Invoice
	return json.Marshal(struct {
		alias
		Subtotal decimal.Decimal `json:"subtotal"`
		Tax      decimal.Decimal `json:"tax"`
		Total    decimal.Decimal `json:"total"`
		Balance  decimal.Decimal `json:"balance"`
		Status   string          `json:"status"`
	}{alias(inv), inv.Subtotal(), inv.Tax(), inv.Total(), inv.Balance(), inv.Status()})
}
