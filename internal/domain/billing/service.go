package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hms/hms/internal/platform/notification"
)

type Service struct {
	repo    Repository
	events  notification.Recorder
	taxRate decimal.Decimal
}

// NewService wires the billing service with the configured tax rate, which
// is snapshotted onto each invoice at issue time.
func NewService(repo Repository, events notification.Recorder, taxRate decimal.Decimal) *Service {
	if events == nil {
		events = notification.Discard{}
	}
	return &Service{repo: repo, events: events, taxRate: taxRate}
}

func validateItems(items []LineItem) error {
	if len(items) == 0 {
		return fmt.Errorf("invoice needs at least one line item")
	}
	for i, li := range items {
		if li.Description == "" {
			return fmt.Errorf("item %d: description is required", i+1)
		}
		if li.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be positive", i+1)
		}
		if li.UnitPrice.IsNegative() {
			return fmt.Errorf("item %d: unit price cannot be negative", i+1)
		}
	}
	return nil
}

// IssueInvoice creates a new invoice for a patient. Amounts start at zero
// paid; the configured tax rate is snapshotted onto the invoice.
func (s *Service) IssueInvoice(ctx context.Context, inv *Invoice) error {
	if inv.PatientName == "" {
		return fmt.Errorf("patient name is required")
	}
	if err := validateItems(inv.Items); err != nil {
		return err
	}
	inv.TaxRate = s.taxRate
	inv.Paid = decimal.Zero
	inv.Mark = ""
	if err := s.repo.Create(ctx, inv); err != nil {
		return err
	}
	s.events.Record("invoice", "issued",
		fmt.Sprintf("Invoice for %s issued, total %s", inv.PatientName, inv.Total().StringFixed(2)),
		notification.SeveritySuccess)
	return nil
}

func (s *Service) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateInvoice replaces the patient fields and line items. Payments and
// marks are managed through their own operations.
func (s *Service) UpdateInvoice(ctx context.Context, inv *Invoice) error {
	existing, err := s.repo.GetByID(ctx, inv.ID)
	if err != nil {
		return err
	}
	if existing.Status() == StatusCancelled {
		return fmt.Errorf("cannot edit a cancelled invoice")
	}
	if err := validateItems(inv.Items); err != nil {
		return err
	}
	inv.TaxRate = existing.TaxRate
	inv.Paid = existing.Paid
	inv.Mark = existing.Mark
	if err := s.repo.Update(ctx, inv); err != nil {
		return err
	}
	s.events.Record("invoice", "updated",
		fmt.Sprintf("Invoice for %s updated", inv.PatientName), notification.SeverityInfo)
	return nil
}

// RecordPayment applies a payment to the invoice. Payments above the
// outstanding balance are clamped; the returned amount is what was actually
// applied.
func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal, method string) (*Invoice, decimal.Decimal, error) {
	if !amount.IsPositive() {
		return nil, decimal.Zero, fmt.Errorf("payment amount must be positive")
	}
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	switch inv.Status() {
	case StatusCancelled:
		return nil, decimal.Zero, fmt.Errorf("cannot pay a cancelled invoice")
	case StatusPaid:
		return nil, decimal.Zero, fmt.Errorf("invoice is already settled")
	}

	applied := amount
	if balance := inv.Balance(); applied.GreaterThan(balance) {
		applied = balance
	}
	inv.Paid = inv.Paid.Add(applied)
	if method != "" {
		inv.PaymentMethod = method
	}
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, decimal.Zero, err
	}

	msg := fmt.Sprintf("Payment of %s recorded for %s", applied.StringFixed(2), inv.PatientName)
	if inv.Status() == StatusPaid {
		msg += "; invoice settled"
	}
	s.events.Record("invoice", "payment", msg, notification.SeveritySuccess)
	return inv, applied, nil
}

// MarkOverdue flags an unpaid invoice as overdue. The flag is explicit;
// nothing transitions on the due date by itself.
func (s *Service) MarkOverdue(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st := inv.Status(); st != StatusPending {
		return nil, fmt.Errorf("only a pending invoice can be marked overdue, status is %q", st)
	}
	inv.Mark = StatusOverdue
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	s.events.Record("invoice", "overdue",
		fmt.Sprintf("Invoice for %s marked overdue", inv.PatientName), notification.SeverityWarning)
	return inv, nil
}

// CancelInvoice voids the invoice. Cancelled is terminal.
func (s *Service) CancelInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status() == StatusCancelled {
		return nil, fmt.Errorf("invoice is already cancelled")
	}
	inv.Mark = StatusCancelled
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	s.events.Record("invoice", "cancelled",
		fmt.Sprintf("Invoice for %s cancelled", inv.PatientName), notification.SeverityWarning)
	return inv, nil
}

func (s *Service) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Record("invoice", "deleted",
		fmt.Sprintf("Invoice for %s removed", inv.PatientName), notification.SeverityWarning)
	return nil
}

// SearchInvoices filters invoices. The "status" param filters on the
// derived payment status and is applied here, after the repository filters.
func (s *Service) SearchInvoices(ctx context.Context, params map[string]string, limit, offset int) ([]*Invoice, int, error) {
	status := params["status"]
	if status == "" {
		return s.repo.Search(ctx, params, limit, offset)
	}

	repoParams := make(map[string]string, len(params))
	for k, v := range params {
		if k != "status" {
			repoParams[k] = v
		}
	}
	all, _, err := s.repo.Search(ctx, repoParams, 0, 0)
	if err != nil {
		return nil, 0, err
	}
	var filtered []*Invoice
	for _, inv := range all {
		if inv.Status() == status {
			filtered = append(filtered, inv)
		}
	}
	total := len(filtered)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if limit <= 0 || end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

// Summary aggregates revenue across all invoices.
type Summary struct {
	InvoiceCount int             `json:"invoice_count"`
	Billed       decimal.Decimal `json:"billed"`
	Collected    decimal.Decimal `json:"collected"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	ByStatus     map[string]int  `json:"by_status"`
}

// Summarize tallies every non-cancelled invoice. Used by the dashboard and
// the financial report.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	all, _, err := s.repo.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	sum := &Summary{
		Billed:      decimal.Zero,
		Collected:   decimal.Zero,
		Outstanding: decimal.Zero,
		ByStatus:    make(map[string]int),
	}
	for _, inv := range all {
		st := inv.Status()
		sum.ByStatus[st]++
		if st == StatusCancelled {
			continue
		}
		sum.InvoiceCount++
		sum.Billed = sum.Billed.Add(inv.Total())
		sum.Collected = sum.Collected.Add(inv.Paid)
		sum.Outstanding = sum.Outstanding.Add(inv.Balance())
	}
	return sum, nil
}
