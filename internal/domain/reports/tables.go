// Package reports exposes the download and printable-report endpoints. It
// reads through the domain services and hands export the tabular shapes.
package reports

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/laboratory"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/pharmacy"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/platform/export"
)

func patientTable(items []*patient.Patient) export.Table {
	t := export.Table{
		Title:   "Patients",
		Headers: []string{"ID", "Name", "Age", "Gender", "Blood Type", "Department", "Status", "Phone", "Email"},
	}
	for _, p := range items {
		t.Rows = append(t.Rows, []string{
			p.ID.String(), p.Name, strconv.Itoa(p.Age), p.Gender,
			p.BloodType, p.Department, p.Status, p.Phone, p.Email,
		})
	}
	return t
}

func doctorTable(items []*staff.Doctor) export.Table {
	t := export.Table{
		Title:   "Doctors",
		Headers: []string{"ID", "Name", "Specialization", "Department", "Experience", "Rating", "Patients", "Availability"},
	}
	for _, d := range items {
		t.Rows = append(t.Rows, []string{
			d.ID.String(), d.Name, d.Specialization, d.Department,
			strconv.Itoa(d.Experience), strconv.FormatFloat(d.Rating, 'f', 1, 64),
			strconv.Itoa(d.PatientCount), d.Availability,
		})
	}
	return t
}

func appointmentTable(items []*scheduling.Appointment) export.Table {
	t := export.Table{
		Title:   "Appointments",
		Headers: []string{"ID", "Patient", "Doctor", "Type", "Date", "Time", "Duration", "Online", "Status"},
	}
	for _, a := range items {
		t.Rows = append(t.Rows, []string{
			a.ID.String(), a.PatientName, a.Doctor, a.Type, a.Date, a.Time,
			strconv.Itoa(a.Duration), strconv.FormatBool(a.IsOnline), a.Status,
		})
	}
	return t
}

func medicineTable(items []*pharmacy.Medicine) export.Table {
	t := export.Table{
		Title:   "Medicines",
		Headers: []string{"ID", "Name", "Generic Name", "Category", "Batch", "Expiry", "Quantity", "Reorder Level", "Unit Price", "Status"},
	}
	for _, m := range items {
		t.Rows = append(t.Rows, []string{
			m.ID.String(), m.Name, m.GenericName, m.Category, m.BatchNumber,
			m.ExpiryDate.Format("2006-01-02"), strconv.Itoa(m.Quantity),
			strconv.Itoa(m.ReorderLevel), m.UnitPrice.StringFixed(2), m.Status(),
		})
	}
	return t
}

func labTestTable(items []*laboratory.Test) export.Table {
	t := export.Table{
		Title:   "Lab Tests",
		Headers: []string{"ID", "Patient", "Test Type", "Category", "Requested By", "Request Date", "Priority", "Status", "Result"},
	}
	for _, lt := range items {
		t.Rows = append(t.Rows, []string{
			lt.ID.String(), lt.PatientName, lt.TestType, lt.Category,
			lt.RequestedBy, lt.RequestDate.Format("2006-01-02"),
			lt.Priority, lt.Status, lt.Result,
		})
	}
	return t
}

func invoiceTable(items []*billing.Invoice) export.Table {
	t := export.Table{
		Title:   "Invoices",
		Headers: []string{"Invoice", "Patient", "Date", "Due Date", "Total", "Paid", "Balance", "Status"},
	}
	for _, inv := range items {
		t.Rows = append(t.Rows, []string{
			invoiceNumber(inv), inv.PatientName,
			inv.Date.Format("2006-01-02"), inv.DueDate.Format("2006-01-02"),
			inv.Total().StringFixed(2), inv.Paid.StringFixed(2),
			inv.Balance().StringFixed(2), inv.Status(),
		})
	}
	return t
}

// invoiceNumber derives the human-facing invoice number from the record id.
func invoiceNumber(inv *billing.Invoice) string {
	return "INV-" + strings.ToUpper(inv.ID.String()[:8])
}

func invoiceDocument(inv *billing.Invoice) export.InvoiceDocument {
	doc := export.InvoiceDocument{
		Number:        invoiceNumber(inv),
		PatientName:   inv.PatientName,
		PatientID:     inv.PatientID.String(),
		Date:          inv.Date,
		DueDate:       inv.DueDate,
		Subtotal:      inv.Subtotal().InexactFloat64(),
		Tax:           inv.Tax().InexactFloat64(),
		Total:         inv.Total().InexactFloat64(),
		Paid:          inv.Paid.InexactFloat64(),
		BalanceDue:    inv.Balance().InexactFloat64(),
		Status:        inv.Status(),
		PaymentMethod: inv.PaymentMethod,
	}
	for _, li := range inv.Items {
		doc.Items = append(doc.Items, export.InvoiceLine{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice.InexactFloat64(),
			Amount:      li.Amount().InexactFloat64(),
		})
	}
	return doc
}

func financialSummary(sum *billing.Summary) export.FinancialSummary {
	out := export.FinancialSummary{
		InvoiceCount: sum.InvoiceCount,
		TotalBilled:  sum.Billed.InexactFloat64(),
		TotalPaid:    sum.Collected.InexactFloat64(),
		Outstanding:  sum.Outstanding.InexactFloat64(),
	}
	// Stable status order for the rendered table.
	for _, st := range []string{
		billing.StatusPaid, billing.StatusPartial, billing.StatusPending,
		billing.StatusOverdue, billing.StatusCancelled,
	} {
		if n, ok := sum.ByStatus[st]; ok {
			out.ByStatus = append(out.ByStatus, export.StatusCount{Status: st, Count: n})
		}
	}
	return out
}

// contentType maps an export format to its MIME type.
func contentType(format string) (string, error) {
	switch format {
	case "csv":
		return "text/csv", nil
	case "json":
		return "application/json", nil
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}
