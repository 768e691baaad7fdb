package export

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"
)

// ReportID generates a report identifier from the current time,
// e.g. RPT-LX2C91A4.
func ReportID() string {
	return "RPT-" + strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
}

const documentShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: 'Segoe UI', Arial, sans-serif; margin: 40px; color: #1a202c; }
h1 { font-size: 22px; border-bottom: 2px solid #2b6cb0; padding-bottom: 8px; }
h2 { font-size: 16px; color: #2b6cb0; }
table { width: 100%; border-collapse: collapse; margin: 16px 0; }
th, td { border: 1px solid #cbd5e0; padding: 8px 12px; text-align: left; font-size: 13px; }
th { background: #ebf8ff; }
.meta { color: #718096; font-size: 12px; }
.totals td { font-weight: bold; background: #f7fafc; }
.status-paid, .status-in-stock, .status-completed { color: #276749; font-weight: bold; }
.status-partial, .status-low-stock, .status-pending { color: #975a16; font-weight: bold; }
.status-overdue, .status-out-of-stock, .status-expired, .status-cancelled { color: #9b2c2c; font-weight: bold; }
@media print { body { margin: 12px; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Report {{.ReportID}} &middot; Generated {{.Generated}}</p>
{{.Body}}
</body>
</html>`

var shellTmpl = template.Must(template.New("shell").Parse(documentShell))

// HTMLReport wraps a content fragment in a full printable document with
// embedded styles, a generated report id and the current date.
func HTMLReport(title string, fragment template.HTML) (string, error) {
	var b strings.Builder
	err := shellTmpl.Execute(&b, map[string]interface{}{
		"Title":     title,
		"ReportID":  ReportID(),
		"Generated": time.Now().Format("Jan 2, 2006 15:04"),
		"Body":      fragment,
	})
	if err != nil {
		return "", fmt.Errorf("render report shell: %w", err)
	}
	return b.String(), nil
}

// InvoiceLine is one billable line on an invoice document.
type InvoiceLine struct {
	Description string
	Quantity    int
	UnitPrice   float64
	Amount      float64
}

// InvoiceDocument carries everything the invoice report needs.
type InvoiceDocument struct {
	Number        string
	PatientName   string
	PatientID     string
	Date          time.Time
	DueDate       time.Time
	Items         []InvoiceLine
	Subtotal      float64
	Tax           float64
	Total         float64
	Paid          float64
	BalanceDue    float64
	Status        string
	PaymentMethod string
}

const invoiceFragment = `<h2>Invoice {{.Number}}</h2>
<p>Patient: {{.PatientName}} ({{.PatientID}})<br>
Date: {{.Date.Format "2006-01-02"}} &middot; Due: {{.DueDate.Format "2006-01-02"}}<br>
Status: <span class="status-{{.Status}}">{{.Status}}</span>{{if .PaymentMethod}} &middot; {{.PaymentMethod}}{{end}}</p>
<table>
<tr><th>Description</th><th>Qty</th><th>Unit Price</th><th>Amount</th></tr>
{{range .Items}}<tr><td>{{.Description}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .UnitPrice}}</td><td>{{printf "%.2f" .Amount}}</td></tr>
{{end}}<tr class="totals"><td colspan="3">Subtotal</td><td>{{printf "%.2f" .Subtotal}}</td></tr>
<tr class="totals"><td colspan="3">Tax</td><td>{{printf "%.2f" .Tax}}</td></tr>
<tr class="totals"><td colspan="3">Total</td><td>{{printf "%.2f" .Total}}</td></tr>
<tr class="totals"><td colspan="3">Paid</td><td>{{printf "%.2f" .Paid}}</td></tr>
<tr class="totals"><td colspan="3">Balance Due</td><td>{{printf "%.2f" .BalanceDue}}</td></tr>
</table>`

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceFragment))

// InvoiceHTML renders a complete printable invoice document.
func InvoiceHTML(doc InvoiceDocument) (string, error) {
	var b strings.Builder
	if err := invoiceTmpl.Execute(&b, doc); err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}
	return HTMLReport("Invoice "+doc.Number, template.HTML(b.String()))
}

// StatusCount is one status bucket in a summary.
type StatusCount struct {
	Status string
	Count  int
}

// FinancialSummary aggregates invoice totals for the financial report.
type FinancialSummary struct {
	InvoiceCount int
	TotalBilled  float64
	TotalPaid    float64
	Outstanding  float64
	ByStatus     []StatusCount
}

const financialFragment = `<h2>Financial Summary</h2>
<table>
<tr><th>Invoices</th><th>Total Billed</th><th>Total Collected</th><th>Outstanding</th></tr>
<tr><td>{{.InvoiceCount}}</td><td>{{printf "%.2f" .TotalBilled}}</td><td>{{printf "%.2f" .TotalPaid}}</td><td>{{printf "%.2f" .Outstanding}}</td></tr>
</table>
<h2>Invoices by Status</h2>
<table>
<tr><th>Status</th><th>Count</th></tr>
{{range .ByStatus}}<tr><td><span class="status-{{.Status}}">{{.Status}}</span></td><td>{{.Count}}</td></tr>
{{end}}</table>`

var financialTmpl = template.Must(template.New("financial").Parse(financialFragment))

// FinancialSummaryHTML renders the financial summary document.
func FinancialSummaryHTML(s FinancialSummary) (string, error) {
	var b strings.Builder
	if err := financialTmpl.Execute(&b, s); err != nil {
		return "", fmt.Errorf("render financial summary: %w", err)
	}
	return HTMLReport("Financial Summary", template.HTML(b.String()))
}

// DepartmentOccupancy is one department row in the occupancy report.
type DepartmentOccupancy struct {
	Name             string
	Head             string
	TotalBeds        int
	OccupiedBeds     int
	OccupancyPercent float64
}

const departmentFragment = `<h2>Department Occupancy</h2>
<table>
<tr><th>Department</th><th>Head</th><th>Beds</th><th>Occupied</th><th>Occupancy</th></tr>
{{range .}}<tr><td>{{.Name}}</td><td>{{.Head}}</td><td>{{.TotalBeds}}</td><td>{{.OccupiedBeds}}</td><td>{{printf "%.1f" .OccupancyPercent}}%</td></tr>
{{end}}</table>`

var departmentTmpl = template.Must(template.New("department").Parse(departmentFragment))

// DepartmentReportHTML renders the department occupancy document.
func DepartmentReportHTML(rows []DepartmentOccupancy) (string, error) {
	var b strings.Builder
	if err := departmentTmpl.Execute(&b, rows); err != nil {
		return "", fmt.Errorf("render department report: %w", err)
	}
	return HTMLReport("Department Report", template.HTML(b.String()))
}
