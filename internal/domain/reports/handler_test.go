package reports

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/department"
	"github.com/hms/hms/internal/domain/emergency"
	"github.com/hms/hms/internal/domain/laboratory"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/pharmacy"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/domain/staff"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(
		patient.NewService(patient.NewMemRepo(), nil),
		staff.NewService(staff.NewMemRepo(), nil),
		scheduling.NewService(scheduling.NewMemRepo(), nil),
		department.NewService(department.NewMemRepo(), nil),
		emergency.NewService(emergency.NewMemRepo(), nil),
		pharmacy.NewService(pharmacy.NewMemRepo(), nil),
		laboratory.NewService(laboratory.NewMemRepo(), nil),
		billing.NewService(billing.NewMemRepo(), nil, decimal.NewFromFloat(0.10)),
	)
	return h, echo.New()
}

func TestHandler_Dashboard(t *testing.T) {
	h, e := newTestHandler()
	ctx := context.Background()

	if err := h.patients.CreatePatient(ctx, &patient.Patient{Name: "Sarah Johnson", Age: 34}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.doctors.CreateDoctor(ctx, &staff.Doctor{Name: "Emily Carter", Specialization: "Cardiology", Department: "Cardiology"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.appointments.BookAppointment(ctx, &scheduling.Appointment{
		PatientName: "Sarah Johnson",
		Doctor:      "Emily Carter",
		Type:        scheduling.TypeConsultation,
		Date:        time.Now().Format("2006-01-02"),
		Time:        "09:30",
		Duration:    30,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.emergencies.AdmitCase(ctx, &emergency.Case{
		Name:      "Mike Peterson",
		Condition: "Chest pain",
		Triage:    emergency.TriageRed,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.tests.RequestTest(ctx, &laboratory.Test{
		PatientName: "Sarah Johnson",
		TestType:    "Complete Blood Count",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.medicines.AddMedicine(ctx, &pharmacy.Medicine{
		Name: "Paracetamol", Category: "Analgesic", Quantity: 500, ReorderLevel: 50,
		UnitPrice:  decimal.NewFromFloat(0.25),
		ExpiryDate: time.Now().AddDate(1, 0, 0),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.departments.CreateDepartment(ctx, &department.Department{
		Name: "Cardiology", Head: "Dr. Adams", TotalBeds: 40, OccupiedBeds: 30,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.invoices.IssueInvoice(ctx, &billing.Invoice{
		PatientName: "Sarah Johnson",
		Date:        time.Now(),
		DueDate:     time.Now().AddDate(0, 0, 30),
		Items:       []billing.LineItem{{Description: "Consultation", Quantity: 1, UnitPrice: decimal.NewFromInt(50)}},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out Dashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.PatientsByStatus[patient.StatusStable] != 1 {
		t.Errorf("expected 1 stable patient, got %v", out.PatientsByStatus)
	}
	if out.AvailableDoctors != 1 {
		t.Errorf("expected 1 available doctor, got %d", out.AvailableDoctors)
	}
	if out.AppointmentsToday != 1 {
		t.Errorf("expected 1 appointment today, got %d", out.AppointmentsToday)
	}
	if out.CriticalCases != 1 {
		t.Errorf("expected 1 critical case, got %d", out.CriticalCases)
	}
	if out.PendingLabTests != 1 {
		t.Errorf("expected 1 pending lab test, got %d", out.PendingLabTests)
	}
	if out.MedicineStock[pharmacy.StockInStock] != 1 {
		t.Errorf("expected 1 in-stock medicine, got %v", out.MedicineStock)
	}
	if out.Beds == nil || out.Beds.OccupiedBeds != 30 || out.Beds.TotalBeds != 40 {
		t.Errorf("unexpected bed summary %+v", out.Beds)
	}
	if out.Billing == nil || out.Billing.InvoiceCount != 1 {
		t.Errorf("unexpected billing summary %+v", out.Billing)
	}
}

func TestHandler_ExportPatientsCSV(t *testing.T) {
	h, e := newTestHandler()
	ctx := context.Background()

	for _, p := range []*patient.Patient{
		{Name: "Sarah Johnson", Age: 34, Gender: "Female", Department: "Cardiology"},
		{Name: "Mike Peterson", Age: 51, Gender: "Male", Department: "Neurology"},
	} {
		if err := h.patients.CreatePatient(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/patients?format=csv", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("dataset")
	c.SetParamValues("patients")

	if err := h.Export(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "patients-") ||
		!strings.Contains(cd, ".csv") {
		t.Errorf("unexpected content disposition %q", cd)
	}
	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID,Name,Age") {
		t.Errorf("unexpected header line %q", lines[0])
	}
}

func TestHandler_ExportRespectsFilters(t *testing.T) {
	h, e := newTestHandler()
	ctx := context.Background()

	for _, p := range []*patient.Patient{
		{Name: "Sarah Johnson", Age: 34, Department: "Cardiology"},
		{Name: "Mike Peterson", Age: 51, Department: "Neurology"},
	} {
		if err := h.patients.CreatePatient(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/patients?department=Cardiology", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("dataset")
	c.SetParamValues("patients")

	if err := h.Export(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Sarah Johnson") || strings.Contains(body, "Mike Peterson") {
		t.Errorf("filter not applied to export:\n%s", body)
	}
}

func TestHandler_ExportUnknownDataset(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/widgets", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("dataset")
	c.SetParamValues("widgets")

	err := h.Export(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_ExportBadFormat(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/patients?format=pdf", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("dataset")
	c.SetParamValues("patients")

	err := h.Export(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_InvoiceReport(t *testing.T) {
	h, e := newTestHandler()

	inv := &billing.Invoice{
		PatientName: "Sarah Johnson",
		Date:        time.Now(),
		DueDate:     time.Now().AddDate(0, 0, 30),
		Items: []billing.LineItem{
			{Description: "Consultation", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
			{Description: "Blood test", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	}
	if err := h.invoices.IssueInvoice(context.Background(), inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(inv.ID.String())

	if err := h.InvoiceReport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := rec.Body.String()
	for _, want := range []string{"<!DOCTYPE html>", "Sarah Johnson", "27.50", "RPT-"} {
		if !strings.Contains(body, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestHandler_DepartmentReport(t *testing.T) {
	h, e := newTestHandler()

	d := &department.Department{Name: "Cardiology", Head: "Dr. Adams", TotalBeds: 40, OccupiedBeds: 30}
	if err := h.departments.CreateDepartment(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.DepartmentReport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "75.0%") {
		t.Errorf("expected occupancy percentage in report")
	}
}
