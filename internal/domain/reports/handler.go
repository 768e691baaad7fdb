package reports

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/department"
	"github.com/hms/hms/internal/domain/emergency"
	"github.com/hms/hms/internal/domain/laboratory"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/pharmacy"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/export"
)

type Handler struct {
	patients     *patient.Service
	doctors      *staff.Service
	appointments *scheduling.Service
	departments  *department.Service
	emergencies  *emergency.Service
	medicines    *pharmacy.Service
	tests        *laboratory.Service
	invoices     *billing.Service
}

func NewHandler(
	patients *patient.Service,
	doctors *staff.Service,
	appointments *scheduling.Service,
	departments *department.Service,
	emergencies *emergency.Service,
	medicines *pharmacy.Service,
	tests *laboratory.Service,
	invoices *billing.Service,
) *Handler {
	return &Handler{
		patients:     patients,
		doctors:      doctors,
		appointments: appointments,
		departments:  departments,
		emergencies:  emergencies,
		medicines:    medicines,
		tests:        tests,
		invoices:     invoices,
	}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "receptionist", "accountant")

	g := api.Group("", role)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/exports/:dataset", h.Export)
	g.GET("/reports/financial", h.FinancialReport)
	g.GET("/reports/departments", h.DepartmentReport)
	g.GET("/reports/invoices/:id", h.InvoiceReport)
}

// Dashboard aggregates the headline numbers every domain contributes to the
// landing screen.
type Dashboard struct {
	PatientsByStatus  map[string]int         `json:"patients_by_status"`
	AvailableDoctors  int                    `json:"available_doctors"`
	AppointmentsToday int                    `json:"appointments_today"`
	CriticalCases     int                    `json:"critical_cases"`
	PendingLabTests   int                    `json:"pending_lab_tests"`
	MedicineStock     map[string]int         `json:"medicine_stock"`
	Beds              *department.BedSummary `json:"beds"`
	Billing           *billing.Summary       `json:"billing"`
}

func (h *Handler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	out := &Dashboard{}
	var err error

	if out.PatientsByStatus, err = h.patients.CountByStatus(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if out.AvailableDoctors, err = h.doctors.CountAvailable(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	today := time.Now().Format("2006-01-02")
	if out.AppointmentsToday, err = h.appointments.CountForDate(ctx, today); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if out.CriticalCases, err = h.emergencies.CountCritical(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if out.PendingLabTests, err = h.tests.CountPending(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if out.MedicineStock, err = h.medicines.StockCounts(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if out.Beds, err = h.departments.Beds(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if out.Billing, err = h.invoices.Summarize(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

// Export streams one dataset as csv, json or xlsx. Filters apply the same
// way they do on the dataset's list endpoint, so a filtered view downloads
// exactly what it shows.
func (h *Handler) Export(c echo.Context) error {
	dataset := c.Param("dataset")
	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}
	mime, err := contentType(format)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	table, err := h.buildTable(c, dataset)
	if err != nil {
		if _, ok := err.(*echo.HTTPError); ok {
			return err
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	name := export.Filename(dataset, time.Now().Format("2006-01-02"), format)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", name))

	switch format {
	case "csv":
		return c.Blob(http.StatusOK, mime, []byte(export.CSV(table)))
	case "json":
		body, err := export.JSON(table)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.Blob(http.StatusOK, mime, []byte(body))
	default:
		buf, err := export.Excel(table)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.Blob(http.StatusOK, mime, buf.Bytes())
	}
}

func (h *Handler) buildTable(c echo.Context, dataset string) (export.Table, error) {
	ctx := c.Request().Context()
	params := db.ExtractFilters(c)
	delete(params, "format")

	switch dataset {
	case "patients":
		items, _, err := h.patients.SearchPatients(ctx, params, 0, 0)
		if err != nil {
			return export.Table{}, err
		}
		return patientTable(items), nil
	case "doctors":
		items, _, err := h.doctors.SearchDoctors(ctx, params, 0, 0)
		if err != nil {
			return export.Table{}, err
		}
		return doctorTable(items), nil
	case "appointments":
		items, _, err := h.appointments.SearchAppointments(ctx, params, 0, 0)
		if err != nil {
			return export.Table{}, err
		}
		return appointmentTable(items), nil
	case "medicines":
		items, _, err := h.medicines.SearchMedicines(ctx, params, 0, 0)
		if err != nil {
			return export.Table{}, err
		}
		return medicineTable(items), nil
	case "lab-tests":
		items, _, err := h.tests.SearchTests(ctx, params, 0, 0)
		if err != nil {
			return export.Table{}, err
		}
		return labTestTable(items), nil
	case "invoices":
		items, _, err := h.invoices.SearchInvoices(ctx, params, 0, 0)
		if err != nil {
			return export.Table{}, err
		}
		return invoiceTable(items), nil
	default:
		return export.Table{}, echo.NewHTTPError(http.StatusNotFound,
			fmt.Sprintf("unknown dataset %q", dataset))
	}
}

// InvoiceReport renders the printable invoice document.
func (h *Handler) InvoiceReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	inv, err := h.invoices.GetInvoice(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "invoice not found")
	}
	html, err := export.InvoiceHTML(invoiceDocument(inv))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, html)
}

// FinancialReport renders the billing summary document.
func (h *Handler) FinancialReport(c echo.Context) error {
	sum, err := h.invoices.Summarize(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	html, err := export.FinancialSummaryHTML(financialSummary(sum))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, html)
}

// DepartmentReport renders the bed occupancy document.
func (h *Handler) DepartmentReport(c echo.Context) error {
	items, _, err := h.departments.SearchDepartments(c.Request().Context(), nil, 0, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	rows := make([]export.DepartmentOccupancy, 0, len(items))
	for _, d := range items {
		rows = append(rows, export.DepartmentOccupancy{
			Name:             d.Name,
			Head:             d.Head,
			TotalBeds:        d.TotalBeds,
			OccupiedBeds:     d.OccupiedBeds,
			OccupancyPercent: d.OccupancyPct(),
		})
	}
	html, err := export.DepartmentReportHTML(rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTML(http.StatusOK, html)
}
