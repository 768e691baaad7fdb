package scheduling

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(NewService(NewMemRepo(), nil))
	e := echo.New()
	return h, e
}

func TestHandler_BookAppointment(t *testing.T) {
	h, e := newTestHandler()

	body := `{"patient_name":"Sarah Johnson","doctor":"Dr. Emma Wilson","type":"Consultation",` +
		`"date":"2026-09-15","time":"09:30","duration":30,"is_online":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.BookAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var a Appointment
	json.Unmarshal(rec.Body.Bytes(), &a)
	if a.Status != StatusPending || !a.IsOnline {
		t.Errorf("unexpected appointment: %+v", a)
	}
}

func TestHandler_ConfirmAppointment_Conflict(t *testing.T) {
	h, e := newTestHandler()

	a := &Appointment{PatientName: "X", Doctor: "Y", Date: "2026-09-15", Time: "10:00", Duration: 20}
	if err := h.svc.BookAppointment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := h.svc.ConfirmAppointment(context.Background(), a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	err := h.ConfirmAppointment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestHandler_ListAppointments_FilterByDoctor(t *testing.T) {
	h, e := newTestHandler()
	ctx := context.Background()

	for _, a := range []*Appointment{
		{PatientName: "A", Doctor: "Dr. Wilson", Date: "2026-09-15", Time: "09:00", Duration: 30},
		{PatientName: "B", Doctor: "Dr. Chen", Date: "2026-09-15", Time: "10:00", Duration: 30},
	} {
		if err := h.svc.BookAppointment(ctx, a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments?doctor=Dr.+Chen", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListAppointments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Data  []*Appointment `json:"data"`
		Total int            `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 || resp.Data[0].PatientName != "B" {
		t.Errorf("unexpected response: %+v", resp)
	}
}
