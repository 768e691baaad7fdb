package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(NewService(NewMemRepo(), nil))
	e := echo.New()
	return h, e
}

func TestHandler_CreatePatient(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"Sarah Johnson","age":34,"gender":"Female","department":"Cardiology"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var p Patient
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.Name != "Sarah Johnson" || p.Status != StatusStable {
		t.Errorf("unexpected patient: %+v", p)
	}
}

func TestHandler_CreatePatient_BadRequest(t *testing.T) {
	h, e := newTestHandler()

	body := `{"age":34}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreatePatient(c); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestHandler_GetPatient_NotFound(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.GetPatient(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_ListPatients_Filtered(t *testing.T) {
	h, e := newTestHandler()
	ctx := context.Background()

	for _, p := range []*Patient{
		{Name: "Sarah Johnson", Age: 34, Department: "Cardiology"},
		{Name: "Mike Peterson", Age: 45, Department: "Neurology"},
	} {
		if err := h.svc.CreatePatient(ctx, p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients?department=Cardiology", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Data  []*Patient `json:"data"`
		Total int        `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 || resp.Data[0].Department != "Cardiology" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandler_DischargePatient(t *testing.T) {
	h, e := newTestHandler()

	p := &Patient{Name: "Ahmed Ali", Age: 52, Status: StatusInTreatment}
	if err := h.svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.DischargePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out Patient
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Status != StatusDischarged {
		t.Errorf("expected discharged, got %q", out.Status)
	}
}

func TestHandler_DeletePatient(t *testing.T) {
	h, e := newTestHandler()

	p := &Patient{Name: "Temp", Age: 20}
	if err := h.svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.DeletePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if _, err := h.svc.GetPatient(context.Background(), p.ID); err == nil {
		t.Error("expected patient to be gone")
	}
}
