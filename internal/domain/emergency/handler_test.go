package emergency

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

func TestHandler_AdmitCase(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"John Doe","age":45,"condition":"Chest pain","symptoms":["chest pain"],` +
		`"triage":"Red","vitals":{"bp":"140/90","hr":110,"spo2":94}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/emergency", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.AdmitCase(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var out Case
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Status != StatusWaiting || out.Vitals.HR != 110 {
		t.Errorf("unexpected case: %+v", out)
	}
}

func TestHandler_AdmitCase_BadVitals(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"X","condition":"Y","triage":"Green","vitals":{"hr":10}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/emergency", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.AdmitCase(c); err == nil {
		t.Error("expected error for out-of-range heart rate")
	}
}

func TestHandler_Queue(t *testing.T) {
	h, e := newTestHandler()
	ctx := context.Background()

	red := &Case{Name: "Urgent", Condition: "Trauma", Triage: TriageRed}
	green := &Case{Name: "Minor", Condition: "Sprain", Triage: TriageGreen}
	for _, cs := range []*Case{green, red} {
		if err := h.svc.AdmitCase(ctx, cs); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/emergency/queue", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Queue(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out []*Case
	json.Unmarshal(rec.Body.Bytes(), &out)
	if len(out) != 2 || out[0].Triage != TriageRed {
		t.Errorf("unexpected queue: %+v", out)
	}
}

func TestHandler_AssignCase(t *testing.T) {
	h, e := newTestHandler()

	cs := &Case{Name: "John", Condition: "Burn", Triage: TriageOrange}
	if err := h.svc.AdmitCase(context.Background(), cs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := `{"assigned_to":"Dr. Chen"}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(cs.ID.String())

	if err := h.AssignCase(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out Case
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out.AssignedTo != "Dr. Chen" || out.Status != StatusInTreatment {
		t.Errorf("unexpected case: %+v", out)
	}
}
