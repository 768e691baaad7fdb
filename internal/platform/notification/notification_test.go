package notification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHub_RecordAndRecent(t *testing.T) {
	h := NewHub(10)
	h.Record("patient", "create", "Patient John Smith added", SeveritySuccess)
	h.Record("patient", "delete", "Patient John Smith removed", SeverityInfo)

	events := h.Recent(10)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	// Newest first
	if events[0].Action != "delete" {
		t.Errorf("expected newest event first, got %s", events[0].Action)
	}
	if events[1].Entity != "patient" || events[1].Severity != SeveritySuccess {
		t.Errorf("unexpected event: %+v", events[1])
	}
	if events[0].ID == events[1].ID {
		t.Error("expected distinct event ids")
	}
}

func TestHub_LimitDropsOldest(t *testing.T) {
	h := NewHub(3)
	for i := 0; i < 5; i++ {
		h.Record("lab_test", "update", "status change", SeverityInfo)
	}
	if got := len(h.Recent(10)); got != 3 {
		t.Errorf("expected hub to retain 3 events, got %d", got)
	}
}

func TestHub_Feed(t *testing.T) {
	h := NewHub(10)
	h.Record("invoice", "payment", "Payment recorded", SeveritySuccess)

	e := echo.New()
	h.RegisterRoutes(e.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var events []Event
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(events) != 1 || events[0].Entity != "invoice" {
		t.Errorf("unexpected feed: %+v", events)
	}
}

func TestDiscard(t *testing.T) {
	var r Recorder = Discard{}
	evt := r.Record("medicine", "dispense", "Dispensed 5 units", SeverityInfo)
	if evt.Entity != "medicine" {
		t.Errorf("unexpected event: %+v", evt)
	}
}
