package staff

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

func TestHandler_CreateDoctor(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"Dr. Emma Wilson","specialization":"Cardiology","rating":4.8,"experience":12}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var d Doctor
	json.Unmarshal(rec.Body.Bytes(), &d)
	if d.Availability != AvailabilityAvailable {
		t.Errorf("expected default availability, got %q", d.Availability)
	}
}

func TestHandler_CreateDoctor_InvalidRating(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"Dr. X","specialization":"Y","rating":9}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateDoctor(c); err == nil {
		t.Error("expected error for out-of-range rating")
	}
}

func TestHandler_SetAvailability(t *testing.T) {
	h, e := newTestHandler()

	d := &Doctor{Name: "Dr. James Chen", Specialization: "Neurology"}
	if err := h.svc.CreateDoctor(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := `{"availability":"In Surgery"}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(d.ID.String())

	if err := h.SetAvailability(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out Doctor
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Availability != AvailabilityInSurgery {
		t.Errorf("expected %q, got %q", AvailabilityInSurgery, out.Availability)
	}
}

func TestHandler_ListDoctors_FilterAvailability(t *testing.T) {
	h, e := newTestHandler()
	ctx := context.Background()

	for _, d := range []*Doctor{
		{Name: "Dr. A", Specialization: "X"},
		{Name: "Dr. B", Specialization: "Y", Availability: AvailabilityOnLeave},
	} {
		if err := h.svc.CreateDoctor(ctx, d); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors?availability=On+Leave", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListDoctors(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Data  []*Doctor `json:"data"`
		Total int       `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 || resp.Data[0].Name != "Dr. B" {
		t.Errorf("unexpected response: %+v", resp)
	}
}
