package pharmacy

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
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(NewService(NewMemRepo(), nil))
	e := echo.New()
	return h, e
}

func TestHandler_AddMedicine(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"Amoxicillin","generic_name":"Amoxicillin","category":"Antibiotics",` +
		`"quantity":500,"reorder_level":100,"unit_price":"2.50","expiry_date":"2027-06-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/medicines", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.AddMedicine(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var out map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out["status"] != StockInStock {
		t.Errorf("expected derived status in response, got %v", out["status"])
	}
}

func TestHandler_Dispense(t *testing.T) {
	h, e := newTestHandler()

	m := &Medicine{
		Name: "Ibuprofen", Quantity: 10, ReorderLevel: 5,
		ExpiryDate: time.Now().AddDate(1, 0, 0),
		UnitPrice:  decimal.NewFromInt(1),
	}
	if err := h.svc.AddMedicine(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := `{"quantity":25}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(m.ID.String())

	if err := h.Dispense(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out struct {
		Dispensed int `json:"dispensed"`
		Medicine  struct {
			Quantity int    `json:"quantity"`
			Status   string `json:"status"`
		} `json:"medicine"`
	}
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Dispensed != 10 || out.Medicine.Quantity != 0 || out.Medicine.Status != StockOutOfStock {
		t.Errorf("unexpected response: %+v", out)
	}
}

func TestHandler_ListMedicines_StatusFilter(t *testing.T) {
	h, e := newTestHandler()
	ctx := context.Background()

	for _, m := range []*Medicine{
		{Name: "A", Quantity: 500, ReorderLevel: 100, ExpiryDate: time.Now().AddDate(1, 0, 0)},
		{Name: "B", Quantity: 10, ReorderLevel: 100, ExpiryDate: time.Now().AddDate(1, 0, 0)},
	} {
		if err := h.svc.AddMedicine(ctx, m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/medicines?status=low-stock", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListMedicines(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Total int `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 {
		t.Errorf("expected 1 low-stock medicine, got %d", resp.Total)
	}
}
