package billing

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

func newTestHandler() (*Handler, *mockBillRepo, *echo.Echo) {
	svc, repo := newTestService()
	return NewHandler(svc), repo, echo.New()
}

func TestHandler_Create(t *testing.T) {
	h, _, e := newTestHandler()
	body := `{"patient_id":"` + uuid.NewString() + `","doctor_id":"` + uuid.NewString() +
		`","appointment_id":"` + uuid.NewString() + `","medicine_charges":100}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Bill Bill `json:"bill"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Bill.TotalAmount != DefaultConsultationFee+100 {
		t.Errorf("expected total %d, got %d", DefaultConsultationFee+100, resp.Bill.TotalAmount)
	}
}

func TestHandler_Create_MissingReferences(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_GetByAppointment(t *testing.T) {
	h, repo, e := newTestHandler()
	apptID := uuid.New()
	b := &Bill{
		PatientID:       uuid.New(),
		DoctorID:        uuid.New(),
		AppointmentID:   apptID,
		ConsultationFee: 500,
		TotalAmount:     500,
		Status:          StatusUnpaid,
	}
	if err := repo.Create(context.Background(), b); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(apptID.String())

	if err := h.GetByAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got Bill
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if got.TotalAmount != 500 || got.Status != StatusUnpaid {
		t.Errorf("expected total=500 Unpaid, got total=%d status=%q", got.TotalAmount, got.Status)
	}
}

func TestHandler_GetByAppointment_NotFound(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.GetByAppointment(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_Update_IgnoresClientTotal(t *testing.T) {
	h, repo, e := newTestHandler()
	b := &Bill{
		PatientID:       uuid.New(),
		DoctorID:        uuid.New(),
		AppointmentID:   uuid.New(),
		ConsultationFee: 500,
		TotalAmount:     500,
		Status:          StatusUnpaid,
	}
	if err := repo.Create(context.Background(), b); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	body := `{"medicine_charges":200,"total_amount":1}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(b.ID.String())

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Bill Bill `json:"bill"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Bill.TotalAmount != 700 {
		t.Errorf("expected recomputed total 700, got %d", resp.Bill.TotalAmount)
	}
}

func TestHandler_Update_NotFound(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"status":"Paid"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.Update(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_List(t *testing.T) {
	h, repo, e := newTestHandler()
	b := &Bill{
		PatientID:       uuid.New(),
		DoctorID:        uuid.New(),
		AppointmentID:   uuid.New(),
		ConsultationFee: 500,
		TotalAmount:     500,
		Status:          StatusUnpaid,
	}
	if err := repo.Create(context.Background(), b); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Data  []Bill `json:"data"`
		Total int    `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("expected 1 bill listed, got %d", resp.Total)
	}
}
