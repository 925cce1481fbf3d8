package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockBillRepo struct {
	bills map[uuid.UUID]*Bill
}

func newMockBillRepo() *mockBillRepo {
	return &mockBillRepo{bills: make(map[uuid.UUID]*Bill)}
}

func (m *mockBillRepo) Create(_ context.Context, b *Bill) error {
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	b.UpdatedAt = time.Now()
	m.bills[b.ID] = b
	return nil
}

func (m *mockBillRepo) GetByID(_ context.Context, id uuid.UUID) (*Bill, error) {
	b, ok := m.bills[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockBillRepo) GetByAppointment(_ context.Context, appointmentID uuid.UUID) (*Bill, error) {
	for _, b := range m.bills {
		if b.AppointmentID == appointmentID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockBillRepo) List(_ context.Context, limit, offset int) ([]*Bill, int, error) {
	var result []*Bill
	for _, b := range m.bills {
		result = append(result, b)
	}
	return result, len(result), nil
}

func (m *mockBillRepo) Update(_ context.Context, b *Bill) error {
	if _, ok := m.bills[b.ID]; !ok {
		return ErrNotFound
	}
	cp := *b
	m.bills[b.ID] = &cp
	return nil
}

func newTestService() (*Service, *mockBillRepo) {
	repo := newMockBillRepo()
	return NewService(repo), repo
}

// -- Tests --

func TestCreate_DefaultsAndDerivedTotal(t *testing.T) {
	svc, _ := newTestService()
	b := &Bill{
		PatientID:     uuid.New(),
		DoctorID:      uuid.New(),
		AppointmentID: uuid.New(),
	}
	if err := svc.Create(context.Background(), b); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if b.ConsultationFee != DefaultConsultationFee {
		t.Errorf("expected default fee %d, got %d", DefaultConsultationFee, b.ConsultationFee)
	}
	if b.TotalAmount != DefaultConsultationFee {
		t.Errorf("expected total %d, got %d", DefaultConsultationFee, b.TotalAmount)
	}
	if b.Status != StatusUnpaid {
		t.Errorf("expected status %q, got %q", StatusUnpaid, b.Status)
	}
}

func TestCreate_IgnoresClientTotal(t *testing.T) {
	svc, _ := newTestService()
	b := &Bill{
		PatientID:       uuid.New(),
		DoctorID:        uuid.New(),
		AppointmentID:   uuid.New(),
		ConsultationFee: 300,
		MedicineCharges: 120,
		TestCharges:     80,
		TotalAmount:     999999,
	}
	if err := svc.Create(context.Background(), b); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if b.TotalAmount != 500 {
		t.Errorf("expected recomputed total 500, got %d", b.TotalAmount)
	}
}

func TestCreate_MissingReferences(t *testing.T) {
	svc, _ := newTestService()
	b := &Bill{PatientID: uuid.New()}
	if err := svc.Create(context.Background(), b); err == nil {
		t.Error("expected error for missing references")
	}
}

func TestCreate_NegativeCharges(t *testing.T) {
	svc, _ := newTestService()
	b := &Bill{
		PatientID:       uuid.New(),
		DoctorID:        uuid.New(),
		AppointmentID:   uuid.New(),
		MedicineCharges: -1,
	}
	if err := svc.Create(context.Background(), b); err == nil {
		t.Error("expected error for negative charges")
	}
}

func TestCreateForAppointment(t *testing.T) {
	svc, repo := newTestService()
	apptID := uuid.New()
	b, err := svc.CreateForAppointment(context.Background(), uuid.New(), uuid.New(), apptID)
	if err != nil {
		t.Fatalf("CreateForAppointment() error: %v", err)
	}
	if b.TotalAmount != 500 || b.Status != StatusUnpaid {
		t.Errorf("expected seeded bill total=500 Unpaid, got total=%d status=%q", b.TotalAmount, b.Status)
	}

	stored, err := repo.GetByAppointment(context.Background(), apptID)
	if err != nil {
		t.Fatalf("expected bill stored for appointment: %v", err)
	}
	if stored.TotalAmount != 500 {
		t.Errorf("expected stored total 500, got %d", stored.TotalAmount)
	}
}

func TestUpdate_RederivesTotal(t *testing.T) {
	svc, _ := newTestService()
	b, err := svc.CreateForAppointment(context.Background(), uuid.New(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("CreateForAppointment() error: %v", err)
	}

	charges := 250
	updated, err := svc.Update(context.Background(), b.ID, Patch{MedicineCharges: &charges})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.TotalAmount != b.ConsultationFee+250 {
		t.Errorf("expected total %d, got %d", b.ConsultationFee+250, updated.TotalAmount)
	}
	if updated.TestCharges != 0 || updated.ConsultationFee != b.ConsultationFee {
		t.Error("unspecified fields must retain prior values")
	}
}

func TestUpdate_Status(t *testing.T) {
	svc, _ := newTestService()
	b, err := svc.CreateForAppointment(context.Background(), uuid.New(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("CreateForAppointment() error: %v", err)
	}

	paid := StatusPaid
	updated, err := svc.Update(context.Background(), b.ID, Patch{Status: &paid})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Status != StatusPaid {
		t.Errorf("expected status %q, got %q", StatusPaid, updated.Status)
	}
}

func TestUpdate_InvalidStatus(t *testing.T) {
	svc, _ := newTestService()
	b, err := svc.CreateForAppointment(context.Background(), uuid.New(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("CreateForAppointment() error: %v", err)
	}

	bogus := "Overdue"
	if _, err := svc.Update(context.Background(), b.ID, Patch{Status: &bogus}); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService()
	paid := StatusPaid
	_, err := svc.Update(context.Background(), uuid.New(), Patch{Status: &paid})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
