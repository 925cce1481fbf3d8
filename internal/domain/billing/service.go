package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	bills Repository
}

func NewService(bills Repository) *Service {
	return &Service{bills: bills}
}

// Create validates and persists a bill. A zero consultation fee is replaced
// with the default, the total is derived from the charge fields, and a new
// bill always starts Unpaid unless a valid status is supplied.
func (s *Service) Create(ctx context.Context, b *Bill) error {
	if b.PatientID == uuid.Nil || b.DoctorID == uuid.Nil || b.AppointmentID == uuid.Nil {
		return fmt.Errorf("patient, doctor and appointment references are required")
	}
	if b.ConsultationFee < 0 || b.MedicineCharges < 0 || b.TestCharges < 0 {
		return fmt.Errorf("charges must not be negative")
	}
	if b.ConsultationFee == 0 {
		b.ConsultationFee = DefaultConsultationFee
	}
	if b.Status == "" {
		b.Status = StatusUnpaid
	}
	if !ValidStatus(b.Status) {
		return fmt.Errorf("status must be %q or %q", StatusUnpaid, StatusPaid)
	}
	b.Recalculate()
	return s.bills.Create(ctx, b)
}

// CreateForAppointment seeds the companion bill written alongside a new
// appointment: default consultation fee, no other charges, Unpaid.
func (s *Service) CreateForAppointment(ctx context.Context, patientID, doctorID, appointmentID uuid.UUID) (*Bill, error) {
	b := &Bill{
		PatientID:     patientID,
		DoctorID:      doctorID,
		AppointmentID: appointmentID,
	}
	if err := s.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return s.bills.GetByID(ctx, id)
}

// GetByAppointment looks a bill up through its appointment reference.
func (s *Service) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Bill, error) {
	return s.bills.GetByAppointment(ctx, appointmentID)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Bill, int, error) {
	return s.bills.List(ctx, limit, offset)
}

// Update applies a partial patch and rederives the total before saving.
// A client-supplied total is ignored: the stored total is always the sum of
// the three charge fields at write time.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Bill, error) {
	b, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.ConsultationFee != nil {
		b.ConsultationFee = *patch.ConsultationFee
	}
	if patch.MedicineCharges != nil {
		b.MedicineCharges = *patch.MedicineCharges
	}
	if patch.TestCharges != nil {
		b.TestCharges = *patch.TestCharges
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	if b.ConsultationFee < 0 || b.MedicineCharges < 0 || b.TestCharges < 0 {
		return nil, fmt.Errorf("charges must not be negative")
	}
	if !ValidStatus(b.Status) {
		return nil, fmt.Errorf("status must be %q or %q", StatusUnpaid, StatusPaid)
	}
	b.Recalculate()
	if err := s.bills.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
