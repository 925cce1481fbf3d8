package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrAppointmentNotFound is reported when the appointment reference does not
// resolve.
var ErrAppointmentNotFound = errors.New("appointment not found")

// AppointmentDirectory answers whether an appointment id resolves.
type AppointmentDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	prescriptions Repository
	appointments  AppointmentDirectory
}

func NewService(prescriptions Repository, appointments AppointmentDirectory) *Service {
	return &Service{prescriptions: prescriptions, appointments: appointments}
}

// Create validates and persists a prescription against an existing
// appointment. At least one medicine with a name and dosage is required.
func (s *Service) Create(ctx context.Context, p *Prescription) error {
	if p.AppointmentID == uuid.Nil || p.PatientID == uuid.Nil || p.DoctorID == uuid.Nil {
		return fmt.Errorf("appointment, patient and doctor references are required")
	}
	if len(p.Medicines) == 0 {
		return fmt.Errorf("at least one medicine is required")
	}
	for i, m := range p.Medicines {
		if m.Name == "" || m.Dosage == "" {
			return fmt.Errorf("medicine %d: name and dosage are required", i+1)
		}
	}

	ok, err := s.appointments.Exists(ctx, p.AppointmentID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAppointmentNotFound
	}
	return s.prescriptions.Create(ctx, p)
}

// GetByAppointment returns the prescription written for an appointment.
func (s *Service) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Prescription, error) {
	return s.prescriptions.GetByAppointment(ctx, appointmentID)
}

// List returns prescriptions, optionally restricted to one patient.
func (s *Service) List(ctx context.Context, patientID *uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return s.prescriptions.List(ctx, patientID, limit, offset)
}
