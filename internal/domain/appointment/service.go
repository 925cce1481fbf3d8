package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Errors reported when a referenced record does not resolve.
var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrDoctorNotFound  = errors.New("doctor not found")
)

// PatientDirectory answers whether a patient id resolves.
type PatientDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// DoctorDirectory answers whether a doctor id resolves.
type DoctorDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// BillCreator writes the companion bill for a new appointment and returns
// its id.
type BillCreator interface {
	CreateForAppointment(ctx context.Context, patientID, doctorID, appointmentID uuid.UUID) (uuid.UUID, error)
}

// TxRunner runs fn inside a database transaction carried on the context.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	appointments Repository
	patients     PatientDirectory
	doctors      DoctorDirectory
	bills        BillCreator
	tx           TxRunner
}

func NewService(appointments Repository, patients PatientDirectory, doctors DoctorDirectory, bills BillCreator, tx TxRunner) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		doctors:      doctors,
		bills:        bills,
		tx:           tx,
	}
}

// Create persists an appointment together with its companion bill. The
// appointment insert, bill insert and bill back-fill run in one transaction,
// so a failed bill write never leaves an appointment without a bill.
func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil || a.DoctorID == uuid.Nil {
		return fmt.Errorf("patient and doctor references are required")
	}
	if a.AppointmentDate.IsZero() {
		return fmt.Errorf("appointment date is required")
	}
	if a.CreatedByID == uuid.Nil {
		return fmt.Errorf("creating user is required")
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !ValidStatus(a.Status) {
		return fmt.Errorf("status must be %q, %q or %q", StatusScheduled, StatusCompleted, StatusCancelled)
	}

	ok, err := s.patients.Exists(ctx, a.PatientID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPatientNotFound
	}
	ok, err = s.doctors.Exists(ctx, a.DoctorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDoctorNotFound
	}

	return s.tx(ctx, func(ctx context.Context) error {
		if err := s.appointments.Create(ctx, a); err != nil {
			return err
		}
		billID, err := s.bills.CreateForAppointment(ctx, a.PatientID, a.DoctorID, a.ID)
		if err != nil {
			return err
		}
		if err := s.appointments.SetBill(ctx, a.ID, billID); err != nil {
			return err
		}
		a.BillID = &billID
		return nil
	})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, limit, offset)
}

// Update applies a partial patch: only supplied fields change.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Appointment, error) {
	if patch.Status != nil && !ValidStatus(*patch.Status) {
		return nil, fmt.Errorf("status must be %q, %q or %q", StatusScheduled, StatusCompleted, StatusCancelled)
	}
	if patch.AppointmentDate != nil && patch.AppointmentDate.IsZero() {
		return nil, fmt.Errorf("appointment date must not be empty")
	}
	return s.appointments.Update(ctx, id, patch)
}

// Delete removes the appointment record only; its bill stays behind.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}
