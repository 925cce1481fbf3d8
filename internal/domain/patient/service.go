package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// Register validates and persists a new patient. Every field except the
// medical history is mandatory; a missing history is stored as "N/A".
func (s *Service) Register(ctx context.Context, p *Patient) error {
	if p.Name == "" || p.Age <= 0 || p.Gender == "" || p.Contact == "" || p.Address == "" {
		return fmt.Errorf("all fields except medical history are mandatory")
	}
	if !ValidGender(p.Gender) {
		return fmt.Errorf("gender must be %q or %q", GenderMale, GenderFemale)
	}
	if p.RegisteredByID == uuid.Nil {
		return fmt.Errorf("registering user is required")
	}
	if p.MedicalHistory == "" {
		p.MedicalHistory = DefaultMedicalHistory
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

// Update applies a partial patch: only supplied fields change.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Patient, error) {
	if patch.Gender != nil && !ValidGender(*patch.Gender) {
		return nil, fmt.Errorf("gender must be %q or %q", GenderMale, GenderFemale)
	}
	if patch.Age != nil && *patch.Age <= 0 {
		return nil, fmt.Errorf("age must be positive")
	}
	return s.patients.Update(ctx, id, patch)
}

// Delete removes the patient record only. Appointments and bills referencing
// it stay behind as dangling references; there is no cascade.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}
