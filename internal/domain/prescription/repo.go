package prescription

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no prescription matches the lookup.
var ErrNotFound = errors.New("prescription not found")

// Repository is the persistence contract for prescriptions.
type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Prescription, error)
	List(ctx context.Context, patientID *uuid.UUID, limit, offset int) ([]*Prescription, int, error)
}
