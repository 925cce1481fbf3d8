package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no appointment matches the lookup.
var ErrNotFound = errors.New("appointment not found")

// Repository is the persistence contract for appointments.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetBill(ctx context.Context, id, billID uuid.UUID) error
}
