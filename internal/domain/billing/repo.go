package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no bill matches the lookup.
var ErrNotFound = errors.New("bill not found")

// Repository is the persistence contract for bills.
type Repository interface {
	Create(ctx context.Context, b *Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Bill, error)
	List(ctx context.Context, limit, offset int) ([]*Bill, int, error)
	Update(ctx context.Context, b *Bill) error
}
