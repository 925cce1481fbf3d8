package patient

import (
	"time"

	"github.com/google/uuid"
)

// Genders accepted at registration.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// ValidGender reports whether g is an accepted gender value.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

// DefaultMedicalHistory is recorded when no history is supplied.
const DefaultMedicalHistory = "N/A"

// RegistrarSummary resolves the registeredBy reference to display fields.
// Nil when the registering account has since been deleted.
type RegistrarSummary struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Patient maps to the patients table.
type Patient struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Age            int       `db:"age" json:"age"`
	Gender         string    `db:"gender" json:"gender"`
	Contact        string    `db:"contact" json:"contact"`
	Address        string    `db:"address" json:"address"`
	MedicalHistory string    `db:"medical_history" json:"medical_history"`
	RegisteredByID uuid.UUID `db:"registered_by" json:"registered_by_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`

	// Resolved reference, populated on reads.
	RegisteredBy *RegistrarSummary `db:"-" json:"registered_by,omitempty"`
}

// Patch carries a partial update: only non-nil fields change.
type Patch struct {
	Name           *string `json:"name"`
	Age            *int    `json:"age"`
	Gender         *string `json:"gender"`
	Contact        *string `json:"contact"`
	Address        *string `json:"address"`
	MedicalHistory *string `json:"medical_history"`
}
