package billing

import (
	"time"

	"github.com/google/uuid"
)

// Bill statuses.
const (
	StatusUnpaid = "Unpaid"
	StatusPaid   = "Paid"
)

// ValidStatus reports whether s is an accepted bill status.
func ValidStatus(s string) bool {
	return s == StatusUnpaid || s == StatusPaid
}

// DefaultConsultationFee is charged when no fee is supplied.
const DefaultConsultationFee = 500

// PatientSummary resolves the patient reference to display fields.
type PatientSummary struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// DoctorSummary resolves the doctor reference to display fields.
type DoctorSummary struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

// Bill maps to the bills table. Charge amounts are whole currency units.
type Bill struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID `db:"doctor_id" json:"doctor_id"`
	AppointmentID   uuid.UUID `db:"appointment_id" json:"appointment_id"`
	ConsultationFee int       `db:"consultation_fee" json:"consultation_fee"`
	MedicineCharges int       `db:"medicine_charges" json:"medicine_charges"`
	TestCharges     int       `db:"test_charges" json:"test_charges"`
	TotalAmount     int       `db:"total_amount" json:"total_amount"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`

	// Resolved references, populated on reads.
	Patient *PatientSummary `db:"-" json:"patient,omitempty"`
	Doctor  *DoctorSummary  `db:"-" json:"doctor,omitempty"`
}

// Recalculate derives the total from the three charge fields. Called
// immediately before every write; client-supplied totals are never trusted.
func (b *Bill) Recalculate() {
	b.TotalAmount = b.ConsultationFee + b.MedicineCharges + b.TestCharges
}

// Patch carries a partial update: only non-nil fields change. TotalAmount is
// deliberately absent; it is recomputed server-side.
type Patch struct {
	ConsultationFee *int    `json:"consultation_fee"`
	MedicineCharges *int    `json:"medicine_charges"`
	TestCharges     *int    `json:"test_charges"`
	Status          *string `json:"status"`
}
