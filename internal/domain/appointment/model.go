package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// ValidStatus reports whether s is an accepted appointment status.
func ValidStatus(s string) bool {
	return s == StatusScheduled || s == StatusCompleted || s == StatusCancelled
}

// PatientSummary resolves the patient reference to display fields.
type PatientSummary struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
}

// DoctorSummary resolves the doctor reference to display fields.
type DoctorSummary struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

// CreatorSummary resolves the creating user reference to display fields.
type CreatorSummary struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

// BillSummary resolves the bill reference to display fields.
type BillSummary struct {
	ID          uuid.UUID `json:"id"`
	TotalAmount int       `json:"total_amount"`
	Status      string    `json:"status"`
}

// Appointment maps to the appointments table. BillID is nil only in the
// window between the appointment insert and the bill back-fill inside the
// creation transaction.
type Appointment struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PatientID       uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	BillID          *uuid.UUID `db:"bill_id" json:"bill_id,omitempty"`
	AppointmentDate time.Time  `db:"appointment_date" json:"appointment_date"`
	Status          string     `db:"status" json:"status"`
	Notes           string     `db:"notes" json:"notes"`
	CreatedByID     uuid.UUID  `db:"created_by" json:"created_by_id"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`

	// Resolved references, populated on reads.
	Patient   *PatientSummary `db:"-" json:"patient,omitempty"`
	Doctor    *DoctorSummary  `db:"-" json:"doctor,omitempty"`
	Bill      *BillSummary    `db:"-" json:"bill,omitempty"`
	CreatedBy *CreatorSummary `db:"-" json:"created_by,omitempty"`
}

// Patch carries a partial update: only non-nil fields change.
type Patch struct {
	AppointmentDate *time.Time `json:"appointment_date"`
	Status          *string    `json:"status"`
	Notes           *string    `json:"notes"`
}
