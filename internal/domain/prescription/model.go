package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Medicine is one line of a prescription. Order is preserved as written.
type Medicine struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

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

// Prescription maps to the prescriptions table. Medicines are stored as a
// JSON document. One prescription per appointment by convention, not
// enforced.
type Prescription struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	AppointmentID uuid.UUID  `db:"appointment_id" json:"appointment_id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	Medicines     []Medicine `db:"medicines" json:"medicines"`
	Diagnosis     string     `db:"diagnosis" json:"diagnosis"`
	Advice        string     `db:"advice" json:"advice"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`

	// Resolved references, populated on reads.
	Patient *PatientSummary `db:"-" json:"patient,omitempty"`
	Doctor  *DoctorSummary  `db:"-" json:"doctor,omitempty"`
}
