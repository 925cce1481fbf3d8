package prescription

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinicore/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const prescriptionSelect = `
	SELECT pr.id, pr.appointment_id, pr.patient_id, pr.doctor_id, pr.medicines,
		pr.diagnosis, pr.advice, pr.created_at, pr.updated_at,
		p.name, p.contact,
		u.fullname, u.email
	FROM prescriptions pr
	LEFT JOIN patients p ON p.id = pr.patient_id
	LEFT JOIN users u ON u.id = pr.doctor_id`

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	var medicines []byte
	var pName, pContact, dFullname, dEmail *string
	err := row.Scan(&p.ID, &p.AppointmentID, &p.PatientID, &p.DoctorID, &medicines,
		&p.Diagnosis, &p.Advice, &p.CreatedAt, &p.UpdatedAt,
		&pName, &pContact, &dFullname, &dEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(medicines, &p.Medicines); err != nil {
		return nil, err
	}
	if pName != nil {
		p.Patient = &PatientSummary{Name: *pName, Contact: *pContact}
	}
	if dFullname != nil {
		p.Doctor = &DoctorSummary{Fullname: *dFullname, Email: *dEmail}
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Prescription) error {
	medicines, err := json.Marshal(p.Medicines)
	if err != nil {
		return err
	}
	p.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO prescriptions (id, appointment_id, patient_id, doctor_id, medicines, diagnosis, advice)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		p.ID, p.AppointmentID, p.PatientID, p.DoctorID, medicines, p.Diagnosis, p.Advice).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *repoPG) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Prescription, error) {
	return scanPrescription(r.conn(ctx).QueryRow(ctx,
		prescriptionSelect+` WHERE pr.appointment_id = $1 ORDER BY pr.created_at DESC LIMIT 1`, appointmentID))
}

// List returns prescriptions newest first, optionally restricted to one
// patient.
func (r *repoPG) List(ctx context.Context, patientID *uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM prescriptions WHERE $1::uuid IS NULL OR patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		prescriptionSelect+` WHERE $1::uuid IS NULL OR pr.patient_id = $1
		ORDER BY pr.created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
