package billing

import (
	"context"
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

// Reads left-join patient and doctor so the references resolve to display
// fields even when one side has since been deleted.
const billSelect = `
	SELECT b.id, b.patient_id, b.doctor_id, b.appointment_id,
		b.consultation_fee, b.medicine_charges, b.test_charges, b.total_amount,
		b.status, b.created_at, b.updated_at,
		p.name, p.contact,
		u.fullname, u.email
	FROM bills b
	LEFT JOIN patients p ON p.id = b.patient_id
	LEFT JOIN users u ON u.id = b.doctor_id`

func scanBill(row pgx.Row) (*Bill, error) {
	var b Bill
	var pName, pContact, dFullname, dEmail *string
	err := row.Scan(&b.ID, &b.PatientID, &b.DoctorID, &b.AppointmentID,
		&b.ConsultationFee, &b.MedicineCharges, &b.TestCharges, &b.TotalAmount,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
		&pName, &pContact, &dFullname, &dEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if pName != nil {
		b.Patient = &PatientSummary{Name: *pName, Contact: *pContact}
	}
	if dFullname != nil {
		b.Doctor = &DoctorSummary{Fullname: *dFullname, Email: *dEmail}
	}
	return &b, nil
}

func (r *repoPG) Create(ctx context.Context, b *Bill) error {
	b.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO bills (id, patient_id, doctor_id, appointment_id,
			consultation_fee, medicine_charges, test_charges, total_amount, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		b.ID, b.PatientID, b.DoctorID, b.AppointmentID,
		b.ConsultationFee, b.MedicineCharges, b.TestCharges, b.TotalAmount, b.Status).
		Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return scanBill(r.conn(ctx).QueryRow(ctx, billSelect+` WHERE b.id = $1`, id))
}

func (r *repoPG) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Bill, error) {
	return scanBill(r.conn(ctx).QueryRow(ctx, billSelect+` WHERE b.appointment_id = $1`, appointmentID))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Bill, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM bills`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, billSelect+` ORDER BY b.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, b *Bill) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE bills SET
			consultation_fee = $2,
			medicine_charges = $3,
			test_charges = $4,
			total_amount = $5,
			status = $6,
			updated_at = NOW()
		WHERE id = $1`,
		b.ID, b.ConsultationFee, b.MedicineCharges, b.TestCharges, b.TotalAmount, b.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
