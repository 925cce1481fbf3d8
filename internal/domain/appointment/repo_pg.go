package appointment

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

// Reads left-join patient, doctor and bill so the references resolve to
// display fields. Joins are LEFT because deletes do not cascade: an
// appointment whose patient was removed still loads with a nil summary.
const appointmentSelect = `
	SELECT a.id, a.patient_id, a.doctor_id, a.bill_id, a.appointment_date,
		a.status, a.notes, a.created_by, a.created_at, a.updated_at,
		p.name, p.age, p.gender, p.contact,
		u.fullname, u.email,
		b.id, b.total_amount, b.status,
		cu.fullname, cu.email
	FROM appointments a
	LEFT JOIN patients p ON p.id = a.patient_id
	LEFT JOIN users u ON u.id = a.doctor_id
	LEFT JOIN bills b ON b.id = a.bill_id
	LEFT JOIN users cu ON cu.id = a.created_by`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var pName, pGender, pContact, dFullname, dEmail *string
	var cFullname, cEmail *string
	var pAge *int
	var billID *uuid.UUID
	var billTotal *int
	var billStatus *string
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.BillID, &a.AppointmentDate,
		&a.Status, &a.Notes, &a.CreatedByID, &a.CreatedAt, &a.UpdatedAt,
		&pName, &pAge, &pGender, &pContact,
		&dFullname, &dEmail,
		&billID, &billTotal, &billStatus,
		&cFullname, &cEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if pName != nil {
		a.Patient = &PatientSummary{Name: *pName, Age: *pAge, Gender: *pGender, Contact: *pContact}
	}
	if dFullname != nil {
		a.Doctor = &DoctorSummary{Fullname: *dFullname, Email: *dEmail}
	}
	if billID != nil {
		a.Bill = &BillSummary{ID: *billID, TotalAmount: *billTotal, Status: *billStatus}
	}
	if cFullname != nil {
		a.CreatedBy = &CreatorSummary{Fullname: *cFullname, Email: *cEmail}
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointments (id, patient_id, doctor_id, appointment_date, status, notes, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		a.ID, a.PatientID, a.DoctorID, a.AppointmentDate, a.Status, a.Notes, a.CreatedByID).
		Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx, appointmentSelect+` WHERE a.id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, appointmentSelect+` ORDER BY a.appointment_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Appointment, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointments SET
			appointment_date = COALESCE($2, appointment_date),
			status = COALESCE($3, status),
			notes = COALESCE($4, notes),
			updated_at = NOW()
		WHERE id = $1`,
		id, patch.AppointmentDate, patch.Status, patch.Notes)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) SetBill(ctx context.Context, id, billID uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE appointments SET bill_id = $2, updated_at = NOW() WHERE id = $1`, id, billID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
