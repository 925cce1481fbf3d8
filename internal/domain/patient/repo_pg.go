package patient

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

// All reads left-join the registering user so the reference resolves to
// display fields. The join is LEFT so a patient whose registrar was deleted
// still loads (dangling reference, no cascade).
const patientSelect = `
	SELECT p.id, p.name, p.age, p.gender, p.contact, p.address, p.medical_history,
		p.registered_by, p.created_at, p.updated_at,
		u.fullname, u.email, u.role
	FROM patients p
	LEFT JOIN users u ON u.id = p.registered_by`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var fullname, email, role *string
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Contact, &p.Address, &p.MedicalHistory,
		&p.RegisteredByID, &p.CreatedAt, &p.UpdatedAt,
		&fullname, &email, &role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if fullname != nil {
		p.RegisteredBy = &RegistrarSummary{Fullname: *fullname, Email: *email, Role: *role}
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (id, name, age, gender, contact, address, medical_history, registered_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Age, p.Gender, p.Contact, p.Address, p.MedicalHistory, p.RegisteredByID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, patientSelect+` WHERE p.id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, patientSelect+` ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Patient, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET
			name = COALESCE($2, name),
			age = COALESCE($3, age),
			gender = COALESCE($4, gender),
			contact = COALESCE($5, contact),
			address = COALESCE($6, address),
			medical_history = COALESCE($7, medical_history),
			updated_at = NOW()
		WHERE id = $1`,
		id, patch.Name, patch.Age, patch.Gender, patch.Contact, patch.Address, patch.MedicalHistory)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM patients WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
