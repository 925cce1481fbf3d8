package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockPatientRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockPatientRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockPatientRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockPatientRepo) Update(_ context.Context, id uuid.UUID, patch Patch) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Age != nil {
		p.Age = *patch.Age
	}
	if patch.Gender != nil {
		p.Gender = *patch.Gender
	}
	if patch.Contact != nil {
		p.Contact = *patch.Contact
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.MedicalHistory != nil {
		p.MedicalHistory = *patch.MedicalHistory
	}
	return p, nil
}

func (m *mockPatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.patients[id]; !ok {
		return ErrNotFound
	}
	delete(m.patients, id)
	return nil
}

func (m *mockPatientRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.patients[id]
	return ok, nil
}

func newTestService() (*Service, *mockPatientRepo) {
	repo := newMockPatientRepo()
	return NewService(repo), repo
}

func validPatient() *Patient {
	return &Patient{
		Name:           "John Doe",
		Age:            42,
		Gender:         GenderMale,
		Contact:        "5551234",
		Address:        "12 South St",
		RegisteredByID: uuid.New(),
	}
}

// -- Tests --

func TestRegister(t *testing.T) {
	svc, repo := newTestService()
	p := validPatient()
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
	if len(repo.patients) != 1 {
		t.Errorf("expected 1 stored patient, got %d", len(repo.patients))
	}
}

func TestRegister_DefaultsMedicalHistory(t *testing.T) {
	svc, _ := newTestService()
	p := validPatient()
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if p.MedicalHistory != DefaultMedicalHistory {
		t.Errorf("expected medical history %q, got %q", DefaultMedicalHistory, p.MedicalHistory)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestService()

	cases := []func(*Patient){
		func(p *Patient) { p.Name = "" },
		func(p *Patient) { p.Age = 0 },
		func(p *Patient) { p.Gender = "" },
		func(p *Patient) { p.Contact = "" },
		func(p *Patient) { p.Address = "" },
	}
	for i, mutate := range cases {
		p := validPatient()
		mutate(p)
		if err := svc.Register(context.Background(), p); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestRegister_InvalidGender(t *testing.T) {
	svc, _ := newTestService()
	p := validPatient()
	p.Gender = "Other"
	if err := svc.Register(context.Background(), p); err == nil {
		t.Error("expected error for invalid gender")
	}
}

func TestUpdate_PartialPatch(t *testing.T) {
	svc, _ := newTestService()
	p := validPatient()
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	contact := "5559999"
	updated, err := svc.Update(context.Background(), p.ID, Patch{Contact: &contact})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if updated.Contact != "5559999" {
		t.Errorf("expected updated contact, got %s", updated.Contact)
	}
	if updated.Name != "John Doe" || updated.Age != 42 {
		t.Error("unspecified fields must retain prior values")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService()
	name := "X"
	_, err := svc.Update(context.Background(), uuid.New(), Patch{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService()
	p := validPatient()
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if len(repo.patients) != 0 {
		t.Error("expected patient removed")
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
