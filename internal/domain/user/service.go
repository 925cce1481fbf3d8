package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/platform/auth"
)

// ErrEmailTaken is returned when signing up with an already-registered email.
var ErrEmailTaken = errors.New("person already exists")

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so a caller cannot probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	users Repository
}

func NewService(users Repository) *Service {
	return &Service{users: users}
}

// Signup registers a new account with a bcrypt-hashed password.
func (s *Service) Signup(ctx context.Context, fullname, email, password, role string) (*User, error) {
	if fullname == "" || email == "" || password == "" || role == "" {
		return nil, fmt.Errorf("all fields are mandatory")
	}
	if !ValidRole(role) {
		return nil, fmt.Errorf("role must be %q or %q", RoleDoctor, RoleReceptionist)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Fullname:     fullname,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies an email/password pair. Unknown email and wrong
// password both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// ListDoctors returns all accounts with the doctor role.
func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.users.ListByRole(ctx, RoleDoctor, limit, offset)
}

// ResolveUser implements auth.UserResolver so the session gate can turn a
// token subject into a live account.
func (s *Service) ResolveUser(ctx context.Context, id uuid.UUID) (*auth.Identity, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &auth.Identity{ID: u.ID, Fullname: u.Fullname, Email: u.Email, Role: u.Role}, nil
}
