package user

import (
	"time"

	"github.com/google/uuid"
)

// Roles an account can hold. The role is fixed at signup.
const (
	RoleDoctor       = "doctor"
	RoleReceptionist = "receptionist"
)

// ValidRole reports whether role is one of the accepted account roles.
func ValidRole(role string) bool {
	return role == RoleDoctor || role == RoleReceptionist
}

// User maps to the users table. The password hash never leaves the server.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Fullname     string    `db:"fullname" json:"fullname"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Summary is the projection returned by the doctors listing and embedded in
// other entities' resolved references.
type Summary struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Fullname string    `db:"fullname" json:"fullname"`
	Email    string    `db:"email" json:"email"`
	Role     string    `db:"role" json:"role"`
}

// Summarize returns the reference projection of the user.
func (u *User) Summarize() Summary {
	return Summary{ID: u.ID, Fullname: u.Fullname, Email: u.Email, Role: u.Role}
}
