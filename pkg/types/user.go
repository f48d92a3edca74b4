package types

import "time"

type UserRole string

const (
	UserRoleDonor UserRole = "donor"
	UserRoleNGO   UserRole = "ngo"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleDonor, UserRoleNGO, UserRoleAdmin:
		return true
	}
	return false
}

// User is an account holder. Role is fixed at registration and never changes.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Role         UserRole  `db:"role" json:"role"`
	IsVerified   bool      `db:"is_verified" json:"isVerified"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
