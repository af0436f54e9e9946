package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	ManagerID    string    `json:"manager_id,omitempty"`   // set only when role is employee
	ManagerName  string    `json:"manager_name,omitempty"` // display projection, not persisted
	PasswordHash string    `json:"-"`                      // argon2id, never serialized
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Caller is the authenticated identity a request executes under. It is built
// once from the token claims and carries everything authorization needs; no
// record in the store has its own ACL.
type Caller struct {
	ID   string
	Role Role
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	ListByManager(ctx context.Context, managerID string) ([]*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
