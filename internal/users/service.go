// Package users implements the admin-only user management operations plus the
// open assignment-picker projection.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/taskdash/taskdash/internal/domain"
	"github.com/taskdash/taskdash/internal/envelope"
	"github.com/taskdash/taskdash/internal/policy"
)

// CredentialIssuer produces the one-time initial password for a new user:
// the plaintext is returned exactly once to the creating admin, only the
// hash is stored. *auth.Service satisfies this interface.
type CredentialIssuer interface {
	IssueInitialPassword() (plaintext, hash string, err error)
}

// Option is the {id, name} projection used by task-assignment dropdowns.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewUser is the creation result: the stored record plus the one-time
// initial password.
type NewUser struct {
	*domain.User
	InitialPassword string `json:"initial_password"`
}

type Service struct {
	users domain.UserRepository
	creds CredentialIssuer
}

func NewService(users domain.UserRepository, creds CredentialIssuer) *Service {
	return &Service{users: users, creds: creds}
}

// Visible returns the full user roster. Only admins may read users; everyone
// else gets a structured refusal without the store being contacted.
// Each employee row carries a manager_name display projection.
func (s *Service) Visible(ctx context.Context, caller domain.Caller) envelope.Envelope[[]*domain.User] {
	if !policy.CanReadUsers(caller) {
		return envelope.Forbidden[[]*domain.User](policy.MsgUserReadDenied)
	}

	all, err := s.users.List(ctx)
	if err != nil {
		log.Error().Err(err).Str("caller", caller.ID).Msg("users: list failed")
		return envelope.FailureWith("Failed to fetch users", make([]*domain.User, 0))
	}

	names := make(map[string]string, len(all))
	for _, u := range all {
		names[domain.NormalizeID(u.ID)] = u.Name
	}
	for _, u := range all {
		if u.ManagerID != "" {
			u.ManagerName = names[domain.NormalizeID(u.ManagerID)]
		}
	}

	if all == nil {
		all = make([]*domain.User, 0)
	}
	return envelope.OK("Users fetched successfully", all)
}

// Options projects the roster to {id, name} pairs for assignment pickers.
// Unlike Visible this is open to every role: managers assign tasks.
func (s *Service) Options(ctx context.Context, caller domain.Caller) envelope.Envelope[[]Option] {
	if !caller.Role.Valid() {
		return envelope.Forbidden[[]Option](policy.MsgTaskReadDenied)
	}

	all, err := s.users.List(ctx)
	if err != nil {
		log.Error().Err(err).Str("caller", caller.ID).Msg("users: options list failed")
		return envelope.FailureWith("Failed to fetch users", make([]Option, 0))
	}

	opts := make([]Option, 0, len(all))
	for _, u := range all {
		opts = append(opts, Option{ID: u.ID, Name: u.Name})
	}
	return envelope.OK("Users fetched successfully", opts)
}

func (s *Service) Create(ctx context.Context, caller domain.Caller, u *domain.User) envelope.Envelope[*NewUser] {
	if !policy.CanWriteUser(caller) {
		return envelope.Forbidden[*NewUser](policy.MsgUserWriteDenied)
	}
	if !u.Role.Valid() {
		return envelope.Failure[*NewUser](fmt.Sprintf("Unknown role %q", u.Role))
	}
	if u.Email == "" || u.Name == "" {
		return envelope.Failure[*NewUser]("Name and email are required")
	}
	if u.Role != domain.RoleEmployee && u.ManagerID != "" {
		return envelope.Failure[*NewUser]("Only employees have a manager")
	}

	existing, err := s.users.GetByEmail(ctx, u.Email)
	switch {
	case err == nil && existing != nil:
		return envelope.Failure[*NewUser]("A user with this email already exists")
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		log.Error().Err(err).Str("email", u.Email).Msg("users: duplicate check failed")
		return envelope.Failure[*NewUser]("Failed to create user")
	}

	plaintext, hash, err := s.creds.IssueInitialPassword()
	if err != nil {
		log.Error().Err(err).Msg("users: credential issuance failed")
		return envelope.Failure[*NewUser]("Failed to create user")
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.PasswordHash = hash
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if err := s.users.Create(ctx, u); err != nil {
		log.Error().Err(err).Str("user_id", u.ID).Msg("users: create failed")
		return envelope.Failure[*NewUser]("Failed to create user")
	}

	return envelope.Created("User created successfully", &NewUser{User: u, InitialPassword: plaintext})
}

func (s *Service) Update(ctx context.Context, caller domain.Caller, id string, in *domain.User) envelope.Envelope[*domain.User] {
	if !policy.CanWriteUser(caller) {
		return envelope.Forbidden[*domain.User](policy.MsgUserWriteDenied)
	}
	if in.Role != "" && !in.Role.Valid() {
		return envelope.Failure[*domain.User](fmt.Sprintf("Unknown role %q", in.Role))
	}

	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return envelope.NotFound[*domain.User](fmt.Sprintf("User with ID %s not found", id))
		}
		log.Error().Err(err).Str("user_id", id).Msg("users: lookup failed")
		return envelope.Failure[*domain.User]("Failed to update user")
	}

	if in.Name != "" {
		existing.Name = in.Name
	}
	if in.Email != "" {
		existing.Email = in.Email
	}
	if in.Role != "" {
		existing.Role = in.Role
	}
	if in.ManagerID != "" {
		existing.ManagerID = in.ManagerID
	}
	if existing.Role != domain.RoleEmployee {
		// Only employees carry a manager link.
		existing.ManagerID = ""
	}
	existing.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, existing); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return envelope.NotFound[*domain.User](fmt.Sprintf("User with ID %s not found", id))
		}
		log.Error().Err(err).Str("user_id", id).Msg("users: update failed")
		return envelope.Failure[*domain.User]("Failed to update user")
	}

	return envelope.OK("User updated successfully", existing)
}

func (s *Service) Delete(ctx context.Context, caller domain.Caller, id string) envelope.Envelope[string] {
	if !policy.CanDeleteUser(caller) {
		return envelope.Forbidden[string](policy.MsgUserDeleteDenied)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return envelope.NotFound[string](fmt.Sprintf("User with ID %s not found", id))
		}
		log.Error().Err(err).Str("user_id", id).Msg("users: delete failed")
		return envelope.Failure[string]("Failed to delete user")
	}

	return envelope.OK("User deleted successfully", id)
}
