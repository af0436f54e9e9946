package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdash/taskdash/internal/domain"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, manager_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role,
		nilIfEmpty(u.ManagerID), u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("userRepo.Create: %w", err)
	}

	return nil
}

// GetByID matches on the normalized identifier: callers authenticated against
// a legacy path-form id still resolve to their record.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, manager_id, created_at, updated_at
		 FROM users WHERE regexp_replace(id, '^.*/', '') = $1`,
		domain.NormalizeID(id),
	)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}

	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, manager_id, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", err)
	}

	return u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, password_hash, role, manager_id, created_at, updated_at
		 FROM users
		 ORDER BY created_at
		 LIMIT 10000`,
	)
	if err != nil {
		return nil, fmt.Errorf("userRepo.List: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows, "userRepo.List")
}

func (r *UserRepo) ListByManager(ctx context.Context, managerID string) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, password_hash, role, manager_id, created_at, updated_at
		 FROM users
		 WHERE manager_id IS NOT NULL AND regexp_replace(manager_id, '^.*/', '') = $1
		 ORDER BY created_at
		 LIMIT 10000`,
		domain.NormalizeID(managerID),
	)
	if err != nil {
		return nil, fmt.Errorf("userRepo.ListByManager: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows, "userRepo.ListByManager")
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $1, email = $2, password_hash = $3, role = $4,
		        manager_id = $5, updated_at = now()
		 WHERE id = $6`,
		u.Name, u.Email, u.PasswordHash, u.Role, nilIfEmpty(u.ManagerID), u.ID,
	)
	if err != nil {
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("userRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var managerID *string

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &managerID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	u.ManagerID = derefStr(managerID)
	return &u, nil
}

func scanUsers(rows pgx.Rows, caller string) ([]*domain.User, error) {
	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return users, nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
