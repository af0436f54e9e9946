package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdash/taskdash/internal/domain"
)

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tasks (id, title, description, assigned_id, assigned_to, due_date, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Title, t.Description, t.AssignedID, t.AssignedTo,
		t.DueDate, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Create: %w", err)
	}

	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task

	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, assigned_id, assigned_to, due_date, status, created_at, updated_at
		 FROM tasks WHERE id = $1`,
		id,
	).Scan(
		&t.ID, &t.Title, &t.Description, &t.AssignedID, &t.AssignedTo,
		&t.DueDate, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", err)
	}

	return &t, nil
}

func (r *TaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, assigned_id, assigned_to, due_date, status, created_at, updated_at
		 FROM tasks
		 ORDER BY created_at
		 LIMIT 10000`,
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.List: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.List")
}

// ListByAssignee matches on the normalized identifier so tasks imported with
// legacy path-form assigned_id values are still found by a bare user id.
func (r *TaskRepo) ListByAssignee(ctx context.Context, assigneeID string) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, assigned_id, assigned_to, due_date, status, created_at, updated_at
		 FROM tasks
		 WHERE regexp_replace(assigned_id, '^.*/', '') = $1
		 ORDER BY created_at
		 LIMIT 10000`,
		domain.NormalizeID(assigneeID),
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListByAssignee: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.ListByAssignee")
}

func (r *TaskRepo) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET title = $1, description = $2, assigned_id = $3, assigned_to = $4,
		        due_date = $5, status = $6, updated_at = now()
		 WHERE id = $7`,
		t.Title, t.Description, t.AssignedID, t.AssignedTo,
		t.DueDate, t.Status, t.ID,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func scanTasks(rows pgx.Rows, caller string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.AssignedID, &t.AssignedTo,
			&t.DueDate, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return tasks, nil
}
