// Package tasks implements the task-facing core operations: role-scoped
// reads and policy-guarded mutations, all returning the uniform envelope.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/taskdash/taskdash/internal/domain"
	"github.com/taskdash/taskdash/internal/envelope"
	"github.com/taskdash/taskdash/internal/policy"
	"github.com/taskdash/taskdash/internal/scope"
	redisstore "github.com/taskdash/taskdash/internal/store/redis"
)

// EventPublisher broadcasts task-change notifications to live dashboards.
// *redisstore.PubSub satisfies this interface. May be nil (no live updates).
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type Service struct {
	tasks  domain.TaskRepository
	users  domain.UserRepository
	events EventPublisher
}

func NewService(tasks domain.TaskRepository, users domain.UserRepository, events EventPublisher) *Service {
	return &Service{tasks: tasks, users: users, events: events}
}

// Visible returns the caller's scoped task set, sorted ascending by due date.
// Reading is allowed for every role; the scope differs. The task and user
// collections are independent snapshots and are fetched concurrently.
func (s *Service) Visible(ctx context.Context, caller domain.Caller) envelope.Envelope[[]*domain.Task] {
	if !policy.CanReadTasks(caller) {
		return envelope.Forbidden[[]*domain.Task](policy.MsgTaskReadDenied)
	}

	var (
		allTasks []*domain.Task
		allUsers []*domain.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		allTasks, err = s.tasks.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		allUsers, err = s.users.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Str("caller", caller.ID).Msg("tasks: fetch failed")
		return envelope.FailureWith("Failed to fetch tasks", make([]*domain.Task, 0))
	}

	visible := scope.VisibleTasks(caller, allTasks, allUsers)
	return envelope.OK("Tasks fetched successfully", visible)
}

func (s *Service) Create(ctx context.Context, caller domain.Caller, t *domain.Task) envelope.Envelope[*domain.Task] {
	if !policy.CanWriteTask(caller) {
		return envelope.Forbidden[*domain.Task](policy.MsgTaskCreateDenied)
	}
	if t.Status != "" && !t.Status.Known() {
		return envelope.Failure[*domain.Task](fmt.Sprintf("Unknown task status %q", t.Status))
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = domain.TaskStatusPending
	}
	s.snapshotAssignee(ctx, t)

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.tasks.Create(ctx, t); err != nil {
		log.Error().Err(err).Str("task_id", t.ID).Msg("tasks: create failed")
		return envelope.Failure[*domain.Task]("Failed to create task")
	}

	s.publish(ctx, "task.created", t.ID)
	return envelope.Created("Task created successfully", t)
}

func (s *Service) Update(ctx context.Context, caller domain.Caller, id string, in *domain.Task) envelope.Envelope[*domain.Task] {
	if !policy.CanWriteTask(caller) {
		return envelope.Forbidden[*domain.Task](policy.MsgTaskUpdateDenied)
	}
	if in.Status != "" && !in.Status.Known() {
		return envelope.Failure[*domain.Task](fmt.Sprintf("Unknown task status %q", in.Status))
	}

	existing, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return envelope.NotFound[*domain.Task](fmt.Sprintf("Task with ID %s not found", id))
		}
		log.Error().Err(err).Str("task_id", id).Msg("tasks: lookup failed")
		return envelope.Failure[*domain.Task]("Failed to update task")
	}

	if in.Title != "" {
		existing.Title = in.Title
	}
	if in.Description != "" {
		existing.Description = in.Description
	}
	if in.AssignedID != "" && in.AssignedID != existing.AssignedID {
		existing.AssignedID = in.AssignedID
		existing.AssignedTo = in.AssignedTo
		s.snapshotAssignee(ctx, existing)
	} else if in.AssignedTo != "" {
		existing.AssignedTo = in.AssignedTo
	}
	if in.DueDate != "" {
		existing.DueDate = in.DueDate
	}
	if in.Status != "" {
		existing.Status = in.Status
	}
	existing.UpdatedAt = time.Now()

	if err := s.tasks.Update(ctx, existing); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return envelope.NotFound[*domain.Task](fmt.Sprintf("Task with ID %s not found", id))
		}
		log.Error().Err(err).Str("task_id", id).Msg("tasks: update failed")
		return envelope.Failure[*domain.Task]("Failed to update task")
	}

	s.publish(ctx, "task.updated", id)
	return envelope.OK("Task updated successfully", existing)
}

func (s *Service) Delete(ctx context.Context, caller domain.Caller, id string) envelope.Envelope[string] {
	if !policy.CanDeleteTask(caller) {
		return envelope.Forbidden[string](policy.MsgTaskDeleteDenied)
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return envelope.NotFound[string](fmt.Sprintf("Task with ID %s not found", id))
		}
		log.Error().Err(err).Str("task_id", id).Msg("tasks: delete failed")
		return envelope.Failure[string]("Failed to delete task")
	}

	s.publish(ctx, "task.deleted", id)
	return envelope.OK("Task deleted successfully", id)
}

// snapshotAssignee fills the display-name snapshot from the assignee's user
// record when the form did not supply one. An unknown assignee is not an
// error; the snapshot just stays empty.
func (s *Service) snapshotAssignee(ctx context.Context, t *domain.Task) {
	if t.AssignedTo != "" || t.AssignedID == "" {
		return
	}
	u, err := s.users.GetByID(ctx, t.AssignedID)
	if err != nil {
		return
	}
	t.AssignedTo = u.Name
}

func (s *Service) publish(ctx context.Context, event, taskID string) {
	if s.events == nil {
		return
	}
	payload, _ := json.Marshal(map[string]string{"event": event, "task_id": taskID})
	if err := s.events.Publish(ctx, redisstore.TaskEventsChannel(), payload); err != nil {
		log.Warn().Err(err).Str("event", event).Msg("tasks: event publish failed")
	}
}
