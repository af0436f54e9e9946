package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/taskdash/taskdash/internal/domain"
	"github.com/taskdash/taskdash/internal/envelope"
	"github.com/taskdash/taskdash/internal/server/middleware"
)

// TaskPayload is the mutation body shared by create and update. Empty fields
// are "not provided" on update.
type TaskPayload struct {
	Title       string `json:"title,omitempty" maxLength:"500" doc:"Task title"`
	Description string `json:"description,omitempty" doc:"Task description"`
	AssignedID  string `json:"assigned_id,omitempty" doc:"Assignee user ID"`
	AssignedTo  string `json:"assigned_to,omitempty" doc:"Assignee display name"`
	DueDate     string `json:"due_date,omitempty" doc:"Due date (YYYY-MM-DD)"`
	Status      string `json:"status,omitempty" doc:"Task status"`
}

func (p TaskPayload) toDomain() *domain.Task {
	return &domain.Task{
		Title:       p.Title,
		Description: p.Description,
		AssignedID:  p.AssignedID,
		AssignedTo:  p.AssignedTo,
		DueDate:     p.DueDate,
		Status:      domain.TaskStatus(p.Status),
	}
}

type ListTasksOutput struct {
	Status int
	Body   envelope.Envelope[[]*domain.Task]
}

type CreateTaskInput struct {
	Body TaskPayload
}

type TaskOutput struct {
	Status int
	Body   envelope.Envelope[*domain.Task]
}

type UpdateTaskInput struct {
	ID   string `path:"id" doc:"Task ID"`
	Body TaskPayload
}

type DeleteTaskInput struct {
	ID string `path:"id" doc:"Task ID"`
}

type DeleteTaskOutput struct {
	Status int
	Body   envelope.Envelope[string]
}

func RegisterTaskRoutes(api huma.API, svc TaskService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks",
		Summary:     "List tasks visible to the caller",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, _ *struct{}) (*ListTasksOutput, error) {
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing caller context")
		}

		env := svc.Visible(ctx, caller)
		return &ListTasksOutput{Status: env.Status, Body: env}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-task",
		Method:      http.MethodPost,
		Path:        "/tasks",
		Summary:     "Create a new task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CreateTaskInput) (*TaskOutput, error) {
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing caller context")
		}

		env := svc.Create(ctx, caller, input.Body.toDomain())
		return &TaskOutput{Status: env.Status, Body: env}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-task",
		Method:      http.MethodPut,
		Path:        "/tasks/{id}",
		Summary:     "Update a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *UpdateTaskInput) (*TaskOutput, error) {
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing caller context")
		}

		env := svc.Update(ctx, caller, input.ID, input.Body.toDomain())
		return &TaskOutput{Status: env.Status, Body: env}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-task",
		Method:      http.MethodDelete,
		Path:        "/tasks/{id}",
		Summary:     "Delete a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *DeleteTaskInput) (*DeleteTaskOutput, error) {
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing caller context")
		}

		env := svc.Delete(ctx, caller, input.ID)
		return &DeleteTaskOutput{Status: env.Status, Body: env}, nil
	})
}
