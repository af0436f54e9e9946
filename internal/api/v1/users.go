package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/taskdash/taskdash/internal/domain"
	"github.com/taskdash/taskdash/internal/envelope"
	"github.com/taskdash/taskdash/internal/server/middleware"
	"github.com/taskdash/taskdash/internal/users"
)

type UserPayload struct {
	Name      string `json:"name,omitempty" maxLength:"255" doc:"Display name"`
	Email     string `json:"email,omitempty" maxLength:"255" doc:"Email address"`
	Role      string `json:"role,omitempty" doc:"Role: admin, manager or employee"`
	ManagerID string `json:"manager_id,omitempty" doc:"Manager user ID (employees only)"`
}

func (p UserPayload) toDomain() *domain.User {
	return &domain.User{
		Name:      p.Name,
		Email:     p.Email,
		Role:      domain.Role(p.Role),
		ManagerID: p.ManagerID,
	}
}

type ListUsersOutput struct {
	Status int
	Body   envelope.Envelope[[]*domain.User]
}

type UserOptionsOutput struct {
	Status int
	Body   envelope.Envelope[[]users.Option]
}

type CreateUserInput struct {
	Body UserPayload
}

type CreateUserOutput struct {
	Status int
	Body   envelope.Envelope[*users.NewUser]
}

type UpdateUserInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body UserPayload
}

type UserOutput struct {
	Status int
	Body   envelope.Envelope[*domain.User]
}

type DeleteUserInput struct {
	ID string `path:"id" doc:"User ID"`
}

type DeleteUserOutput struct {
	Status int
	Body   envelope.Envelope[string]
}

func RegisterUserRoutes(api huma.API, svc UserService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/users",
		Summary:     "List all users (admin only)",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing caller context")
		}

		env := svc.Visible(ctx, caller)
		return &ListUsersOutput{Status: env.Status, Body: env}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-user-options",
		Method:      http.MethodGet,
		Path:        "/users/options",
		Summary:     "List {id, name} pairs for assignment pickers",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, _ *struct{}) (*UserOptionsOutput, error) {
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing caller context")
		}

		env := svc.Options(ctx, caller)
		return &UserOptionsOutput{Status: env.Status, Body: env}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-user",
		Method:      http.MethodPost,
		Path:        "/users",
		Summary:     "Create a new user (admin only)",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error) {
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing caller context")
		}

		env := svc.Create(ctx, caller, input.Body.toDomain())
		return &CreateUserOutput{Status: env.Status, Body: env}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-user",
		Method:      http.MethodPut,
		Path:        "/users/{id}",
		Summary:     "Update a user (admin only)",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing caller context")
		}

		env := svc.Update(ctx, caller, input.ID, input.Body.toDomain())
		return &UserOutput{Status: env.Status, Body: env}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-user",
		Method:      http.MethodDelete,
		Path:        "/users/{id}",
		Summary:     "Delete a user (admin only)",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, input *DeleteUserInput) (*DeleteUserOutput, error) {
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing caller context")
		}

		env := svc.Delete(ctx, caller, input.ID)
		return &DeleteUserOutput{Status: env.Status, Body: env}, nil
	})
}
