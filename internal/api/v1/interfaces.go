package v1

import (
	"context"

	"github.com/taskdash/taskdash/internal/dashboard"
	"github.com/taskdash/taskdash/internal/domain"
	"github.com/taskdash/taskdash/internal/envelope"
	"github.com/taskdash/taskdash/internal/users"
)

// TaskService abstracts the task operations for handler testing.
// *tasks.Service satisfies this interface.
type TaskService interface {
	Visible(ctx context.Context, caller domain.Caller) envelope.Envelope[[]*domain.Task]
	Create(ctx context.Context, caller domain.Caller, t *domain.Task) envelope.Envelope[*domain.Task]
	Update(ctx context.Context, caller domain.Caller, id string, t *domain.Task) envelope.Envelope[*domain.Task]
	Delete(ctx context.Context, caller domain.Caller, id string) envelope.Envelope[string]
}

// UserService abstracts the user operations for handler testing.
// *users.Service satisfies this interface.
type UserService interface {
	Visible(ctx context.Context, caller domain.Caller) envelope.Envelope[[]*domain.User]
	Options(ctx context.Context, caller domain.Caller) envelope.Envelope[[]users.Option]
	Create(ctx context.Context, caller domain.Caller, u *domain.User) envelope.Envelope[*users.NewUser]
	Update(ctx context.Context, caller domain.Caller, id string, u *domain.User) envelope.Envelope[*domain.User]
	Delete(ctx context.Context, caller domain.Caller, id string) envelope.Envelope[string]
}

// DashboardService abstracts the aggregation engine for handler testing.
// *dashboard.Service satisfies this interface.
type DashboardService interface {
	Summary(ctx context.Context, caller domain.Caller) envelope.Envelope[*dashboard.Summary]
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
