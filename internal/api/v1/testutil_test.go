package v1_test

import (
	"context"

	"github.com/taskdash/taskdash/internal/dashboard"
	"github.com/taskdash/taskdash/internal/domain"
	"github.com/taskdash/taskdash/internal/envelope"
	"github.com/taskdash/taskdash/internal/server/middleware"
	"github.com/taskdash/taskdash/internal/users"
)

// ---------------------------------------------------------------------------
// Context helpers — inject the caller into context for DoCtx
// ---------------------------------------------------------------------------

func callerCtx(id string, role domain.Role) context.Context {
	return middleware.WithCaller(context.Background(), domain.Caller{ID: id, Role: role})
}

func adminCtx() context.Context    { return callerCtx("admin-1", domain.RoleAdmin) }
func managerCtx() context.Context  { return callerCtx("mgr-1", domain.RoleManager) }
func employeeCtx() context.Context { return callerCtx("emp-1", domain.RoleEmployee) }

// ---------------------------------------------------------------------------
// Mock TaskService
// ---------------------------------------------------------------------------

type mockTaskService struct {
	visibleFunc func(ctx context.Context, caller domain.Caller) envelope.Envelope[[]*domain.Task]
	createFunc  func(ctx context.Context, caller domain.Caller, t *domain.Task) envelope.Envelope[*domain.Task]
	updateFunc  func(ctx context.Context, caller domain.Caller, id string, t *domain.Task) envelope.Envelope[*domain.Task]
	deleteFunc  func(ctx context.Context, caller domain.Caller, id string) envelope.Envelope[string]
}

func (m *mockTaskService) Visible(ctx context.Context, caller domain.Caller) envelope.Envelope[[]*domain.Task] {
	return m.visibleFunc(ctx, caller)
}

func (m *mockTaskService) Create(ctx context.Context, caller domain.Caller, t *domain.Task) envelope.Envelope[*domain.Task] {
	return m.createFunc(ctx, caller, t)
}

func (m *mockTaskService) Update(ctx context.Context, caller domain.Caller, id string, t *domain.Task) envelope.Envelope[*domain.Task] {
	return m.updateFunc(ctx, caller, id, t)
}

func (m *mockTaskService) Delete(ctx context.Context, caller domain.Caller, id string) envelope.Envelope[string] {
	return m.deleteFunc(ctx, caller, id)
}

// ---------------------------------------------------------------------------
// Mock UserService
// ---------------------------------------------------------------------------

type mockUserService struct {
	visibleFunc func(ctx context.Context, caller domain.Caller) envelope.Envelope[[]*domain.User]
	optionsFunc func(ctx context.Context, caller domain.Caller) envelope.Envelope[[]users.Option]
	createFunc  func(ctx context.Context, caller domain.Caller, u *domain.User) envelope.Envelope[*users.NewUser]
	updateFunc  func(ctx context.Context, caller domain.Caller, id string, u *domain.User) envelope.Envelope[*domain.User]
	deleteFunc  func(ctx context.Context, caller domain.Caller, id string) envelope.Envelope[string]
}

func (m *mockUserService) Visible(ctx context.Context, caller domain.Caller) envelope.Envelope[[]*domain.User] {
	return m.visibleFunc(ctx, caller)
}

func (m *mockUserService) Options(ctx context.Context, caller domain.Caller) envelope.Envelope[[]users.Option] {
	return m.optionsFunc(ctx, caller)
}

func (m *mockUserService) Create(ctx context.Context, caller domain.Caller, u *domain.User) envelope.Envelope[*users.NewUser] {
	return m.createFunc(ctx, caller, u)
}

func (m *mockUserService) Update(ctx context.Context, caller domain.Caller, id string, u *domain.User) envelope.Envelope[*domain.User] {
	return m.updateFunc(ctx, caller, id, u)
}

func (m *mockUserService) Delete(ctx context.Context, caller domain.Caller, id string) envelope.Envelope[string] {
	return m.deleteFunc(ctx, caller, id)
}

// ---------------------------------------------------------------------------
// Mock DashboardService
// ---------------------------------------------------------------------------

type mockDashboardService struct {
	summaryFunc func(ctx context.Context, caller domain.Caller) envelope.Envelope[*dashboard.Summary]
}

func (m *mockDashboardService) Summary(ctx context.Context, caller domain.Caller) envelope.Envelope[*dashboard.Summary] {
	return m.summaryFunc(ctx, caller)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	loginFunc   func(ctx context.Context, email, password string) (*domain.User, string, string, error)
	refreshFunc func(ctx context.Context, refreshToken string) (string, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshFunc(ctx, refreshToken)
}
