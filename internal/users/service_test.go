package users_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdash/taskdash/internal/domain"
	"github.com/taskdash/taskdash/internal/policy"
	"github.com/taskdash/taskdash/internal/users"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	createFunc        func(ctx context.Context, u *domain.User) error
	getByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	getByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	listFunc          func(ctx context.Context) ([]*domain.User, error)
	listByManagerFunc func(ctx context.Context, managerID string) ([]*domain.User, error)
	updateFunc        func(ctx context.Context, u *domain.User) error
	deleteFunc        func(ctx context.Context, id string) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.createFunc(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	return m.listFunc(ctx)
}

func (m *mockUserRepo) ListByManager(ctx context.Context, managerID string) ([]*domain.User, error) {
	return m.listByManagerFunc(ctx, managerID)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.updateFunc(ctx, u)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

type mockCredentialIssuer struct {
	issueFunc func() (string, string, error)
}

func (m *mockCredentialIssuer) IssueInitialPassword() (string, string, error) {
	if m.issueFunc != nil {
		return m.issueFunc()
	}
	return "one-time-pass", "argon2id-hash", nil
}

// ---------------------------------------------------------------------------
// TestVisible
// ---------------------------------------------------------------------------

func TestVisible(t *testing.T) {
	t.Parallel()

	t.Run("admin_gets_roster_with_manager_names", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepo{
			listFunc: func(_ context.Context) ([]*domain.User, error) {
				return []*domain.User{
					{ID: "u1", Name: "Alice", Role: domain.RoleManager},
					{ID: "u2", Name: "Bob", Role: domain.RoleEmployee, ManagerID: "users/u1"},
				}, nil
			},
		}
		svc := users.NewService(repo, &mockCredentialIssuer{})

		env := svc.Visible(context.Background(), domain.Caller{ID: "admin-1", Role: domain.RoleAdmin})

		require.Equal(t, http.StatusOK, env.Status)
		require.Len(t, env.Data, 2)
		assert.Equal(t, "Alice", env.Data[1].ManagerName)
	})

	t.Run("non_admin_forbidden_without_store_call", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepo{
			listFunc: func(_ context.Context) ([]*domain.User, error) {
				t.Fatal("store must not be contacted on the denial path")
				return nil, nil
			},
		}
		svc := users.NewService(repo, &mockCredentialIssuer{})

		for _, role := range []domain.Role{domain.RoleManager, domain.RoleEmployee, "intern"} {
			env := svc.Visible(context.Background(), domain.Caller{ID: "x", Role: role})
			assert.Equal(t, http.StatusForbidden, env.Status)
			assert.Equal(t, policy.MsgUserReadDenied, env.Message)
		}
	})

	t.Run("store_error_returns_empty_set", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepo{
			listFunc: func(_ context.Context) ([]*domain.User, error) {
				return nil, errors.New("connection refused")
			},
		}
		svc := users.NewService(repo, &mockCredentialIssuer{})

		env := svc.Visible(context.Background(), domain.Caller{ID: "admin-1", Role: domain.RoleAdmin})

		assert.Equal(t, http.StatusBadRequest, env.Status)
		require.NotNil(t, env.Data)
		assert.Empty(t, env.Data)
	})
}

// ---------------------------------------------------------------------------
// TestOptions
// ---------------------------------------------------------------------------

func TestOptions(t *testing.T) {
	t.Parallel()

	roster := []*domain.User{
		{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleManager},
		{ID: "u2", Name: "Bob", Email: "bob@example.com", Role: domain.RoleEmployee},
	}

	t.Run("every_valid_role_allowed", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepo{
			listFunc: func(_ context.Context) ([]*domain.User, error) { return roster, nil },
		}
		svc := users.NewService(repo, &mockCredentialIssuer{})

		for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee} {
			env := svc.Options(context.Background(), domain.Caller{ID: "x", Role: role})
			require.Equal(t, http.StatusOK, env.Status)
			require.Len(t, env.Data, 2)
			assert.Equal(t, users.Option{ID: "u1", Name: "Alice"}, env.Data[0])
		}
	})

	t.Run("unrecognized_role_forbidden", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(&mockUserRepo{}, &mockCredentialIssuer{})

		env := svc.Options(context.Background(), domain.Caller{ID: "x", Role: "intern"})

		assert.Equal(t, http.StatusForbidden, env.Status)
	})
}

// ---------------------------------------------------------------------------
// TestCreate
// ---------------------------------------------------------------------------

func TestCreate(t *testing.T) {
	t.Parallel()

	noDuplicate := func(_ context.Context, _ string) (*domain.User, error) {
		return nil, domain.ErrNotFound
	}

	t.Run("admin_creates_employee", func(t *testing.T) {
		t.Parallel()

		var stored *domain.User
		repo := &mockUserRepo{
			getByEmailFunc: noDuplicate,
			createFunc: func(_ context.Context, u *domain.User) error {
				stored = u
				return nil
			},
		}
		svc := users.NewService(repo, &mockCredentialIssuer{})

		env := svc.Create(context.Background(), domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}, &domain.User{
			Name: "Carol", Email: "carol@example.com", Role: domain.RoleEmployee, ManagerID: "u1",
		})

		require.Equal(t, http.StatusCreated, env.Status)
		require.NotNil(t, stored)
		assert.NotEmpty(t, stored.ID)
		assert.Equal(t, "argon2id-hash", stored.PasswordHash)
		assert.Equal(t, "one-time-pass", env.Data.InitialPassword)
	})

	t.Run("duplicate_email_rejected", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepo{
			getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
				return &domain.User{ID: "u9", Email: email}, nil
			},
		}
		svc := users.NewService(repo, &mockCredentialIssuer{})

		env := svc.Create(context.Background(), domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}, &domain.User{
			Name: "Carol", Email: "carol@example.com", Role: domain.RoleEmployee,
		})

		assert.Equal(t, http.StatusBadRequest, env.Status)
		assert.Equal(t, "A user with this email already exists", env.Message)
	})

	t.Run("duplicate_check_store_error_rejected", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepo{
			getByEmailFunc: func(_ context.Context, _ string) (*domain.User, error) {
				return nil, errors.New("connection reset")
			},
			createFunc: func(_ context.Context, _ *domain.User) error {
				t.Fatal("create must not be reached when the duplicate check fails")
				return nil
			},
		}
		svc := users.NewService(repo, &mockCredentialIssuer{})

		env := svc.Create(context.Background(), domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}, &domain.User{
			Name: "Carol", Email: "carol@example.com", Role: domain.RoleEmployee,
		})

		assert.Equal(t, http.StatusBadRequest, env.Status)
		assert.Equal(t, "Failed to create user", env.Message)
	})

	t.Run("manager_with_manager_rejected", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(&mockUserRepo{}, &mockCredentialIssuer{})

		env := svc.Create(context.Background(), domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}, &domain.User{
			Name: "Dana", Email: "dana@example.com", Role: domain.RoleManager, ManagerID: "u1",
		})

		assert.Equal(t, http.StatusBadRequest, env.Status)
		assert.Equal(t, "Only employees have a manager", env.Message)
	})

	t.Run("missing_fields_rejected", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(&mockUserRepo{}, &mockCredentialIssuer{})

		env := svc.Create(context.Background(), domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}, &domain.User{
			Role: domain.RoleEmployee,
		})

		assert.Equal(t, http.StatusBadRequest, env.Status)
	})

	t.Run("non_admin_forbidden", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(&mockUserRepo{}, &mockCredentialIssuer{})

		env := svc.Create(context.Background(), domain.Caller{ID: "mgr-1", Role: domain.RoleManager}, &domain.User{
			Name: "Carol", Email: "carol@example.com", Role: domain.RoleEmployee,
		})

		assert.Equal(t, http.StatusForbidden, env.Status)
		assert.Equal(t, policy.MsgUserWriteDenied, env.Message)
	})
}

// ---------------------------------------------------------------------------
// TestUpdate
// ---------------------------------------------------------------------------

func TestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("promotion_clears_manager_link", func(t *testing.T) {
		t.Parallel()

		var stored *domain.User
		repo := &mockUserRepo{
			getByIDFunc: func(_ context.Context, id string) (*domain.User, error) {
				return &domain.User{ID: id, Name: "Bob", Email: "bob@example.com", Role: domain.RoleEmployee, ManagerID: "u1"}, nil
			},
			updateFunc: func(_ context.Context, u *domain.User) error {
				stored = u
				return nil
			},
		}
		svc := users.NewService(repo, &mockCredentialIssuer{})

		env := svc.Update(context.Background(), domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}, "u2", &domain.User{
			Role: domain.RoleManager,
		})

		require.Equal(t, http.StatusOK, env.Status)
		require.NotNil(t, stored)
		assert.Equal(t, domain.RoleManager, stored.Role)
		assert.Empty(t, stored.ManagerID)
	})

	t.Run("unknown_role_rejected", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(&mockUserRepo{}, &mockCredentialIssuer{})

		env := svc.Update(context.Background(), domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}, "u2", &domain.User{
			Role: "supervisor",
		})

		assert.Equal(t, http.StatusBadRequest, env.Status)
		assert.Contains(t, env.Message, "supervisor")
	})

	t.Run("missing_user_not_found", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepo{
			getByIDFunc: func(_ context.Context, _ string) (*domain.User, error) {
				return nil, domain.ErrNotFound
			},
		}
		svc := users.NewService(repo, &mockCredentialIssuer{})

		env := svc.Update(context.Background(), domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}, "ghost", &domain.User{Name: "X"})

		assert.Equal(t, http.StatusNotFound, env.Status)
		assert.Equal(t, "User with ID ghost not found", env.Message)
	})
}

// ---------------------------------------------------------------------------
// TestDelete
// ---------------------------------------------------------------------------

func TestDelete(t *testing.T) {
	t.Parallel()

	t.Run("admin_deletes", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepo{
			deleteFunc: func(_ context.Context, id string) error {
				assert.Equal(t, "u2", id)
				return nil
			},
		}
		svc := users.NewService(repo, &mockCredentialIssuer{})

		env := svc.Delete(context.Background(), domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}, "u2")

		require.Equal(t, http.StatusOK, env.Status)
		assert.Equal(t, "u2", env.Data)
	})

	t.Run("missing_user_not_found", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepo{
			deleteFunc: func(_ context.Context, _ string) error { return domain.ErrNotFound },
		}
		svc := users.NewService(repo, &mockCredentialIssuer{})

		env := svc.Delete(context.Background(), domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}, "ghost")

		assert.Equal(t, http.StatusNotFound, env.Status)
	})

	t.Run("non_admin_forbidden", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(&mockUserRepo{}, &mockCredentialIssuer{})

		env := svc.Delete(context.Background(), domain.Caller{ID: "emp-1", Role: domain.RoleEmployee}, "u2")

		assert.Equal(t, http.StatusForbidden, env.Status)
		assert.Equal(t, policy.MsgUserDeleteDenied, env.Message)
	})
}
