package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskdash/taskdash/internal/domain"
)

// ---------------------------------------------------------------------------
// 1. NormalizeID — path-form reduction and idempotence.
// ---------------------------------------------------------------------------

func TestNormalizeID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare_id", "5", "5"},
		{"uuid", "7c9e6679-7425-40de-944b-e07fc1f90ae7", "7c9e6679-7425-40de-944b-e07fc1f90ae7"},
		{"legacy_path", "users/5", "5"},
		{"nested_path", "a/b/c", "c"},
		{"trailing_slash", "users/", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, domain.NormalizeID(tt.in))
		})
	}
}

func TestNormalizeID_Idempotent(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"", "5", "users/5", "a/b/c"} {
		once := domain.NormalizeID(id)
		assert.Equal(t, once, domain.NormalizeID(once), "normalize(%q) must be a fixed point", id)
	}
}

// ---------------------------------------------------------------------------
// 2. TaskStatus predicates.
// ---------------------------------------------------------------------------

func TestTaskStatus_Known(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.TaskStatusPending.Known())
	assert.True(t, domain.TaskStatusInProgress.Known())
	assert.True(t, domain.TaskStatusCompleted.Known())
	assert.False(t, domain.TaskStatus("").Known())
	assert.False(t, domain.TaskStatus("Archived").Known())
}

func TestTaskStatus_Open(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.TaskStatusPending.Open())
	assert.True(t, domain.TaskStatusInProgress.Open())
	assert.False(t, domain.TaskStatusCompleted.Open())
	assert.False(t, domain.TaskStatus("").Open())
}

// ---------------------------------------------------------------------------
// 3. Role validity.
// ---------------------------------------------------------------------------

func TestRole_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.RoleAdmin.Valid())
	assert.True(t, domain.RoleManager.Valid())
	assert.True(t, domain.RoleEmployee.Valid())
	assert.False(t, domain.Role("owner").Valid())
	assert.False(t, domain.Role("").Valid())
}
