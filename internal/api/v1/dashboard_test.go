package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/taskdash/taskdash/internal/api/v1"
	"github.com/taskdash/taskdash/internal/dashboard"
	"github.com/taskdash/taskdash/internal/domain"
	"github.com/taskdash/taskdash/internal/envelope"
)

func TestGetDashboard(t *testing.T) {
	t.Parallel()

	t.Run("manager_summary", func(t *testing.T) {
		t.Parallel()

		summary := &dashboard.Summary{
			TotalTasks: 3,
			Status: []dashboard.StatusCount{
				{Status: "Pending", Count: 2},
				{Status: "Completed", Count: 1},
			},
			Tasks: []dashboard.CalendarTask{
				{Date: "2026-02-01", Title: "Ship release", Status: "Pending", AssignedTo: "Bob"},
			},
			TeamMembers: []dashboard.TeamMember{
				{Name: "Alice", Role: "manager"},
				{Name: "Bob", Role: "employee"},
			},
		}

		_, api := humatest.New(t)
		svc := &mockDashboardService{
			summaryFunc: func(_ context.Context, caller domain.Caller) envelope.Envelope[*dashboard.Summary] {
				assert.Equal(t, "mgr-1", caller.ID)
				assert.Equal(t, domain.RoleManager, caller.Role)
				return envelope.OK("Dashboard data fetched successfully", summary)
			},
		}
		v1.RegisterDashboardRoutes(api, svc)

		resp := api.GetCtx(managerCtx(), "/dashboard")

		require.Equal(t, http.StatusOK, resp.Code)

		var body envelope.Envelope[*dashboard.Summary]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 3, body.Data.TotalTasks)
		assert.Len(t, body.Data.TeamMembers, 2)
		assert.Equal(t, "Bob", body.Data.Tasks[0].AssignedTo)
	})

	t.Run("unrecognized_role", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockDashboardService{
			summaryFunc: func(_ context.Context, _ domain.Caller) envelope.Envelope[*dashboard.Summary] {
				return envelope.Forbidden[*dashboard.Summary]("Access denied: unrecognized role")
			},
		}
		v1.RegisterDashboardRoutes(api, svc)

		resp := api.GetCtx(callerCtx("x-1", "intern"), "/dashboard")

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("upstream_failure", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockDashboardService{
			summaryFunc: func(_ context.Context, _ domain.Caller) envelope.Envelope[*dashboard.Summary] {
				return envelope.Failure[*dashboard.Summary]("Failed to fetch dashboard data")
			},
		}
		v1.RegisterDashboardRoutes(api, svc)

		resp := api.GetCtx(employeeCtx(), "/dashboard")

		require.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "Failed to fetch dashboard data")
	})

	t.Run("missing_caller", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		v1.RegisterDashboardRoutes(api, &mockDashboardService{})

		resp := api.GetCtx(context.Background(), "/dashboard")

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}
