package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/taskdash/taskdash/internal/dashboard"
	"github.com/taskdash/taskdash/internal/envelope"
	"github.com/taskdash/taskdash/internal/server/middleware"
)

type DashboardOutput struct {
	Status int
	Body   envelope.Envelope[*dashboard.Summary]
}

func RegisterDashboardRoutes(api huma.API, svc DashboardService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard",
		Method:      http.MethodGet,
		Path:        "/dashboard",
		Summary:     "Role-scoped dashboard summary",
		Tags:        []string{"Dashboard"},
	}, func(ctx context.Context, _ *struct{}) (*DashboardOutput, error) {
		caller, ok := middleware.CallerFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing caller context")
		}

		env := svc.Summary(ctx, caller)
		return &DashboardOutput{Status: env.Status, Body: env}, nil
	})
}
