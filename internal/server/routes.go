package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/taskdash/taskdash/internal/api/v1"
	"github.com/taskdash/taskdash/internal/api/ws"
	"github.com/taskdash/taskdash/internal/auth"
)

func registerAuthRoutes(api huma.API, authSvc *auth.Service) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerAPIRoutes(api huma.API, deps Deps) {
	v1.RegisterTaskRoutes(api, deps.Tasks)
	v1.RegisterUserRoutes(api, deps.Users)
	v1.RegisterDashboardRoutes(api, deps.Dashboard)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/dashboard", hub.ServeDashboard)
}
