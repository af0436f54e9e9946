package middleware

import (
	"context"

	"github.com/taskdash/taskdash/internal/domain"
)

type contextKey string

const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUserRole contextKey = "role"
)

func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyUserID).(string)
	return v, ok
}

func RoleFromContext(ctx context.Context) (domain.Role, bool) {
	v, ok := ctx.Value(ContextKeyUserRole).(domain.Role)
	return v, ok
}

// CallerFromContext assembles the caller descriptor every core operation
// authorizes against. ok is false when the auth middleware did not run.
func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return domain.Caller{}, false
	}
	role, ok := RoleFromContext(ctx)
	if !ok {
		return domain.Caller{}, false
	}
	return domain.Caller{ID: id, Role: role}, true
}

// WithCaller returns a context carrying the caller identity. Used by the auth
// middleware and by tests.
func WithCaller(ctx context.Context, c domain.Caller) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUserID, c.ID)
	ctx = context.WithValue(ctx, ContextKeyUserRole, c.Role)
	return ctx
}
