// Package policy holds the access rules as pure predicates over the caller's
// role. Every mutating or user-reading operation consults these before any
// store access; a denied caller never reaches the store.
package policy

import "github.com/taskdash/taskdash/internal/domain"

// Fixed denial messages, one per guarded operation.
const (
	MsgTaskReadDenied   = "Access denied: unrecognized role"
	MsgTaskCreateDenied = "Access denied: Only admins and managers can create tasks"
	MsgTaskUpdateDenied = "Access denied: Only admins and managers can update tasks"
	MsgTaskDeleteDenied = "Access denied: Only admins can delete tasks"
	MsgUserReadDenied   = "Access denied: Only admins can view users"
	MsgUserWriteDenied  = "Access denied: Only admins can manage users"
	MsgUserDeleteDenied = "Access denied: Only admins can delete users"
)

// CanReadTasks is true for every role; what differs per role is the scope of
// the result set, not the permission to read.
func CanReadTasks(c domain.Caller) bool {
	return c.Role.Valid()
}

func CanWriteTask(c domain.Caller) bool {
	return c.Role == domain.RoleAdmin || c.Role == domain.RoleManager
}

func CanDeleteTask(c domain.Caller) bool {
	return c.Role == domain.RoleAdmin
}

func CanReadUsers(c domain.Caller) bool {
	return c.Role == domain.RoleAdmin
}

func CanWriteUser(c domain.Caller) bool {
	return c.Role == domain.RoleAdmin
}

func CanDeleteUser(c domain.Caller) bool {
	return c.Role == domain.RoleAdmin
}
