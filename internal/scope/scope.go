// Package scope implements the scoping engine: given the raw task and user
// collections plus a caller, it produces the subset of tasks that caller is
// authorized to view, sorted ascending by due date. It is pure — all fetching
// happens in the operation layer.
package scope

import (
	"math"
	"sort"
	"time"

	"github.com/taskdash/taskdash/internal/domain"
)

// Due dates arrive as bare calendar dates from the dashboard forms, but legacy
// records may carry full timestamps.
var dueDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// VisibleTasks filters tasks down to the caller's scope:
//
//   - admin: every task.
//   - manager: tasks assigned to the manager's direct reports.
//   - employee: tasks assigned to the caller.
//
// Identifiers are normalized before every comparison, so legacy path-form ids
// still match. Tasks whose assignee matches no user simply fall out of
// manager and employee scopes; they are never an error.
func VisibleTasks(caller domain.Caller, tasks []*domain.Task, users []*domain.User) []*domain.Task {
	callerID := domain.NormalizeID(caller.ID)
	visible := make([]*domain.Task, 0, len(tasks))

	switch caller.Role {
	case domain.RoleAdmin:
		visible = append(visible, tasks...)

	case domain.RoleManager:
		reports := make(map[string]struct{})
		for _, u := range users {
			if u.ManagerID != "" && domain.NormalizeID(u.ManagerID) == callerID {
				reports[domain.NormalizeID(u.ID)] = struct{}{}
			}
		}
		for _, t := range tasks {
			if _, ok := reports[domain.NormalizeID(t.AssignedID)]; ok {
				visible = append(visible, t)
			}
		}

	case domain.RoleEmployee:
		for _, t := range tasks {
			if domain.NormalizeID(t.AssignedID) == callerID {
				visible = append(visible, t)
			}
		}
	}

	SortByDueDate(visible)
	return visible
}

// SortByDueDate orders tasks ascending by due date, in place. A missing or
// unparseable date sorts after every valid one; ties and invalid dates keep
// their relative input order.
func SortByDueDate(tasks []*domain.Task) {
	keys := make(map[*domain.Task]int64, len(tasks))
	for _, t := range tasks {
		keys[t] = dueDateKey(t.DueDate)
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return keys[tasks[i]] < keys[tasks[j]]
	})
}

func dueDateKey(raw string) int64 {
	for _, layout := range dueDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.Unix()
		}
	}
	return math.MaxInt64
}
