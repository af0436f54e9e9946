// Package dashboard implements the aggregation engine: a role-specific fetch
// plan gathers the raw records, then a pure fold rolls them into the summary
// the dashboard renders. Independent reads run concurrently; reads that
// depend on earlier results stay ordered. Any fetch failure fails the whole
// aggregation — a summary silently missing one employee's tasks is worse
// than no summary.
package dashboard

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/taskdash/taskdash/internal/domain"
	"github.com/taskdash/taskdash/internal/envelope"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// CalendarTask is the projection driving the calendar view. Completed tasks
// are deliberately excluded from it.
type CalendarTask struct {
	Date       string            `json:"date"`
	Title      string            `json:"title"`
	Status     domain.TaskStatus `json:"status"`
	AssignedTo string            `json:"assignedTo"`
}

type TeamMember struct {
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

type Summary struct {
	TotalTasks     int            `json:"total_tasks"`
	Status         []StatusCount  `json:"status"`
	Tasks          []CalendarTask `json:"tasks"`
	TeamMembers    []TeamMember   `json:"team_members"`
	TotalUsers     int            `json:"total_users"`
	TotalManagers  int            `json:"total_managers"`
	TotalEmployees int            `json:"total_employees"`
}

type Service struct {
	tasks domain.TaskRepository
	users domain.UserRepository
}

func NewService(tasks domain.TaskRepository, users domain.UserRepository) *Service {
	return &Service{tasks: tasks, users: users}
}

// Summary builds the dashboard summary for the caller. The user totals are
// computed over the caller's own roster (global for admins, the team for
// managers, just the caller for employees), not the whole store.
func (s *Service) Summary(ctx context.Context, caller domain.Caller) envelope.Envelope[*Summary] {
	var fetchFn func(context.Context, domain.Caller) ([]*domain.Task, []*domain.User, []TeamMember, error)

	switch caller.Role {
	case domain.RoleAdmin:
		fetchFn = s.fetchAdmin
	case domain.RoleManager:
		fetchFn = s.fetchManager
	case domain.RoleEmployee:
		fetchFn = s.fetchEmployee
	default:
		return envelope.Forbidden[*Summary]("Access denied: unrecognized role")
	}

	tasks, users, team, err := fetchFn(ctx, caller)
	if err != nil {
		log.Error().Err(err).Str("caller", caller.ID).Str("role", string(caller.Role)).Msg("dashboard: fetch failed")
		return envelope.Failure[*Summary]("Failed to fetch dashboard data")
	}

	return envelope.OK("Dashboard data fetched successfully", fold(tasks, users, team))
}

// fetchAdmin: all tasks and all users, fetched concurrently. Admins have no
// personal team panel.
func (s *Service) fetchAdmin(ctx context.Context, _ domain.Caller) ([]*domain.Task, []*domain.User, []TeamMember, error) {
	var (
		tasks []*domain.Task
		users []*domain.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.tasks.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.users.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	return tasks, users, []TeamMember{}, nil
}

// fetchManager: the roster (self + direct reports) must be known before the
// per-member task fetches, which then run concurrently.
func (s *Service) fetchManager(ctx context.Context, caller domain.Caller) ([]*domain.Task, []*domain.User, []TeamMember, error) {
	var (
		self    *domain.User
		reports []*domain.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		self, err = s.users.GetByID(gctx, caller.ID)
		return err
	})
	g.Go(func() error {
		listed, err := s.users.ListByManager(gctx, caller.ID)
		if err != nil {
			return err
		}
		reports = filterEmployees(listed)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	roster := append([]*domain.User{self}, reports...)

	// One task fetch per roster member; results keep roster order.
	byMember := make([][]*domain.Task, len(roster))
	g, gctx = errgroup.WithContext(ctx)
	for i, member := range roster {
		g.Go(func() error {
			var err error
			byMember[i], err = s.tasks.ListByAssignee(gctx, member.ID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	var tasks []*domain.Task
	for _, batch := range byMember {
		tasks = append(tasks, batch...)
	}

	return tasks, roster, project(roster), nil
}

// fetchEmployee: own tasks plus the peer group (the manager and the manager's
// other direct reports). The self lookup must come first; the rest is
// independent.
func (s *Service) fetchEmployee(ctx context.Context, caller domain.Caller) ([]*domain.Task, []*domain.User, []TeamMember, error) {
	self, err := s.users.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	var (
		tasks   []*domain.Task
		manager *domain.User
		peers   []*domain.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var ferr error
		tasks, ferr = s.tasks.ListByAssignee(gctx, self.ID)
		return ferr
	})
	if self.ManagerID != "" {
		g.Go(func() error {
			var ferr error
			manager, ferr = s.users.GetByID(gctx, self.ManagerID)
			return ferr
		})
		g.Go(func() error {
			listed, ferr := s.users.ListByManager(gctx, self.ManagerID)
			if ferr != nil {
				return ferr
			}
			peers = filterEmployees(listed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	team := []TeamMember{}
	if manager != nil {
		team = append(project([]*domain.User{manager}), project(peers)...)
	}

	return tasks, []*domain.User{self}, team, nil
}

// fold is the common pure post-processing shared by every role.
func fold(tasks []*domain.Task, users []*domain.User, team []TeamMember) *Summary {
	counts := make(map[string]int, len(tasks))
	var order []string
	for _, t := range tasks {
		label := string(t.Status)
		if label == "" {
			label = "Unknown"
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	statusSeq := make([]StatusCount, 0, len(order))
	for _, label := range order {
		statusSeq = append(statusSeq, StatusCount{Status: label, Count: counts[label]})
	}

	calendar := make([]CalendarTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Status.Open() {
			calendar = append(calendar, CalendarTask{
				Date:       t.DueDate,
				Title:      t.Title,
				Status:     t.Status,
				AssignedTo: t.AssignedTo,
			})
		}
	}

	var managers, employees int
	for _, u := range users {
		switch u.Role {
		case domain.RoleManager:
			managers++
		case domain.RoleEmployee:
			employees++
		}
	}

	if team == nil {
		team = []TeamMember{}
	}

	return &Summary{
		TotalTasks:     len(tasks),
		Status:         statusSeq,
		Tasks:          calendar,
		TeamMembers:    team,
		TotalUsers:     len(users),
		TotalManagers:  managers,
		TotalEmployees: employees,
	}
}

func filterEmployees(users []*domain.User) []*domain.User {
	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if u.Role == domain.RoleEmployee {
			out = append(out, u)
		}
	}
	return out
}

func project(users []*domain.User) []TeamMember {
	out := make([]TeamMember, 0, len(users))
	for _, u := range users {
		out = append(out, TeamMember{Name: u.Name, Role: u.Role})
	}
	return out
}
