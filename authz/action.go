package authz

import "github.com/taskhive/backend/domain"

// Action names every operation a principal can invoke. The role table below
// is the single allow-list consulted by the route-level gate; ownership rules
// in engine.go refine it per record.
type Action string

const (
	UserViewAll Action = "USER_VIEW_ALL"
	UserCreate  Action = "USER_CREATE"
	UserToggle  Action = "USER_TOGGLE"

	ProjectViewAll Action = "PROJECT_VIEW_ALL"
	ProjectViewOwn Action = "PROJECT_VIEW_OWN"
	ProjectCreate  Action = "PROJECT_CREATE"
	ProjectAssign  Action = "PROJECT_ASSIGN"

	TaskViewAll      Action = "TASK_VIEW_ALL"
	TaskViewScoped   Action = "TASK_VIEW_SCOPED"
	TaskViewSelf     Action = "TASK_VIEW_SELF"
	TaskCreate       Action = "TASK_CREATE"
	TaskEditAny      Action = "TASK_EDIT_ANY"
	TaskEditOwn      Action = "TASK_EDIT_OWN"
	TaskDeleteAny    Action = "TASK_DELETE_ANY"
	TaskDeleteOwn    Action = "TASK_DELETE_OWN"
	TaskAssign       Action = "TASK_ASSIGN"
	TaskUpdateStatus Action = "TASK_UPDATE_STATUS"

	DeveloperList Action = "DEVELOPER_LIST"

	StatsGlobal Action = "STATS_GLOBAL"
	StatsScoped Action = "STATS_SCOPED"
	StatsSelf   Action = "STATS_SELF"
)

var roleActions = map[string][]Action{
	domain.RoleAdmin: {
		UserViewAll, UserCreate, UserToggle,
		ProjectViewAll, ProjectCreate, ProjectAssign,
		TaskViewAll, TaskEditAny, TaskDeleteAny,
		StatsGlobal,
	},
	domain.RoleManager: {
		ProjectViewOwn,
		TaskViewScoped, TaskCreate, TaskEditOwn, TaskDeleteOwn, TaskAssign,
		DeveloperList,
		StatsScoped,
	},
	domain.RoleDeveloper: {
		TaskViewSelf, TaskUpdateStatus,
		StatsSelf,
	},
}

// Can reports whether the role may invoke the action at all. This is the
// coarse gate; it never inspects the target record.
func Can(role string, action Action) bool {
	for _, a := range roleActions[role] {
		if a == action {
			return true
		}
	}
	return false
}

// Actions returns the action set granted to a role.
func Actions(role string) []Action {
	out := make([]Action, len(roleActions[role]))
	copy(out, roleActions[role])
	return out
}
