// Package manager implements the manager operations. Unlike admin, every
// record-touching call runs an ownership rule from the authz engine before
// the store is mutated.
package manager

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskhive/backend/authz"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/usecase"
)

type UseCase struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
	authz    *authz.Engine
	audit    usecase.AuditTrail
	logger   *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	projects repository.ProjectRepository,
	users repository.UserRepository,
	engine *authz.Engine,
	audit usecase.AuditTrail,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		projects: projects,
		users:    users,
		authz:    engine,
		audit:    audit,
		logger:   logger,
	}
}

type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   string
	AssignedTo  string
}

// EditTaskInput carries a partial edit; nil fields stay untouched.
type EditTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	ProjectID   *string
}

// TaskQuery filters the manager's task listing.
type TaskQuery struct {
	Status     string
	ProjectID  string
	AssignedTo string
}

// Stats is the manager dashboard payload, scoped to owned projects.
type Stats struct {
	Projects        int `json:"projects"`
	Tasks           int `json:"tasks"`
	Developers      int `json:"developers"`
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
}

// CreateTask creates a task owned by the caller. A referenced project must
// exist and be managed by the caller; the assignee reference is not validated
// here, only by the explicit assign operation.
func (uc *UseCase) CreateTask(ctx context.Context, p domain.Principal, input CreateTaskInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.authz.TaskCreate(ctx, p, input.ProjectID); err != nil {
		return nil, err
	}

	task, err := uc.tasks.Create(ctx, &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.StatusPending,
		ProjectID:   input.ProjectID,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   p.ID,
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, p, usecase.OperationCreate, task.ID)
	return task, nil
}

// EditTask updates a task the caller created.
func (uc *UseCase) EditTask(ctx context.Context, p domain.Principal, id string, input EditTaskInput) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newProjectID := ""
	if input.ProjectID != nil {
		newProjectID = *input.ProjectID
	}
	if err := uc.authz.TaskEdit(ctx, p, task, newProjectID); err != nil {
		return nil, err
	}

	updated, err := uc.tasks.Update(ctx, id, repository.TaskUpdate{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		ProjectID:   input.ProjectID,
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, p, usecase.OperationUpdate, id)
	return updated, nil
}

// DeleteTask removes a task the caller created.
func (uc *UseCase) DeleteTask(ctx context.Context, p domain.Principal, id string) error {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.authz.TaskDelete(p, task); err != nil {
		return err
	}
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}

	uc.record(ctx, p, usecase.OperationDelete, id)
	return nil
}

// AssignTask sets the task's assignee to an active developer. The target is
// verified before the task is even loaded, so a bad assignee reads as
// not-found regardless of the caller's ownership.
func (uc *UseCase) AssignTask(ctx context.Context, p domain.Principal, id, developerID string) (*domain.Task, error) {
	if err := uc.authz.VerifyAssignee(ctx, developerID); err != nil {
		return nil, err
	}

	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.authz.TaskAssign(ctx, p, task); err != nil {
		return nil, err
	}

	updated, err := uc.tasks.Update(ctx, id, repository.TaskUpdate{
		AssignedTo: &developerID,
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, p, usecase.OperationAssign, id)
	return updated, nil
}

// GetTask fetches a single task under the project-manager-or-creator rule.
func (uc *UseCase) GetTask(ctx context.Context, p domain.Principal, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.authz.TaskView(ctx, p, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns tasks created by the caller or belonging to their
// projects, optionally narrowed by query filters.
func (uc *UseCase) ListTasks(ctx context.Context, p domain.Principal, query TaskQuery) ([]domain.Task, error) {
	projectIDs, err := uc.ownedProjectIDs(ctx, p)
	if err != nil {
		return nil, err
	}

	return uc.tasks.List(ctx, repository.TaskFilter{
		ProjectIDs: projectIDs,
		CreatedBy:  p.ID,
		Status:     query.Status,
		ProjectID:  query.ProjectID,
		AssignedTo: query.AssignedTo,
	})
}

func (uc *UseCase) ListProjects(ctx context.Context, p domain.Principal) ([]domain.Project, error) {
	return uc.projects.List(ctx, repository.ProjectFilter{ManagerID: p.ID})
}

// ListDevelopers returns every active developer; the pool is global, not
// scoped to the caller's projects.
func (uc *UseCase) ListDevelopers(ctx context.Context) ([]domain.User, error) {
	return uc.users.List(ctx, repository.UserFilter{
		Role:       domain.RoleDeveloper,
		ActiveOnly: true,
	})
}

// GetStats counts owned projects, the tasks inside them and the global active
// developer pool.
func (uc *UseCase) GetStats(ctx context.Context, p domain.Principal) (*Stats, error) {
	projects, err := uc.projects.List(ctx, repository.ProjectFilter{ManagerID: p.ID})
	if err != nil {
		return nil, err
	}

	var tasks []domain.Task
	if len(projects) > 0 {
		ids := make([]string, len(projects))
		for i, project := range projects {
			ids[i] = project.ID
		}
		tasks, err = uc.tasks.List(ctx, repository.TaskFilter{ProjectIDs: ids})
		if err != nil {
			return nil, err
		}
	}

	developers, err := uc.ListDevelopers(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Projects:   len(projects),
		Tasks:      len(tasks),
		Developers: len(developers),
	}
	for _, t := range tasks {
		switch t.Status {
		case domain.StatusPending:
			stats.PendingTasks++
		case domain.StatusInProgress:
			stats.InProgressTasks++
		case domain.StatusCompleted:
			stats.CompletedTasks++
		}
	}
	return stats, nil
}

func (uc *UseCase) ownedProjectIDs(ctx context.Context, p domain.Principal) ([]string, error) {
	projects, err := uc.projects.List(ctx, repository.ProjectFilter{ManagerID: p.ID})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(projects))
	for i, project := range projects {
		ids[i] = project.ID
	}
	return ids, nil
}

func (uc *UseCase) record(ctx context.Context, actor domain.Principal, operation, taskID string) {
	if uc.audit == nil {
		return
	}
	if err := uc.audit.Record(ctx, actor, operation, usecase.EntityTask, taskID); err != nil {
		uc.logger.Warn("audit record failed",
			zap.String("operation", operation),
			zap.String("task_id", taskID),
			zap.Error(err))
	}
}
