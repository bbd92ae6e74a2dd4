// Package admin implements the administrator operations. Admins pass the
// role gate and face no ownership predicates: any user, project or task is in
// reach.
package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/usecase"
	"github.com/taskhive/backend/usecase/auth"
)

type UseCase struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
	cache    repository.PrincipalCache
	audit    usecase.AuditTrail
	logger   *zap.Logger
}

func New(
	users repository.UserRepository,
	projects repository.ProjectRepository,
	tasks repository.TaskRepository,
	cache repository.PrincipalCache,
	audit usecase.AuditTrail,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		projects: projects,
		tasks:    tasks,
		cache:    cache,
		audit:    audit,
		logger:   logger,
	}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Stats is the admin dashboard payload, computed over all records.
type Stats struct {
	Users           int `json:"users"`
	Projects        int `json:"projects"`
	Tasks           int `json:"tasks"`
	ActiveUsers     int `json:"activeUsers"`
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
}

func (uc *UseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	return uc.users.List(ctx, repository.UserFilter{})
}

func (uc *UseCase) CreateUser(ctx context.Context, actor domain.Principal, input CreateUserInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" || !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidPayload
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "password hashing failed", err)
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, actor, usecase.OperationCreate, usecase.EntityUser, user.ID)
	return user, nil
}

// ToggleUser flips the active flag. The principal cache entry is dropped so a
// deactivated user's next request fails authentication immediately.
func (uc *UseCase) ToggleUser(ctx context.Context, actor domain.Principal, id string) error {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.users.SetActive(ctx, id, !user.IsActive); err != nil {
		return err
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, id); err != nil {
			uc.logger.Warn("principal cache invalidation failed", zap.String("user_id", id), zap.Error(err))
		}
	}

	uc.record(ctx, actor, usecase.OperationToggle, usecase.EntityUser, id)
	return nil
}

func (uc *UseCase) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return uc.projects.List(ctx, repository.ProjectFilter{})
}

type CreateProjectInput struct {
	Name        string
	Description string
	ManagerID   string
}

func (uc *UseCase) CreateProject(ctx context.Context, actor domain.Principal, input CreateProjectInput) (*domain.Project, error) {
	if input.Name == "" {
		return nil, domain.ErrInvalidPayload
	}

	project, err := uc.projects.Create(ctx, &domain.Project{
		Name:        input.Name,
		Description: input.Description,
		ManagerID:   input.ManagerID,
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, actor, usecase.OperationCreate, usecase.EntityProject, project.ID)
	return project, nil
}

// AssignProject reassigns a project to another manager.
func (uc *UseCase) AssignProject(ctx context.Context, actor domain.Principal, projectID, managerID string) (*domain.Project, error) {
	project, err := uc.projects.SetManager(ctx, projectID, managerID)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, actor, usecase.OperationAssign, usecase.EntityProject, projectID)
	return project, nil
}

func (uc *UseCase) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return uc.tasks.List(ctx, repository.TaskFilter{})
}

// UpdateTask edits any task, no ownership check.
func (uc *UseCase) UpdateTask(ctx context.Context, actor domain.Principal, id string, update repository.TaskUpdate) (*domain.Task, error) {
	task, err := uc.tasks.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, actor, usecase.OperationUpdate, usecase.EntityTask, id)
	return task, nil
}

// DeleteTask removes any task, no ownership check.
func (uc *UseCase) DeleteTask(ctx context.Context, actor domain.Principal, id string) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}

	uc.record(ctx, actor, usecase.OperationDelete, usecase.EntityTask, id)
	return nil
}

// GetStats scans all three collections and counts by predicate.
func (uc *UseCase) GetStats(ctx context.Context) (*Stats, error) {
	users, err := uc.users.List(ctx, repository.UserFilter{})
	if err != nil {
		return nil, err
	}
	projects, err := uc.projects.List(ctx, repository.ProjectFilter{})
	if err != nil {
		return nil, err
	}
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Users:    len(users),
		Projects: len(projects),
		Tasks:    len(tasks),
	}
	for _, u := range users {
		if u.IsActive {
			stats.ActiveUsers++
		}
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

func (uc *UseCase) record(ctx context.Context, actor domain.Principal, operation, entity, entityID string) {
	if uc.audit == nil {
		return
	}
	if err := uc.audit.Record(ctx, actor, operation, entity, entityID); err != nil {
		uc.logger.Warn("audit record failed",
			zap.String("operation", operation),
			zap.String("entity", entity),
			zap.Error(err))
	}
}
