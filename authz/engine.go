// Package authz holds the authorization model: a declarative role→action
// table (the coarse gate) and the ownership rules evaluated against a loaded
// record. Every rule that can fail for two reasons keeps absent resources
// (NOT_FOUND) distinct from present-but-unauthorized ones (FORBIDDEN).
package authz

import (
	"context"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

var (
	errCreateInForeignProject = domain.NewError(domain.ErrCodeForbidden, "You can only create tasks in your own projects")
	errMoveToForeignProject   = domain.NewError(domain.ErrCodeForbidden, "You can only assign tasks to your own projects")
	errEditNotAllowed         = domain.NewError(domain.ErrCodeForbidden, "Not allowed to edit this task")
	errDeleteNotAllowed       = domain.NewError(domain.ErrCodeForbidden, "Not allowed to delete this task")
	errAssignNotAllowed       = domain.NewError(domain.ErrCodeForbidden, "Not allowed to assign this task")
	errViewNotAllowed         = domain.NewError(domain.ErrCodeForbidden, "Not allowed to view this task")
	errStatusNotAllowed       = domain.NewError(domain.ErrCodeForbidden, "Not allowed")
)

// Engine evaluates ownership rules. It needs read access to projects and
// users because several rules depend on the state of a referenced record, not
// just the one being mutated.
type Engine struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
}

func NewEngine(projects repository.ProjectRepository, users repository.UserRepository) *Engine {
	return &Engine{projects: projects, users: users}
}

// Can exposes the role table through the engine for callers holding one.
func (e *Engine) Can(role string, action Action) bool {
	return Can(role, action)
}

// TaskCreate authorizes a manager creating a task, optionally inside a
// project. A missing project is NOT_FOUND; a project owned by someone else is
// FORBIDDEN.
func (e *Engine) TaskCreate(ctx context.Context, p domain.Principal, projectID string) error {
	if projectID == "" {
		return nil
	}
	project, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !p.Owns(project.ManagerID) {
		return errCreateInForeignProject
	}
	return nil
}

// TaskEdit authorizes a manager editing a task they created. Moving the task
// to another project additionally requires ownership of the target project;
// an unknown target project is reported as FORBIDDEN, same as a foreign one.
func (e *Engine) TaskEdit(ctx context.Context, p domain.Principal, task *domain.Task, newProjectID string) error {
	if !p.Owns(task.CreatedBy) {
		return errEditNotAllowed
	}
	if newProjectID == "" {
		return nil
	}
	project, err := e.projects.GetByID(ctx, newProjectID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return errMoveToForeignProject
		}
		return err
	}
	if !p.Owns(project.ManagerID) {
		return errMoveToForeignProject
	}
	return nil
}

// TaskDelete authorizes a manager deleting a task they created.
func (e *Engine) TaskDelete(p domain.Principal, task *domain.Task) error {
	if !p.Owns(task.CreatedBy) {
		return errDeleteNotAllowed
	}
	return nil
}

// VerifyAssignee checks the assignment target independently of the caller's
// ownership: the user must exist, hold the developer role and be active.
func (e *Engine) VerifyAssignee(ctx context.Context, developerID string) error {
	dev, err := e.users.GetByID(ctx, developerID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return domain.ErrDeveloperNotFound
		}
		return err
	}
	if !dev.IsDeveloper() || !dev.IsActive {
		return domain.ErrDeveloperNotFound
	}
	return nil
}

// TaskAssign authorizes a manager assigning a task: the caller must manage
// the task's project or have created the task.
func (e *Engine) TaskAssign(ctx context.Context, p domain.Principal, task *domain.Task) error {
	ok, err := e.managesOrCreated(ctx, p, task)
	if err != nil {
		return err
	}
	if !ok {
		return errAssignNotAllowed
	}
	return nil
}

// TaskView authorizes a manager fetching a single task by id, under the same
// project-manager-or-creator rule as assignment.
func (e *Engine) TaskView(ctx context.Context, p domain.Principal, task *domain.Task) error {
	ok, err := e.managesOrCreated(ctx, p, task)
	if err != nil {
		return err
	}
	if !ok {
		return errViewNotAllowed
	}
	return nil
}

// StatusUpdate authorizes a developer writing a task's status field.
func (e *Engine) StatusUpdate(p domain.Principal, task *domain.Task) error {
	if !p.Owns(task.AssignedTo) {
		return errStatusNotAllowed
	}
	return nil
}

func (e *Engine) managesOrCreated(ctx context.Context, p domain.Principal, task *domain.Task) (bool, error) {
	if p.Owns(task.CreatedBy) {
		return true, nil
	}
	if task.ProjectID == "" {
		return false, nil
	}
	project, err := e.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		// A dangling project reference leaves only the creator rule.
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return p.Owns(project.ManagerID), nil
}
