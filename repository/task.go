package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

// TaskFilter narrows List results. ProjectIDs and CreatedBy combine as a
// union (tasks in any of the projects OR created by the given user), matching
// the manager's visibility rule; the remaining fields are conjunctive.
type TaskFilter struct {
	ProjectIDs []string
	CreatedBy  string
	AssignedTo string
	ProjectID  string
	Status     string
}

// TaskUpdate carries a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	ProjectID   *string
	AssignedTo  *string
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id string, update TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
