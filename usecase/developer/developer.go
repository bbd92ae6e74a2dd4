// Package developer implements the developer operations: viewing assigned
// tasks and moving their status.
package developer

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskhive/backend/authz"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/usecase"
)

type UseCase struct {
	tasks  repository.TaskRepository
	authz  *authz.Engine
	audit  usecase.AuditTrail
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, engine *authz.Engine, audit usecase.AuditTrail, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		authz:  engine,
		audit:  audit,
		logger: logger,
	}
}

// Stats is the developer dashboard payload, scoped to the caller's
// assignments.
type Stats struct {
	Tasks           int `json:"tasks"`
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
}

// ListTasks returns the tasks assigned to the caller.
func (uc *UseCase) ListTasks(ctx context.Context, p domain.Principal) ([]domain.Task, error) {
	return uc.tasks.List(ctx, repository.TaskFilter{AssignedTo: p.ID})
}

// UpdateStatus writes the status field of a task assigned to the caller. Any
// status may overwrite any other; re-setting the current value is a no-op.
func (uc *UseCase) UpdateStatus(ctx context.Context, p domain.Principal, id, status string) (*domain.Task, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidPayload
	}

	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.authz.StatusUpdate(p, task); err != nil {
		return nil, err
	}

	updated, err := uc.tasks.Update(ctx, id, repository.TaskUpdate{Status: &status})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, p, id)
	return updated, nil
}

// GetStats counts the caller's assignments by status.
func (uc *UseCase) GetStats(ctx context.Context, p domain.Principal) (*Stats, error) {
	tasks, err := uc.ListTasks(ctx, p)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Tasks: len(tasks)}
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

func (uc *UseCase) record(ctx context.Context, actor domain.Principal, taskID string) {
	if uc.audit == nil {
		return
	}
	if err := uc.audit.Record(ctx, actor, usecase.OperationStatus, usecase.EntityTask, taskID); err != nil {
		uc.logger.Warn("audit record failed", zap.String("task_id", taskID), zap.Error(err))
	}
}
