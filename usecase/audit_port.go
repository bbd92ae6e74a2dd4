package usecase

import (
	"context"

	"github.com/taskhive/backend/domain"
)

// Audited entity kinds and operations.
const (
	EntityUser    = "user"
	EntityProject = "project"
	EntityTask    = "task"

	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationAssign = "assign"
	OperationToggle = "toggle"
	OperationStatus = "status"
)

// AuditTrail abstracts the audit recorder so use cases stay storage-agnostic.
// Recording is best-effort; use cases log failures and carry on.
type AuditTrail interface {
	Record(ctx context.Context, actor domain.Principal, operation, entity, entityID string) error
}
