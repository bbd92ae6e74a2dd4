package services

import (
	"context"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/internal/infrastructure/audit"
	"github.com/taskhive/backend/usecase"
)

// AuditBridge adapts the recorder to the usecase port.
type AuditBridge struct {
	recorder *AuditRecorder
}

func NewAuditBridge(recorder *AuditRecorder) *AuditBridge {
	return &AuditBridge{recorder: recorder}
}

func (b *AuditBridge) Record(ctx context.Context, actor domain.Principal, operation, entity, entityID string) error {
	if b.recorder == nil {
		return domain.NewError(domain.ErrCodeInternal, "audit recorder not configured")
	}
	return b.recorder.Record(audit.Entry{
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Operation: operation,
		Entity:    entity,
		EntityID:  entityID,
	})
}

var _ usecase.AuditTrail = (*AuditBridge)(nil)
