package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

// PrincipalCache is a short-lived cache in front of the user lookup the
// authentication middleware performs on every request. Invalidate must be
// called whenever a user's active flag or role changes so that a revoked
// account stops authenticating immediately.
type PrincipalCache interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Put(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, userID string) error
}
