package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

type UserFilter struct {
	Role       string
	ActiveOnly bool
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) error
	DeleteByEmail(ctx context.Context, email string) error
}
