package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

type ProjectFilter struct {
	ManagerID string
}

type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	SetManager(ctx context.Context, id, managerID string) (*domain.Project, error)
}
