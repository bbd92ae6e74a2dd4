package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository returns a Postgres-backed implementation of ProjectRepository.
func NewProjectRepository(pool *pgxpool.Pool) repository.ProjectRepository {
	return &projectRepository{pool: pool}
}

// Reads join the manager's summary fields so callers receive populated records.
const projectSelect = `
	SELECT p.id, p.name, COALESCE(p.description, ''), p.manager_id,
	       u.name, u.email,
	       p.created_at, p.updated_at
	FROM projects p
	LEFT JOIN users u ON u.id = p.manager_id
`

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := projectSelect + ` WHERE p.id = $1`
	return scanProject(r.pool.QueryRow(ctx, query, id))
}

func (r *projectRepository) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	query := projectSelect + `
	WHERE ($1 = '' OR p.manager_id = $1)
	ORDER BY p.created_at
	`
	rows, err := r.pool.Query(ctx, query, filter.ManagerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if project == nil {
		return nil, domain.ErrInvalidPayload
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO projects (id, name, description, manager_id)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
	`
	if _, err := r.pool.Exec(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.ManagerID,
	); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, project.ID)
}

func (r *projectRepository) SetManager(ctx context.Context, id, managerID string) (*domain.Project, error) {
	const query = `UPDATE projects SET manager_id = NULLIF($2, ''), updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, managerID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return r.GetByID(ctx, id)
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		project      domain.Project
		managerID    *string
		managerName  *string
		managerEmail *string
	)
	if err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&managerID,
		&managerName,
		&managerEmail,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	if managerID != nil {
		project.ManagerID = *managerID
		project.Manager = &domain.UserRef{ID: *managerID}
		if managerName != nil {
			project.Manager.Name = *managerName
		}
		if managerEmail != nil {
			project.Manager.Email = *managerEmail
		}
	}
	return &project, nil
}
