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

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

// Reads join project and user summaries so every returned task arrives
// populated, mirroring the reference fields clients render.
const taskSelect = `
	SELECT t.id, t.title, COALESCE(t.description, ''), t.status,
	       t.project_id, t.assigned_to, t.created_by,
	       p.name, au.name, au.email, cu.name,
	       t.created_at, t.updated_at
	FROM tasks t
	LEFT JOIN projects p ON p.id = t.project_id
	LEFT JOIN users au ON au.id = t.assigned_to
	LEFT JOIN users cu ON cu.id = t.created_by
`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := taskSelect + ` WHERE t.id = $1`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	// ProjectIDs/CreatedBy form the visibility union; the rest narrow it.
	query := taskSelect + `
	WHERE (($1::text[] IS NULL AND $2 = '') OR t.project_id = ANY($1) OR t.created_by = $2)
	  AND ($3 = '' OR t.status = $3)
	  AND ($4 = '' OR t.project_id = $4)
	  AND ($5 = '' OR t.assigned_to = $5)
	ORDER BY t.created_at DESC
	`
	var projectIDs []string
	if len(filter.ProjectIDs) > 0 {
		projectIDs = filter.ProjectIDs
	}
	rows, err := r.pool.Query(ctx, query,
		projectIDs,
		filter.CreatedBy,
		filter.Status,
		filter.ProjectID,
		filter.AssignedTo,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Status == "" {
		task.Status = domain.StatusPending
	}

	const query = `
	INSERT INTO tasks (id, title, description, status, project_id, assigned_to, created_by)
	VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), $7)
	`
	if _, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.ProjectID,
		task.AssignedTo,
		task.CreatedBy,
	); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, task.ID)
}

func (r *taskRepository) Update(ctx context.Context, id string, update repository.TaskUpdate) (*domain.Task, error) {
	const query = `
	UPDATE tasks
	SET title = COALESCE($2, title),
		description = COALESCE($3, description),
		status = COALESCE($4, status),
		project_id = COALESCE(NULLIF($5, ''), project_id),
		assigned_to = COALESCE(NULLIF($6, ''), assigned_to),
		updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		id,
		update.Title,
		update.Description,
		update.Status,
		deref(update.ProjectID),
		deref(update.AssignedTo),
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		task          domain.Task
		projectID     *string
		assignedTo    *string
		projectName   *string
		assigneeName  *string
		assigneeEmail *string
		creatorName   *string
	)
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&projectID,
		&assignedTo,
		&task.CreatedBy,
		&projectName,
		&assigneeName,
		&assigneeEmail,
		&creatorName,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	if projectID != nil {
		task.ProjectID = *projectID
		task.Project = &domain.ProjectRef{ID: *projectID}
		if projectName != nil {
			task.Project.Name = *projectName
		}
	}
	if assignedTo != nil {
		task.AssignedTo = *assignedTo
		task.Assignee = &domain.UserRef{ID: *assignedTo}
		if assigneeName != nil {
			task.Assignee.Name = *assigneeName
		}
		if assigneeEmail != nil {
			task.Assignee.Email = *assigneeEmail
		}
	}
	if task.CreatedBy != "" {
		task.Creator = &domain.UserRef{ID: task.CreatedBy}
		if creatorName != nil {
			task.Creator.Name = *creatorName
		}
	}
	return &task, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
