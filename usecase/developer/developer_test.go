package developer_test

import (
	"context"
	"testing"

	"github.com/taskhive/backend/authz"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/usecase/developer"
)

type memTaskRepo struct {
	tasks map[string]*domain.Task
}

func (m *memTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if t, ok := m.tasks[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (m *memTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range m.tasks {
		if filter.AssignedTo != "" && t.AssignedTo != filter.AssignedTo {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (m *memTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	m.tasks[task.ID] = task
	return task, nil
}

func (m *memTaskRepo) Update(ctx context.Context, id string, update repository.TaskUpdate) (*domain.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if update.Status != nil {
		t.Status = *update.Status
	}
	copied := *t
	return &copied, nil
}

func (m *memTaskRepo) Delete(ctx context.Context, id string) error {
	delete(m.tasks, id)
	return nil
}

type stubProjectRepo struct{}

func (stubProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return nil, domain.ErrProjectNotFound
}

func (stubProjectRepo) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	return nil, nil
}

func (stubProjectRepo) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	return project, nil
}

func (stubProjectRepo) SetManager(ctx context.Context, id, managerID string) (*domain.Project, error) {
	return nil, domain.ErrProjectNotFound
}

type stubUserRepo struct{}

func (stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (stubUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return nil, nil
}

func (stubUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (stubUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	return nil
}

func (stubUserRepo) DeleteByEmail(ctx context.Context, email string) error {
	return nil
}

func newFixture() (*developer.UseCase, *memTaskRepo) {
	tasks := &memTaskRepo{tasks: map[string]*domain.Task{
		"t1": {ID: "t1", AssignedTo: "dev-1", Status: domain.StatusPending},
		"t2": {ID: "t2", AssignedTo: "dev-1", Status: domain.StatusInProgress},
		"t3": {ID: "t3", AssignedTo: "dev-2", Status: domain.StatusPending},
		"t4": {ID: "t4", AssignedTo: "dev-1", Status: domain.StatusCompleted},
	}}
	engine := authz.NewEngine(stubProjectRepo{}, stubUserRepo{})
	return developer.New(tasks, engine, nil, nil), tasks
}

var dev1 = domain.Principal{ID: "dev-1", Role: domain.RoleDeveloper}

func TestListTasks(t *testing.T) {
	uc, _ := newFixture()

	tasks, err := uc.ListTasks(context.Background(), dev1)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 assigned tasks, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.AssignedTo != "dev-1" {
			t.Errorf("foreign task %s leaked into the listing", task.ID)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	uc, tasks := newFixture()
	ctx := context.Background()

	updated, err := uc.UpdateStatus(ctx, dev1, "t1", domain.StatusCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.StatusCompleted {
		t.Errorf("status = %q, want %q", updated.Status, domain.StatusCompleted)
	}
	if tasks.tasks["t1"].Status != domain.StatusCompleted {
		t.Error("status not persisted")
	}

	// moving a completed task back is allowed
	if _, err := uc.UpdateStatus(ctx, dev1, "t1", domain.StatusPending); err != nil {
		t.Fatalf("backward transition should be allowed: %v", err)
	}
	// re-setting the current value is a no-op, not an error
	if _, err := uc.UpdateStatus(ctx, dev1, "t1", domain.StatusPending); err != nil {
		t.Fatalf("same-status update should be allowed: %v", err)
	}
}

func TestUpdateStatusNotAssignee(t *testing.T) {
	uc, tasks := newFixture()

	_, err := uc.UpdateStatus(context.Background(), dev1, "t3", domain.StatusCompleted)
	if !domain.IsDomainError(err, domain.ErrCodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if tasks.tasks["t3"].Status != domain.StatusPending {
		t.Error("denied update must not be persisted")
	}
}

func TestUpdateStatusInvalid(t *testing.T) {
	uc, _ := newFixture()
	ctx := context.Background()

	_, err := uc.UpdateStatus(ctx, dev1, "t1", "done")
	if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("expected invalid payload, got %v", err)
	}

	_, err = uc.UpdateStatus(ctx, dev1, "ghost", domain.StatusCompleted)
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestGetStats(t *testing.T) {
	uc, _ := newFixture()

	stats, err := uc.GetStats(context.Background(), dev1)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Tasks != 3 {
		t.Errorf("tasks = %d, want 3", stats.Tasks)
	}
	if stats.PendingTasks != 1 || stats.InProgressTasks != 1 || stats.CompletedTasks != 1 {
		t.Errorf("status breakdown wrong: %+v", stats)
	}
	if sum := stats.PendingTasks + stats.InProgressTasks + stats.CompletedTasks; sum != stats.Tasks {
		t.Errorf("status counts sum to %d, want %d", sum, stats.Tasks)
	}
}
