package authz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/taskhive/backend/authz"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type fakeProjectRepo struct {
	projects map[string]*domain.Project
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	if p, ok := f.projects[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProjectNotFound
}

func (f *fakeProjectRepo) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	return nil, nil
}

func (f *fakeProjectRepo) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	return project, nil
}

func (f *fakeProjectRepo) SetManager(ctx context.Context, id, managerID string) (*domain.Project, error) {
	return nil, domain.ErrProjectNotFound
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	return nil
}

func (f *fakeUserRepo) DeleteByEmail(ctx context.Context, email string) error {
	return nil
}

func newEngine() *authz.Engine {
	projects := &fakeProjectRepo{projects: map[string]*domain.Project{
		"proj-1": {ID: "proj-1", Name: "Alpha", ManagerID: "mgr-1"},
		"proj-2": {ID: "proj-2", Name: "Beta", ManagerID: "mgr-2"},
	}}
	users := &fakeUserRepo{users: map[string]*domain.User{
		"dev-1":   {ID: "dev-1", Role: domain.RoleDeveloper, IsActive: true},
		"dev-off": {ID: "dev-off", Role: domain.RoleDeveloper, IsActive: false},
		"mgr-1":   {ID: "mgr-1", Role: domain.RoleManager, IsActive: true},
	}}
	return authz.NewEngine(projects, users)
}

func assertForbidden(t *testing.T, err error, message string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected forbidden error %q, got nil", message)
	}
	var dErr *domain.Error
	if !errors.As(err, &dErr) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if dErr.Code != domain.ErrCodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %s", dErr.Code)
	}
	if dErr.Message != message {
		t.Fatalf("expected message %q, got %q", message, dErr.Message)
	}
}

func TestRoleTable(t *testing.T) {
	cases := []struct {
		role   string
		action authz.Action
		want   bool
	}{
		{domain.RoleAdmin, authz.UserCreate, true},
		{domain.RoleAdmin, authz.TaskEditAny, true},
		{domain.RoleAdmin, authz.TaskCreate, false},
		{domain.RoleManager, authz.TaskCreate, true},
		{domain.RoleManager, authz.TaskAssign, true},
		{domain.RoleManager, authz.UserCreate, false},
		{domain.RoleManager, authz.TaskUpdateStatus, false},
		{domain.RoleDeveloper, authz.TaskUpdateStatus, true},
		{domain.RoleDeveloper, authz.TaskViewSelf, true},
		{domain.RoleDeveloper, authz.TaskCreate, false},
		{"unknown", authz.TaskCreate, false},
	}
	for _, tc := range cases {
		if got := authz.Can(tc.role, tc.action); got != tc.want {
			t.Errorf("Can(%s, %s) = %v, want %v", tc.role, tc.action, got, tc.want)
		}
	}
}

func TestTaskCreate(t *testing.T) {
	engine := newEngine()
	ctx := context.Background()
	mgr := domain.Principal{ID: "mgr-1", Role: domain.RoleManager}

	if err := engine.TaskCreate(ctx, mgr, ""); err != nil {
		t.Fatalf("project-less create should pass: %v", err)
	}
	if err := engine.TaskCreate(ctx, mgr, "proj-1"); err != nil {
		t.Fatalf("own project create should pass: %v", err)
	}

	err := engine.TaskCreate(ctx, mgr, "missing")
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("unknown project should be not-found, got %v", err)
	}

	assertForbidden(t, engine.TaskCreate(ctx, mgr, "proj-2"), "You can only create tasks in your own projects")
}

func TestTaskEdit(t *testing.T) {
	engine := newEngine()
	ctx := context.Background()
	mgr := domain.Principal{ID: "mgr-1", Role: domain.RoleManager}
	task := &domain.Task{ID: "task-1", CreatedBy: "mgr-1"}

	if err := engine.TaskEdit(ctx, mgr, task, ""); err != nil {
		t.Fatalf("creator edit should pass: %v", err)
	}
	if err := engine.TaskEdit(ctx, mgr, task, "proj-1"); err != nil {
		t.Fatalf("move to own project should pass: %v", err)
	}

	foreign := &domain.Task{ID: "task-2", CreatedBy: "mgr-2"}
	assertForbidden(t, engine.TaskEdit(ctx, mgr, foreign, ""), "Not allowed to edit this task")

	// a foreign or unknown target project both read as forbidden
	assertForbidden(t, engine.TaskEdit(ctx, mgr, task, "proj-2"), "You can only assign tasks to your own projects")
	assertForbidden(t, engine.TaskEdit(ctx, mgr, task, "missing"), "You can only assign tasks to your own projects")
}

func TestTaskDelete(t *testing.T) {
	engine := newEngine()
	mgr := domain.Principal{ID: "mgr-1", Role: domain.RoleManager}

	if err := engine.TaskDelete(mgr, &domain.Task{CreatedBy: "mgr-1"}); err != nil {
		t.Fatalf("creator delete should pass: %v", err)
	}
	assertForbidden(t, engine.TaskDelete(mgr, &domain.Task{CreatedBy: "mgr-2"}), "Not allowed to delete this task")
}

func TestVerifyAssignee(t *testing.T) {
	engine := newEngine()
	ctx := context.Background()

	if err := engine.VerifyAssignee(ctx, "dev-1"); err != nil {
		t.Fatalf("active developer should pass: %v", err)
	}

	for _, id := range []string{"missing", "dev-off", "mgr-1"} {
		err := engine.VerifyAssignee(ctx, id)
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			t.Errorf("VerifyAssignee(%s): expected not-found, got %v", id, err)
		}
	}
}

func TestTaskAssign(t *testing.T) {
	engine := newEngine()
	ctx := context.Background()
	mgr := domain.Principal{ID: "mgr-1", Role: domain.RoleManager}

	// creator without project ownership
	if err := engine.TaskAssign(ctx, mgr, &domain.Task{CreatedBy: "mgr-1", ProjectID: "proj-2"}); err != nil {
		t.Fatalf("creator should pass: %v", err)
	}
	// project manager without creatorship
	if err := engine.TaskAssign(ctx, mgr, &domain.Task{CreatedBy: "mgr-2", ProjectID: "proj-1"}); err != nil {
		t.Fatalf("project manager should pass: %v", err)
	}

	assertForbidden(t, engine.TaskAssign(ctx, mgr, &domain.Task{CreatedBy: "mgr-2", ProjectID: "proj-2"}), "Not allowed to assign this task")
	assertForbidden(t, engine.TaskAssign(ctx, mgr, &domain.Task{CreatedBy: "mgr-2"}), "Not allowed to assign this task")
	// dangling project reference leaves only the creator rule
	assertForbidden(t, engine.TaskAssign(ctx, mgr, &domain.Task{CreatedBy: "mgr-2", ProjectID: "missing"}), "Not allowed to assign this task")
}

func TestTaskView(t *testing.T) {
	engine := newEngine()
	ctx := context.Background()
	mgr := domain.Principal{ID: "mgr-1", Role: domain.RoleManager}

	if err := engine.TaskView(ctx, mgr, &domain.Task{CreatedBy: "mgr-1"}); err != nil {
		t.Fatalf("creator should pass: %v", err)
	}
	if err := engine.TaskView(ctx, mgr, &domain.Task{CreatedBy: "mgr-2", ProjectID: "proj-1"}); err != nil {
		t.Fatalf("project manager should pass: %v", err)
	}
	assertForbidden(t, engine.TaskView(ctx, mgr, &domain.Task{CreatedBy: "mgr-2", ProjectID: "proj-2"}), "Not allowed to view this task")
}

func TestStatusUpdate(t *testing.T) {
	engine := newEngine()
	dev := domain.Principal{ID: "dev-1", Role: domain.RoleDeveloper}

	if err := engine.StatusUpdate(dev, &domain.Task{AssignedTo: "dev-1"}); err != nil {
		t.Fatalf("assignee should pass: %v", err)
	}
	assertForbidden(t, engine.StatusUpdate(dev, &domain.Task{AssignedTo: "dev-2"}), "Not allowed")
	assertForbidden(t, engine.StatusUpdate(dev, &domain.Task{}), "Not allowed")
}
