package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskhive/backend/api/handler"
	"github.com/taskhive/backend/authz"
	"github.com/taskhive/backend/internal/middleware"
)

type Handlers struct {
	Auth      *apiHandler.AuthHandler
	Admin     *apiHandler.AdminHandler
	Manager   *apiHandler.ManagerHandler
	Developer *apiHandler.DeveloperHandler
	Health    *apiHandler.HealthHandler
}

// New wires the route table. Every protected route goes through the
// authentication middleware and then the role gate for its action; ownership
// checks run later inside the use cases.
func New(handlers Handlers, auth func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	guard := func(action authz.Action, h fasthttp.RequestHandler) fasthttp.RequestHandler {
		return auth(middleware.RequireAction(action)(h))
	}

	r.GET("/health", handlers.Health.Check)

	r.POST("/api/auth/login", handlers.Auth.Login)

	// Admin routes
	r.GET("/api/admin/users", guard(authz.UserViewAll, handlers.Admin.ListUsers))
	r.POST("/api/admin/users", guard(authz.UserCreate, handlers.Admin.CreateUser))
	r.PATCH("/api/admin/users/{id}", guard(authz.UserToggle, handlers.Admin.ToggleUser))
	r.GET("/api/admin/projects", guard(authz.ProjectViewAll, handlers.Admin.ListProjects))
	r.POST("/api/admin/projects", guard(authz.ProjectCreate, handlers.Admin.CreateProject))
	r.PATCH("/api/admin/projects/{projectId}", guard(authz.ProjectAssign, handlers.Admin.AssignProject))
	r.GET("/api/admin/tasks", guard(authz.TaskViewAll, handlers.Admin.ListTasks))
	r.PUT("/api/admin/tasks/{id}", guard(authz.TaskEditAny, handlers.Admin.UpdateTask))
	r.DELETE("/api/admin/tasks/{id}", guard(authz.TaskDeleteAny, handlers.Admin.DeleteTask))
	r.GET("/api/admin/stats", guard(authz.StatsGlobal, handlers.Admin.GetStats))

	// Manager routes
	r.GET("/api/manager/projects", guard(authz.ProjectViewOwn, handlers.Manager.ListProjects))
	r.GET("/api/manager/developers", guard(authz.DeveloperList, handlers.Manager.ListDevelopers))
	r.GET("/api/manager/tasks", guard(authz.TaskViewScoped, handlers.Manager.ListTasks))
	r.GET("/api/manager/tasks/{id}", guard(authz.TaskViewScoped, handlers.Manager.GetTask))
	r.POST("/api/manager/tasks", guard(authz.TaskCreate, handlers.Manager.CreateTask))
	r.PUT("/api/manager/tasks/{id}", guard(authz.TaskEditOwn, handlers.Manager.EditTask))
	r.PUT("/api/manager/tasks/{id}/assign", guard(authz.TaskAssign, handlers.Manager.AssignTask))
	r.DELETE("/api/manager/tasks/{id}", guard(authz.TaskDeleteOwn, handlers.Manager.DeleteTask))
	r.GET("/api/manager/stats", guard(authz.StatsScoped, handlers.Manager.GetStats))

	// Developer routes
	r.GET("/api/developer/tasks", guard(authz.TaskViewSelf, handlers.Developer.ListTasks))
	r.PATCH("/api/developer/tasks/{id}/status", guard(authz.TaskUpdateStatus, handlers.Developer.UpdateStatus))
	r.GET("/api/developer/stats", guard(authz.StatsSelf, handlers.Developer.GetStats))

	return r
}
