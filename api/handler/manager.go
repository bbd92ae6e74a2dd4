package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/pkg/httpcontext"
	managerUC "github.com/taskhive/backend/usecase/manager"
)

type ManagerHandler struct {
	baseHandler
	uc *managerUC.UseCase
}

func NewManagerHandler(uc *managerUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ManagerHandler {
	return &ManagerHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List own projects
// @Tags manager
// @Router /api/manager/projects [get]
func (h *ManagerHandler) ListProjects(ctx *fasthttp.RequestCtx) {
	p, ok := h.principal(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	projects, err := h.uc.ListProjects(stdCtx, p)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, projects)
}

// @Summary List active developers
// @Tags manager
// @Router /api/manager/developers [get]
func (h *ManagerHandler) ListDevelopers(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	developers, err := h.uc.ListDevelopers(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, developers)
}

// @Summary List own and project-scoped tasks
// @Tags manager
// @Router /api/manager/tasks [get]
func (h *ManagerHandler) ListTasks(ctx *fasthttp.RequestCtx) {
	p, ok := h.principal(ctx)
	if !ok {
		return
	}

	query := managerUC.TaskQuery{
		Status:     string(ctx.QueryArgs().Peek("status")),
		ProjectID:  string(ctx.QueryArgs().Peek("project")),
		AssignedTo: string(ctx.QueryArgs().Peek("assignedTo")),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, p, query)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, tasks)
}

// @Summary Fetch a single task
// @Tags manager
// @Router /api/manager/tasks/{id} [get]
func (h *ManagerHandler) GetTask(ctx *fasthttp.RequestCtx) {
	p, ok := h.principal(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.GetTask(stdCtx, p, pathValue(ctx, "id"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, task)
}

// @Summary Create a task
// @Tags manager
// @Router /api/manager/tasks [post]
func (h *ManagerHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	p, ok := h.principal(ctx)
	if !ok {
		return
	}

	var req transport.CreateTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondMessage(ctx, http.StatusBadRequest, domain.ErrInvalidPayload.Message)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.CreateTask(stdCtx, p, managerUC.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.Project,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, task)
}

// @Summary Edit an own task
// @Tags manager
// @Router /api/manager/tasks/{id} [put]
func (h *ManagerHandler) EditTask(ctx *fasthttp.RequestCtx) {
	p, ok := h.principal(ctx)
	if !ok {
		return
	}

	var req transport.EditTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondMessage(ctx, http.StatusBadRequest, domain.ErrInvalidPayload.Message)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.EditTask(stdCtx, p, pathValue(ctx, "id"), managerUC.EditTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		ProjectID:   req.Project,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, task)
}

// @Summary Assign a task to a developer
// @Tags manager
// @Router /api/manager/tasks/{id}/assign [put]
func (h *ManagerHandler) AssignTask(ctx *fasthttp.RequestCtx) {
	p, ok := h.principal(ctx)
	if !ok {
		return
	}

	var req transport.AssignTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondMessage(ctx, http.StatusBadRequest, domain.ErrInvalidPayload.Message)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.AssignTask(stdCtx, p, pathValue(ctx, "id"), req.AssignedTo)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, task)
}

// @Summary Delete an own task
// @Tags manager
// @Router /api/manager/tasks/{id} [delete]
func (h *ManagerHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	p, ok := h.principal(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, p, pathValue(ctx, "id")); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondMessage(ctx, http.StatusOK, "Task deleted successfully")
}

// @Summary Project-scoped statistics
// @Tags manager
// @Router /api/manager/stats [get]
func (h *ManagerHandler) GetStats(ctx *fasthttp.RequestCtx) {
	p, ok := h.principal(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.GetStats(stdCtx, p)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, stats)
}
