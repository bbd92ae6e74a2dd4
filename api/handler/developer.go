package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/pkg/httpcontext"
	developerUC "github.com/taskhive/backend/usecase/developer"
)

type DeveloperHandler struct {
	baseHandler
	uc *developerUC.UseCase
}

func NewDeveloperHandler(uc *developerUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DeveloperHandler {
	return &DeveloperHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List assigned tasks
// @Tags developer
// @Router /api/developer/tasks [get]
func (h *DeveloperHandler) ListTasks(ctx *fasthttp.RequestCtx) {
	p, ok := h.principal(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, p)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, tasks)
}

// @Summary Update the status of an assigned task
// @Tags developer
// @Router /api/developer/tasks/{id}/status [patch]
func (h *DeveloperHandler) UpdateStatus(ctx *fasthttp.RequestCtx) {
	p, ok := h.principal(ctx)
	if !ok {
		return
	}

	var req transport.UpdateStatusRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondMessage(ctx, http.StatusBadRequest, domain.ErrInvalidPayload.Message)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.UpdateStatus(stdCtx, p, pathValue(ctx, "id"), req.Status)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, task)
}

// @Summary Personal statistics
// @Tags developer
// @Router /api/developer/stats [get]
func (h *DeveloperHandler) GetStats(ctx *fasthttp.RequestCtx) {
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
