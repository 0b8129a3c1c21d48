package handler

import (
	"dlt-orchestrator/internal/adapter/http/dto"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/apperror"
	"dlt-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
)

// WatcherHandler receives HMAC-authenticated callbacks from the chain watcher.
type WatcherHandler struct {
	reconciler ports.ReconcilerService
	advances   ports.WageAdvanceService
}

// NewWatcherHandler creates a new WatcherHandler.
func NewWatcherHandler(reconciler ports.ReconcilerService, advances ports.WageAdvanceService) *WatcherHandler {
	return &WatcherHandler{reconciler: reconciler, advances: advances}
}

// Confirm handles POST /api/v1/watcher/operations/:id/confirm.
func (h *WatcherHandler) Confirm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ConfirmRequest
	if !bindJSON(c, &req) {
		return
	}

	op, err := h.reconciler.Confirm(c.Request.Context(), id, *req.Success, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, op)
}

// ScheduleExecuted handles POST /api/v1/watcher/schedules/:id/executed,
// where :id is the scheduled transaction id.
func (h *WatcherHandler) ScheduleExecuted(c *gin.Context) {
	scheduleID := c.Param("id")
	if scheduleID == "" {
		response.Error(c, apperror.Validation("scheduled transaction id is required"))
		return
	}
	var req dto.ScheduleExecutedRequest
	if !bindJSON(c, &req) {
		return
	}

	advance, err := h.advances.ScheduleExecuted(c.Request.Context(), scheduleID, *req.Success)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, advance)
}
