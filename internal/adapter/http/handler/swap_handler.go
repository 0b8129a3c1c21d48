package handler

import (
	"dlt-orchestrator/internal/adapter/http/dto"
	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
)

// SwapHandler serves the token swap saga.
type SwapHandler struct {
	svc ports.SwapService
}

// NewSwapHandler creates a new SwapHandler.
func NewSwapHandler(svc ports.SwapService) *SwapHandler {
	return &SwapHandler{svc: svc}
}

// Create handles POST /api/v1/swaps.
func (h *SwapHandler) Create(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	var req dto.CreateSwapRequest
	if !bindJSON(c, &req) {
		return
	}

	intent, err := h.svc.CreateSwapIntent(c.Request.Context(), user.ID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, intent)
}

// Get handles GET /api/v1/swaps/:id.
func (h *SwapHandler) Get(c *gin.Context) {
	_, intent, ok := h.load(c)
	if !ok {
		return
	}
	response.OK(c, intent)
}

// Prepare handles POST /api/v1/swaps/:id/prepare.
func (h *SwapHandler) Prepare(c *gin.Context) {
	_, intent, ok := h.load(c)
	if !ok {
		return
	}

	result, err := h.svc.PrepareSwap(c.Request.Context(), intent.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// load resolves :id and checks the session user owns the intent.
func (h *SwapHandler) load(c *gin.Context) (*domain.User, *domain.SwapIntent, bool) {
	user, ok := sessionUser(c)
	if !ok {
		return nil, nil, false
	}
	id, ok := pathID(c)
	if !ok {
		return nil, nil, false
	}
	intent, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, nil, false
	}
	if !ownedBy(c, user, intent.UserID, intent.EnterpriseID) {
		return nil, nil, false
	}
	return user, intent, true
}
