package handler

import (
	"math"

	"dlt-orchestrator/internal/adapter/http/dto"
	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/apperror"
	"dlt-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WageAdvanceHandler serves the wage-advance saga and enterprise history.
type WageAdvanceHandler struct {
	svc     ports.WageAdvanceService
	history ports.HistoryService
}

// NewWageAdvanceHandler creates a new WageAdvanceHandler.
func NewWageAdvanceHandler(svc ports.WageAdvanceService, history ports.HistoryService) *WageAdvanceHandler {
	return &WageAdvanceHandler{svc: svc, history: history}
}

// Create handles POST /api/v1/wage-advances.
func (h *WageAdvanceHandler) Create(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	var req dto.CreateWageAdvanceRequest
	if !bindJSON(c, &req) {
		return
	}

	advance, err := h.svc.CreateRequest(c.Request.Context(), user.ID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, advance)
}

// Get handles GET /api/v1/wage-advances/:id.
// Employees see their own requests; deciders and admins their enterprise's.
func (h *WageAdvanceHandler) Get(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	advance, ok := h.load(c, id)
	if !ok {
		return
	}
	if user.Role == domain.RoleEmployee {
		if !ownedBy(c, user, advance.EmployeeID, advance.EnterpriseID) {
			return
		}
	} else if !sameEnterprise(c, user, advance.EnterpriseID) {
		return
	}
	response.OK(c, advance)
}

// Association handles POST /api/v1/wage-advances/:id/association.
func (h *WageAdvanceHandler) Association(c *gin.Context) {
	user, id, ok := h.ownerStep(c)
	if !ok {
		return
	}
	var req dto.AssociationRequest
	if !bindJSON(c, &req) {
		return
	}
	if user.Role == domain.RoleEmployee && req.AccountID != user.AccountID {
		response.Error(c, apperror.ErrUnknownAccount())
		return
	}

	result, err := h.svc.GetAssociationRequirement(c.Request.Context(), id, req.AccountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Schedule handles POST /api/v1/wage-advances/:id/schedule.
func (h *WageAdvanceHandler) Schedule(c *gin.Context) {
	_, id, ok := h.ownerStep(c)
	if !ok {
		return
	}

	result, err := h.svc.CreateSchedule(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// CastApproval handles POST /api/v1/wage-advances/:id/approvals.
func (h *WageAdvanceHandler) CastApproval(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CastApprovalRequest
	if !bindJSON(c, &req) {
		return
	}

	advance, err := h.svc.CastApproval(c.Request.Context(), id, user.ID, *req.Approve, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, advance)
}

// History handles GET /api/v1/enterprises/:id/history.
func (h *WageAdvanceHandler) History(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	enterpriseID, ok := pathID(c)
	if !ok {
		return
	}
	if !sameEnterprise(c, user, enterpriseID) {
		return
	}

	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := queryInt(c, "page_size", 20)
	if !ok {
		return
	}
	params := ports.HistoryListParams{
		EnterpriseID: enterpriseID,
		Page:         page,
		PageSize:     pageSize,
	}
	if s := c.Query("status"); s != "" {
		status := domain.WageAdvanceStatus(s)
		params.Status = &status
	}

	entries, total, err := h.history.GetHistory(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}
	response.OK(c, dto.HistoryListResponse{
		Items:      entries,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(params.PageSize))),
	})
}

// ownerStep resolves the session user and :id and checks the user owns the request.
func (h *WageAdvanceHandler) ownerStep(c *gin.Context) (*domain.User, uuid.UUID, bool) {
	user, ok := sessionUser(c)
	if !ok {
		return nil, uuid.Nil, false
	}
	id, ok := pathID(c)
	if !ok {
		return nil, uuid.Nil, false
	}
	advance, ok := h.load(c, id)
	if !ok {
		return nil, uuid.Nil, false
	}
	if !ownedBy(c, user, advance.EmployeeID, advance.EnterpriseID) {
		return nil, uuid.Nil, false
	}
	return user, id, true
}

func (h *WageAdvanceHandler) load(c *gin.Context, id uuid.UUID) (*domain.WageAdvanceRequest, bool) {
	advance, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return advance, true
}
