package handler

import (
	"dlt-orchestrator/internal/adapter/http/dto"
	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
)

// PaymentHandler serves the shop payment saga.
type PaymentHandler struct {
	svc ports.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Create handles POST /api/v1/payment-requests.
func (h *PaymentHandler) Create(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	var req dto.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	pr, err := h.svc.CreatePaymentRequest(c.Request.Context(), user.ID, req.Amount, req.Memo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pr)
}

// Get handles GET /api/v1/payment-requests/:id. Any user of the
// enterprise may read a request, which is how payers look it up.
func (h *PaymentHandler) Get(c *gin.Context) {
	user, pr, ok := h.load(c)
	if !ok {
		return
	}
	if !sameEnterprise(c, user, pr.EnterpriseID) {
		return
	}
	response.OK(c, pr)
}

// AcceptToken handles POST /api/v1/payment-requests/:id/accept-token.
func (h *PaymentHandler) AcceptToken(c *gin.Context) {
	user, pr, ok := h.load(c)
	if !ok {
		return
	}
	if !ownedBy(c, user, pr.ShopID, pr.EnterpriseID) {
		return
	}

	result, err := h.svc.PrepareShopAcceptance(c.Request.Context(), pr.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Pay handles POST /api/v1/payment-requests/:id/pay. The session user is the payer.
func (h *PaymentHandler) Pay(c *gin.Context) {
	user, pr, ok := h.load(c)
	if !ok {
		return
	}
	if !sameEnterprise(c, user, pr.EnterpriseID) {
		return
	}

	result, err := h.svc.PreparePayment(c.Request.Context(), pr.ID, user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

func (h *PaymentHandler) load(c *gin.Context) (*domain.User, *domain.PaymentRequest, bool) {
	user, ok := sessionUser(c)
	if !ok {
		return nil, nil, false
	}
	id, ok := pathID(c)
	if !ok {
		return nil, nil, false
	}
	pr, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, nil, false
	}
	return user, pr, true
}
