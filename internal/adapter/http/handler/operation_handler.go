package handler

import (
	"time"

	"dlt-orchestrator/internal/adapter/http/dto"
	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/apperror"
	"dlt-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
)

// OperationHandler serves ledger reads, signer outcomes, relays and operator repair.
type OperationHandler struct {
	ledger     ports.LedgerService
	reconciler ports.ReconcilerService
	relay      ports.RelayService
	signer     ports.Signer
	staleAfter time.Duration
}

// NewOperationHandler creates a new OperationHandler. signer may be nil when
// no custodial signer is configured; relays then fail with SYS_004.
func NewOperationHandler(
	ledger ports.LedgerService,
	reconciler ports.ReconcilerService,
	relay ports.RelayService,
	signer ports.Signer,
	staleAfter time.Duration,
) *OperationHandler {
	return &OperationHandler{
		ledger:     ledger,
		reconciler: reconciler,
		relay:      relay,
		signer:     signer,
		staleAfter: staleAfter,
	}
}

// Get handles GET /api/v1/operations/:id.
func (h *OperationHandler) Get(c *gin.Context) {
	_, op, ok := h.signerStep(c)
	if !ok {
		return
	}
	trail, err := h.ledger.AuditTrail(c.Request.Context(), op.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.OperationResponse{Operation: op, Audit: trail})
}

// ReportOutcome handles POST /api/v1/operations/:id/outcome.
func (h *OperationHandler) ReportOutcome(c *gin.Context) {
	user, op, ok := h.signerStep(c)
	if !ok {
		return
	}
	var req dto.ReportOutcomeRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.reconciler.ReportOutcome(c.Request.Context(), op.ID, domain.Outcome{
		TransactionID: req.TransactionID,
		Cancelled:     req.Cancelled,
	}, actor(user))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, updated)
}

// Relay handles POST /api/v1/operations/:id/relay.
func (h *OperationHandler) Relay(c *gin.Context) {
	_, op, ok := h.signerStep(c)
	if !ok {
		return
	}

	updated, err := h.relay.Relay(c.Request.Context(), h.signer, op.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, updated)
}

// ForceComplete handles POST /api/v1/admin/operations/:id/force-complete.
func (h *OperationHandler) ForceComplete(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ForceCompleteRequest
	if !bindJSON(c, &req) {
		return
	}

	op, err := h.reconciler.ForceComplete(c.Request.Context(), id, req.Evidence, actor(user))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, op)
}

// Stale handles GET /api/v1/admin/operations/stale.
func (h *OperationHandler) Stale(c *gin.Context) {
	olderThan := h.staleAfter
	if raw := c.Query("older_than"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			response.Error(c, apperror.Validation("older_than must be a duration such as 30m"))
			return
		}
		olderThan = d
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}

	ops, err := h.ledger.ListStale(c.Request.Context(), olderThan, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if ops == nil {
		ops = []*domain.Operation{}
	}
	response.OK(c, dto.StaleOperationsResponse{OlderThan: olderThan.String(), Items: ops})
}

// signerStep loads :id and checks the session user is the operation's signer.
// Admins may act on any operation.
func (h *OperationHandler) signerStep(c *gin.Context) (*domain.User, *domain.Operation, bool) {
	user, ok := sessionUser(c)
	if !ok {
		return nil, nil, false
	}
	id, ok := pathID(c)
	if !ok {
		return nil, nil, false
	}
	op, err := h.ledger.GetOperation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, nil, false
	}
	if user.Role != domain.RoleAdmin && op.SignerAccountID != user.AccountID {
		response.Error(c, apperror.ErrForbidden())
		return nil, nil, false
	}
	return user, op, true
}

