package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type auditRoute struct {
	action       domain.AuditAction
	resourceType string
}

// auditedRoutes maps "METHOD route-pattern" to the audit action it records.
var auditedRoutes = map[string]auditRoute{
	"POST /api/v1/wage-advances":                       {domain.AuditActionCreateAdvance, "wage_advance"},
	"POST /api/v1/wage-advances/:id/association":       {domain.AuditActionAssociation, "wage_advance"},
	"POST /api/v1/wage-advances/:id/schedule":          {domain.AuditActionCreateSchedule, "wage_advance"},
	"POST /api/v1/wage-advances/:id/approvals":         {domain.AuditActionCastApproval, "wage_advance"},
	"POST /api/v1/operations/:id/outcome":              {domain.AuditActionReportOutcome, "operation"},
	"POST /api/v1/operations/:id/relay":                {domain.AuditActionRelay, "operation"},
	"POST /api/v1/payment-requests":                    {domain.AuditActionCreatePayment, "payment_request"},
	"POST /api/v1/payment-requests/:id/accept-token":   {domain.AuditActionAcceptToken, "payment_request"},
	"POST /api/v1/payment-requests/:id/pay":            {domain.AuditActionPay, "payment_request"},
	"POST /api/v1/swaps":                               {domain.AuditActionCreateSwap, "swap_intent"},
	"POST /api/v1/swaps/:id/prepare":                   {domain.AuditActionPrepareSwap, "swap_intent"},
	"POST /api/v1/watcher/operations/:id/confirm":      {domain.AuditActionConfirm, "operation"},
	"POST /api/v1/watcher/schedules/:id/executed":      {domain.AuditActionScheduleExecuted, "schedule"},
	"POST /api/v1/admin/operations/:id/force-complete": {domain.AuditActionForceComplete, "operation"},
}

// AuditLog creates an audit middleware that logs successful write operations.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}

		route, ok := auditedRoutes[c.Request.Method+" "+c.FullPath()]
		if !ok {
			return
		}

		var actorID *uuid.UUID
		if user, ok := CurrentUser(c); ok {
			id := user.ID
			actorID = &id
		}

		details := map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": status,
		}
		if watcher := c.GetString(CtxWatcher); watcher != "" {
			details["watcher"] = watcher
		}
		raw, _ := json.Marshal(details)

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			ActorID:      actorID,
			Action:       route.action,
			ResourceType: route.resourceType,
			ResourceID:   c.Param("id"),
			IPAddress:    c.ClientIP(),
			Details:      string(raw),
			CreatedAt:    time.Now().UTC(),
		})
	}
}
