package handler

import (
	"strconv"

	"dlt-orchestrator/internal/adapter/http/dto"
	"dlt-orchestrator/internal/adapter/http/middleware"
	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/pkg/apperror"
	"dlt-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// pathID parses the :id route parameter as a UUID, writing a 400 on failure.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("id must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads an integer query parameter, falling back to def when it is
// absent and writing a 400 when it is not a number.
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, apperror.Validation(name+" must be an integer"))
		return 0, false
	}
	return n, true
}

// bindJSON binds and sanitizes the request body, writing a 400 on failure.
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return false
	}
	dto.SanitizeStruct(v)
	return true
}

// sessionUser returns the authenticated user or writes a 401.
func sessionUser(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return nil, false
	}
	return user, true
}

// actor is the audit identity recorded for ledger writes made by user.
func actor(user *domain.User) string {
	return string(user.Role) + ":" + user.ID.String()
}

// sameEnterprise rejects users acting on another enterprise's records.
func sameEnterprise(c *gin.Context, user *domain.User, enterpriseID uuid.UUID) bool {
	if user.EnterpriseID != enterpriseID {
		response.Error(c, apperror.ErrForbidden())
		return false
	}
	return true
}

// ownedBy rejects users acting on a record owned by someone else.
// Admins of the same enterprise pass.
func ownedBy(c *gin.Context, user *domain.User, ownerID, enterpriseID uuid.UUID) bool {
	if !sameEnterprise(c, user, enterpriseID) {
		return false
	}
	if user.Role != domain.RoleAdmin && user.ID != ownerID {
		response.Error(c, apperror.ErrForbidden())
		return false
	}
	return true
}
