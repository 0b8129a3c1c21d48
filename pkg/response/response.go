// Package response renders the JSON envelopes every endpoint returns.
package response

import (
	"errors"
	"net/http"
	"time"

	"dlt-orchestrator/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key the request ID middleware sets.
const RequestIDKey = "request_id"

// SuccessResponse wraps the payload of a 2xx response.
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is the error envelope. ErrorCode and Kind are stable and
// meant for programs; Message is for humans. Retryable tells a wallet or
// portal whether the same call may succeed later without changes.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

func OK(c *gin.Context, data interface{}) {
	success(c, http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	success(c, http.StatusCreated, data)
}

// Error renders err. Errors without an apperror in their chain become an
// opaque 500 so internal detail never reaches the client.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.New(apperror.KindSystem, "SYS_000", "Internal server error", http.StatusInternalServerError)
	}
	c.JSON(appErr.HTTPStatus, ErrorResponse{
		ErrorCode: appErr.Code,
		Kind:      string(appErr.Kind),
		Message:   appErr.Message,
		Retryable: retryable(appErr.Kind),
		RequestID: requestID(c),
		Timestamp: timestamp(),
	})
}

func success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Data:      data,
		RequestID: requestID(c),
		Timestamp: timestamp(),
	})
}

// retryable: an outstanding operation resolves, a rate window resets and
// a system fault may clear. Everything else needs a different request.
func retryable(kind apperror.Kind) bool {
	switch kind {
	case apperror.KindConflict, apperror.KindRateLimit, apperror.KindSystem:
		return true
	default:
		return false
	}
}

func requestID(c *gin.Context) string {
	if id, ok := c.Get(RequestIDKey); ok {
		if s, ok := id.(string); ok && s != "" {
			return s
		}
	}
	return uuid.NewString()
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
