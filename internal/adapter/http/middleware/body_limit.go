package middleware

import (
	"net/http"

	"dlt-orchestrator/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// MaxBodySize caps request bodies at limit bytes. A declared Content-Length
// over the cap is refused with 413 before the handler runs; undeclared
// bodies are cut off at the cap, which makes JSON binding fail.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			abort(c, apperror.ErrBodyTooLarge(limit))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
