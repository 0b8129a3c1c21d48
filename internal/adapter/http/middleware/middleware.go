package middleware

import (
	"bytes"
	"crypto/subtle"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dlt-orchestrator/config"
	"dlt-orchestrator/internal/core/domain"
	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/apperror"
	"dlt-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// Header names for watcher HMAC authentication
	HeaderAccessKey = "X-Watcher-Access-Key"
	HeaderSignature = "X-Signature"
	HeaderTimestamp = "X-Timestamp"
	HeaderNonce     = "X-Nonce"

	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxUser      = "user"
	CtxWatcher   = "watcher"
	CtxRequestID = response.RequestIDKey
)

// CurrentUser returns the session user set by SessionAuth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok && u != nil
}

// WatcherAuth verifies HMAC-SHA256 signed callbacks from the confirmation watcher.
// Pipeline: access key, timestamp, signature, then the nonce is burned.
func WatcherAuth(
	cfg config.WatcherConfig,
	sigSvc ports.SignatureService,
	nonceStore ports.NonceStore,
	log zerolog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessKey := c.GetHeader(HeaderAccessKey)
		signature := c.GetHeader(HeaderSignature)
		timestampStr := c.GetHeader(HeaderTimestamp)
		nonce := c.GetHeader(HeaderNonce)

		if accessKey == "" || signature == "" || timestampStr == "" || nonce == "" {
			abort(c, apperror.ErrInvalidAccessKey())
			return
		}
		if cfg.Secret == "" || subtle.ConstantTimeCompare([]byte(accessKey), []byte(cfg.AccessKey)) != 1 {
			abort(c, apperror.ErrInvalidAccessKey())
			return
		}

		timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
		if err != nil {
			abort(c, apperror.ErrTimestampExpired())
			return
		}
		drift := time.Since(time.Unix(timestamp, 0))
		if drift < 0 {
			drift = -drift
		}
		if drift > cfg.MaxDrift {
			abort(c, apperror.ErrTimestampExpired())
			return
		}

		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abort(c, apperror.Validation("cannot read request body"))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		canonical := sigSvc.BuildCanonicalString(
			c.Request.Method,
			c.Request.URL.Path,
			timestamp,
			nonce,
			string(bodyBytes),
		)
		if !sigSvc.Verify(cfg.Secret, canonical, signature) {
			abort(c, apperror.ErrInvalidSignature())
			return
		}

		// Only a correctly signed request may burn a nonce.
		isNew, err := nonceStore.CheckAndSet(c.Request.Context(), "watcher:"+accessKey, nonce, cfg.NonceTTL)
		if err != nil {
			log.Warn().Err(err).Msg("nonce store error, allowing request")
		} else if !isNew {
			abort(c, apperror.ErrNonceUsed())
			return
		}

		c.Set(CtxWatcher, accessKey)
		c.Next()
	}
}

// SessionAuth validates the portal-issued bearer token and resolves the user.
func SessionAuth(tokenSvc ports.TokenService, identities ports.IdentityLookup, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenStr == "" {
			abort(c, apperror.ErrInvalidToken())
			return
		}

		claims, err := tokenSvc.Validate(tokenStr)
		if err != nil {
			abort(c, apperror.ErrInvalidToken())
			return
		}

		user, err := identities.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			log.Error().Err(err).Str("user_id", claims.UserID.String()).Msg("identity lookup failed")
			abort(c, apperror.InternalError(err))
			return
		}
		if user == nil {
			abort(c, apperror.ErrUnknownUser())
			return
		}
		if claims.AccountID != "" && claims.AccountID != user.AccountID {
			log.Warn().
				Str("user_id", user.ID.String()).
				Str("token_account", claims.AccountID).
				Msg("session account does not match directory")
			abort(c, apperror.ErrUnknownUser())
			return
		}

		c.Set(CtxUser, user)
		c.Next()
	}
}

// RequireRole rejects session users whose role is not listed.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abort(c, apperror.ErrInvalidToken())
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		abort(c, apperror.ErrForbidden())
	}
}

// RequestID propagates X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(CtxRequestID)).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}
