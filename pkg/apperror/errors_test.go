package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   ErrOutstandingOperation(),
			expected: "[CONFLICT_001] An operation is already awaiting signature or confirmation",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap(KindSystem, "SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := InternalError(inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, ErrNotFound("operation").Unwrap())
}

func TestCodeOfAndIsKind(t *testing.T) {
	wrapped := fmt.Errorf("saga step: %w", ErrExpired("Payment request"))
	assert.Equal(t, "EXPIRED_001", CodeOf(wrapped))
	assert.True(t, IsKind(wrapped, KindExpired))
	assert.False(t, IsKind(wrapped, KindConflict))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}

func TestTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		kind       Kind
		code       string
		httpStatus int
	}{
		{"Validation", Validation("bad"), KindValidation, "VAL_001", 400},
		{"InvalidAmount", ErrInvalidAmount(), KindValidation, "VAL_002", 400},
		{"EvidenceRequired", ErrEvidenceRequired(), KindValidation, "VAL_003", 400},
		{"LimitExceeded", ErrLimitExceeded(), KindValidation, "VAL_LIMIT_EXCEEDED", 400},
		{"Outstanding", ErrOutstandingOperation(), KindConflict, "CONFLICT_001", 409},
		{"LockWait", ErrLockWaitExhausted(nil), KindConflict, "CONFLICT_002", 409},
		{"ConcurrentUpdate", ErrConcurrentUpdate(), KindConflict, "CONFLICT_003", 409},
		{"InvalidTransition", ErrInvalidTransition("FAILED", "SUCCESS"), KindInvalidTransition, "TRANSITION_001", 409},
		{"InvalidState", ErrInvalidState("not awaiting approval"), KindInvalidTransition, "TRANSITION_002", 409},
		{"Expired", ErrExpired("Swap intent"), KindExpired, "EXPIRED_001", 410},
		{"Preparation", Preparation(PrepInsufficientBalance, "low"), KindPreparation, "PREP_INSUFFICIENT_BALANCE", 422},
		{"ChainUnavailable", ErrChainUnavailable(nil), KindPreparation, "PREP_CHAIN_UNAVAILABLE", 503},
		{"NotFound", ErrNotFound("Operation"), KindNotFound, "NOT_FOUND_001", 404},
		{"InvalidSignature", ErrInvalidSignature(), KindAuth, "SEC_002", 401},
		{"NonceUsed", ErrNonceUsed(), KindAuth, "SEC_004", 403},
		{"Forbidden", ErrForbidden(), KindAuth, "AUTH_005", 403},
		{"RateLimit", ErrRateLimitExceeded(), KindRateLimit, "RATE_001", 429},
		{"Internal", InternalError(nil), KindSystem, "SYS_001", 500},
		{"SignerUnavailable", ErrSignerUnavailable(nil), KindSystem, "SYS_003", 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestInvalidTransitionMessage(t *testing.T) {
	err := ErrInvalidTransition("FAILED", "PENDING_CONFIRMATION")
	assert.Contains(t, err.Message, "FAILED -> PENDING_CONFIRMATION")
}
