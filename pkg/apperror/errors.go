package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups error codes by how a caller is expected to react.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindConflict          Kind = "conflict"
	KindInvalidTransition Kind = "invalid_transition"
	KindExpired           Kind = "expired"
	KindPreparation       Kind = "preparation"
	KindNotFound          Kind = "not_found"
	KindAuth              Kind = "auth"
	KindRateLimit         Kind = "rate_limit"
	KindSystem            Kind = "system"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Kind       Kind   `json:"kind"`
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(kind Kind, code string, message string, httpStatus int) *AppError {
	return &AppError{
		Kind:       kind,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(kind Kind, code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Kind:       kind,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// ---- Validation (VAL) ----

// Validation returns a generic validation error.
func Validation(message string) *AppError {
	return New(KindValidation, "VAL_001", message, http.StatusBadRequest)
}

func ErrInvalidAmount() *AppError {
	return New(KindValidation, "VAL_002", "Amount must be a positive integer", http.StatusBadRequest)
}

func ErrEvidenceRequired() *AppError {
	return New(KindValidation, "VAL_003", "Evidence is required and must be at most 1000 characters", http.StatusBadRequest)
}

func ErrUnknownAccount() *AppError {
	return New(KindValidation, "VAL_004", "Unknown account", http.StatusBadRequest)
}

func ErrBodyTooLarge(limit int64) *AppError {
	return New(KindValidation, "VAL_005", fmt.Sprintf("Request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
}

func ErrLimitExceeded() *AppError {
	return New(KindValidation, "VAL_LIMIT_EXCEEDED", "Requested amount exceeds the enterprise limit", http.StatusBadRequest)
}

// ---- Conflict (CONFLICT) ----

func ErrOutstandingOperation() *AppError {
	return New(KindConflict, "CONFLICT_001", "An operation is already awaiting signature or confirmation", http.StatusConflict)
}

func ErrLockWaitExhausted(err error) *AppError {
	return Wrap(KindConflict, "CONFLICT_002", "Another request is updating this resource, retry", http.StatusConflict, err)
}

func ErrConcurrentUpdate() *AppError {
	return New(KindConflict, "CONFLICT_003", "Resource was modified concurrently, re-read and retry", http.StatusConflict)
}

// ---- State machine (TRANSITION) ----

func ErrInvalidTransition(from, to string) *AppError {
	return New(KindInvalidTransition, "TRANSITION_001", fmt.Sprintf("Transition %s -> %s is not allowed", from, to), http.StatusConflict)
}

func ErrInvalidState(message string) *AppError {
	return New(KindInvalidTransition, "TRANSITION_002", message, http.StatusConflict)
}

// ---- Expiry (EXPIRED) ----

func ErrExpired(entity string) *AppError {
	return New(KindExpired, "EXPIRED_001", fmt.Sprintf("%s has expired", entity), http.StatusGone)
}

// ---- Preparation (PREP) ----

// Preparation codes rendered by the transaction preparer.
const (
	PrepInsufficientBalance = "PREP_INSUFFICIENT_BALANCE"
	PrepUnknownToken        = "PREP_UNKNOWN_TOKEN"
	PrepMissingContract     = "PREP_MISSING_CONTRACT"
	PrepShopNotAssociated   = "PREP_SHOP_NOT_ASSOCIATED"
	PrepChainUnavailable    = "PREP_CHAIN_UNAVAILABLE"
	PrepInvalidParams       = "PREP_INVALID_PARAMS"
)

// Preparation returns a business-rule rejection from the preparer.
func Preparation(code string, message string) *AppError {
	return New(KindPreparation, code, message, http.StatusUnprocessableEntity)
}

func ErrChainUnavailable(err error) *AppError {
	return Wrap(KindPreparation, PrepChainUnavailable, "Chain state could not be read", http.StatusServiceUnavailable, err)
}

// ---- Not found ----

func ErrNotFound(entity string) *AppError {
	return New(KindNotFound, "NOT_FOUND_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Security & Authentication (SEC / AUTH) ----

func ErrInvalidAccessKey() *AppError {
	return New(KindAuth, "SEC_001", "Invalid access key", http.StatusUnauthorized)
}

func ErrInvalidSignature() *AppError {
	return New(KindAuth, "SEC_002", "Invalid signature", http.StatusUnauthorized)
}

func ErrTimestampExpired() *AppError {
	return New(KindAuth, "SEC_003", "Request timestamp expired", http.StatusForbidden)
}

func ErrNonceUsed() *AppError {
	return New(KindAuth, "SEC_004", "Nonce has already been used", http.StatusForbidden)
}

func ErrInvalidToken() *AppError {
	return New(KindAuth, "AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New(KindAuth, "AUTH_005", "Role is not allowed to perform this action", http.StatusForbidden)
}

func ErrUnknownUser() *AppError {
	return New(KindAuth, "AUTH_006", "Session does not map to a known user", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(KindRateLimit, "RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(KindSystem, "SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrLockUnavailable(err error) *AppError {
	return Wrap(KindSystem, "SYS_002", "Lock service unavailable", http.StatusServiceUnavailable, err)
}

func ErrSignerUnavailable(err error) *AppError {
	return Wrap(KindSystem, "SYS_003", "Signer did not return a result", http.StatusServiceUnavailable, err)
}

func ErrSignerDisabled() *AppError {
	return New(KindSystem, "SYS_004", "No custodial signer is configured", http.StatusServiceUnavailable)
}
