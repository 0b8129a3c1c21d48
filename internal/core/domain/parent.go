package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ParentKind identifies which saga owns an operation.
type ParentKind string

const (
	ParentWageAdvance    ParentKind = "wage_advance"
	ParentPaymentRequest ParentKind = "payment_request"
	ParentSwapIntent     ParentKind = "swap_intent"
)

// ParentRef points at the saga instance that owns an operation.
type ParentRef struct {
	Kind ParentKind `json:"kind"`
	ID   uuid.UUID  `json:"id"`
}

// NewParentRef builds a ParentRef.
func NewParentRef(kind ParentKind, id uuid.UUID) ParentRef {
	return ParentRef{Kind: kind, ID: id}
}

// String renders the ref as "<kind>:<uuid>", the form used as storage and lock key.
func (p ParentRef) String() string {
	return string(p.Kind) + ":" + p.ID.String()
}

// ParseParentRef is the inverse of ParentRef.String.
func ParseParentRef(s string) (ParentRef, error) {
	kind, rawID, ok := strings.Cut(s, ":")
	if !ok {
		return ParentRef{}, fmt.Errorf("parent ref %q: missing kind separator", s)
	}
	switch ParentKind(kind) {
	case ParentWageAdvance, ParentPaymentRequest, ParentSwapIntent:
	default:
		return ParentRef{}, fmt.Errorf("parent ref %q: unknown kind %q", s, kind)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return ParentRef{}, fmt.Errorf("parent ref %q: %w", s, err)
	}
	return ParentRef{Kind: ParentKind(kind), ID: id}, nil
}
