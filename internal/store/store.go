// Package store holds the persistent entities of the platform and their
// storage contracts. Every store ships a Postgres implementation for
// production and an in-memory one for development and tests.
package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("invalid input")
	ErrConflict   = errors.New("conflict")
)

// ContentKind tags the target of a polymorphic content reference.
type ContentKind string

const (
	KindPost    ContentKind = "post"
	KindComment ContentKind = "comment"
)

// ParseContentKind validates a raw content type string.
func ParseContentKind(s string) (ContentKind, error) {
	switch ContentKind(s) {
	case KindPost:
		return KindPost, nil
	case KindComment:
		return KindComment, nil
	default:
		return "", fmt.Errorf("%w: content type %q", ErrValidation, s)
	}
}

// ContentRef points at a post or a comment. The reference is loosely typed
// at the storage level; existence is checked per kind by the reaction engine.
type ContentRef struct {
	Kind ContentKind `json:"content_type"`
	ID   string      `json:"content_id"`
}
