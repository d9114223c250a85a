// Package domain holds the exchange entities and the error kinds
// returned by the rules engine.
package domain

import (
	"fmt"
	"strings"
)

// Kind classifies a domain error.
type Kind string

const (
	// KindInvalidArgument is malformed or missing caller input.
	KindInvalidArgument Kind = "invalid_argument"
	// KindNotFound is a referenced id that does not resolve.
	KindNotFound Kind = "not_found"
	// KindInvalidState is a resolved entity whose state forbids the operation.
	KindInvalidState Kind = "invalid_state"
)

// Sentinels usable with errors.Is. Any *Error of the same Kind matches.
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument, Message: "invalid argument"}
	ErrNotFound        = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInvalidState    = &Error{Kind: KindInvalidState, Message: "invalid state"}
)

// Error is the only error type produced by the exchange rules.
type Error struct {
	Kind    Kind
	Message string

	// MissingIDs lists unresolved ids for NotFound errors on batches.
	MissingIDs []int64
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error carrying the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// MissingCategories builds the NotFound error naming every unresolved category id.
func MissingCategories(ids []int64) *Error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return &Error{
		Kind:       KindNotFound,
		Message:    fmt.Sprintf("some categories not found: [%s]", strings.Join(parts, ", ")),
		MissingIDs: append([]int64(nil), ids...),
	}
}
