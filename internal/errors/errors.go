// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, so commands can decide how to present a failure
// without parsing error strings.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Validation indicates a form field failed a local check; no request was sent.
	Validation Kind = "validation"
	// RequestFailed indicates the backend answered with a non-success status or was unreachable.
	RequestFailed Kind = "request_failed"
	// Decode indicates a malformed session token.
	Decode Kind = "decode"
	// Precondition indicates an operation was attempted without a session.
	Precondition Kind = "precondition"
	// Forbidden indicates the session role does not allow the operation.
	Forbidden Kind = "forbidden"
	// Storage indicates the secure token storage could not be used.
	Storage Kind = "storage"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// kinded is implemented by errors from other packages that carry a Kind.
type kinded interface {
	ErrorKind() Kind
}

// KindOf returns the kind of the first categorized error in err's chain,
// or the empty Kind when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	var k kinded
	if stderrors.As(err, &k) {
		return k.ErrorKind()
	}
	return ""
}

// Is reports whether err is categorized as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
