package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies application errors so the HTTP layer can map them to
// statuses without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: bad input shape or range. Never retried.
	KindValidation
	// KindProviderUnavailable: embedding/generation call failed or timed out
	// after bounded retries.
	KindProviderUnavailable
	// KindOwnership: the record exists but belongs to another user.
	// Always fatal to the request.
	KindOwnership
	// KindPartialIndex: some chunks of a resource failed to embed.
	// Recorded, not fatal.
	KindPartialIndex
	// KindNotFound: missing Resource, Plan, Session or Card.
	KindNotFound
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func ProviderUnavailable(message string, err error) *Error {
	return &Error{Kind: KindProviderUnavailable, Message: message, Err: err}
}

func Ownership(message string) *Error {
	return &Error{Kind: KindOwnership, Message: message}
}

func PartialIndex(message string, err error) *Error {
	return &Error{Kind: KindPartialIndex, Message: message, Err: err}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from any error in the chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
