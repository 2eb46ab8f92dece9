package service

import (
	"errors"
	"fmt"

	"parking-api/internal/repository"
)

// Kind classifies a service failure so the transport layer can pick a status without reading error text.
type Kind int

const (
	// KindValidation means the input could not be accepted.
	KindValidation Kind = iota + 1
	// KindUnavailable means the spot store could not be reached.
	KindUnavailable
	// KindRejected means the spot store refused or failed the operation.
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnavailable:
		return "unavailable"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Error is returned by every SpotService operation that fails.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("service: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrInvalidCoordinates is wrapped in a KindValidation error for non-finite input.
var ErrInvalidCoordinates = errors.New("coordinates must be finite numbers")

// KindOf returns the Kind carried by err, or 0 when err is not a service error.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return 0
}

func storeError(op string, err error) error {
	kind := KindRejected
	if errors.Is(err, repository.ErrUnavailable) {
		kind = KindUnavailable
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
