package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUnavailable means the store could not be reached: dial failure, timeout or cancellation.
	ErrUnavailable = errors.New("repository: store unavailable")
	// ErrRejected means the store was reached but refused or failed the operation.
	ErrRejected = errors.New("repository: store rejected operation")
	// ErrNoRowsReturned is a rejection where an insert succeeded on the wire but returned nothing.
	ErrNoRowsReturned = fmt.Errorf("%w: insert returned no rows", ErrRejected)
)

// classify wraps err with ErrUnavailable or ErrRejected so callers can tell connectivity
// problems from backend refusals with errors.Is. The original error stays in the chain.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrRejected) {
		return fmt.Errorf("repository: %s: %w", op, err)
	}
	if isConnectivity(err) {
		return fmt.Errorf("repository: %s: %w: %w", op, ErrUnavailable, err)
	}
	return fmt.Errorf("repository: %s: %w: %w", op, ErrRejected, err)
}

func isConnectivity(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
