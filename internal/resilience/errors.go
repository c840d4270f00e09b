// Package resilience provides retry with backoff for dataset store
// access. Transient infrastructure failures (connection drops, lock
// timeouts) are retried; data errors are not.
package resilience

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// TransientError marks an error as safe to retry.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return e.Err.Error() }

func (e *TransientError) Unwrap() error { return e.Err }

// NewTransientError wraps an error as explicitly transient.
func NewTransientError(err error) *TransientError {
	return &TransientError{Err: err}
}

// IsTransient reports whether the error chain indicates a failure worth
// retrying: an explicit TransientError, a network timeout, a dropped
// connection, a Postgres error pgx deems safe to retry, or a SQLite
// busy/locked condition.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Cancellation is a decision, not a fault.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var te *TransientError
	if errors.As(err, &te) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	// pgx marks protocol errors where the statement never reached the
	// server.
	if pgconn.SafeToRetry(err) {
		return true
	}

	// String heuristics for errors wrapped past type recovery.
	msg := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection reset by peer",
		"broken pipe",
		"conn closed",
		"database is locked",
		"database table is locked",
		"i/o timeout",
		"temporary failure in name resolution",
	}
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}
