// Package ioretry retries local file operations that may fail transiently.
package ioretry

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

const (
	maxAttempts  = 3
	initialDelay = 50 * time.Millisecond
	maxDelay     = 500 * time.Millisecond
)

// Do runs fn with exponential backoff. Errors that retrying cannot fix
// (missing files, permissions, invalid paths) are returned immediately.
func Do(ctx context.Context, operation string, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.DelayType(retry.BackOffDelay),
		retry.Delay(initialDelay),
		retry.MaxDelay(maxDelay),
		retry.RetryIf(Retryable),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Retrying", "operation", operation, "attempt", n+1, "max_attempts", maxAttempts, "error", err)
		}),
		retry.LastErrorOnly(true),
	)
}

// Retryable reports whether err may go away on a second attempt.
func Retryable(err error) bool {
	switch {
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, fs.ErrInvalid),
		errors.Is(err, fs.ErrExist),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}
