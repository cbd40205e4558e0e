package retry

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"
)

type Options struct {
	// defaults to 5
	MaxAttempts int
	// defaults to 1s
	InitialDelay time.Duration
	// defaults to 30s
	MaxDelay time.Duration
	// defaults to 2
	Factor float64
	// used in log lines
	Name string
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 5
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = time.Second
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 30 * time.Second
	}
	if o.Factor <= 0 {
		o.Factor = 2
	}
	if o.Name == "" {
		o.Name = "operation"
	}
	return o
}

type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks an error as not worth retrying, Do will surface it
// immediately instead of burning through the backoff budget. Rejected
// credentials are the usual case.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

func IsPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

// Do runs fn under exponential backoff with jitter until it succeeds,
// returns a permanent error, exhausts MaxAttempts or the context is done.
func Do[T any](ctx context.Context, opts Options, fn func(ctx context.Context) (T, error)) (T, error) {
	opts = opts.withDefaults()

	var zero T
	var lastErr error
	delay := opts.InitialDelay

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				slog.InfoContext(ctx, "operation succeeded after retry",
					"operation", opts.Name, "attempt", attempt)
			}
			return result, nil
		}
		lastErr = err

		if IsPermanent(err) {
			slog.ErrorContext(ctx, "operation failed with non-retryable error",
				"operation", opts.Name, "attempt", attempt, "err", err)
			return zero, err
		}
		if attempt == opts.MaxAttempts {
			break
		}

		slog.WarnContext(ctx, "operation failed, retrying",
			"operation", opts.Name,
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"delay", delay,
			"err", err)

		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}

		// small jitter so parallel deployments don't all retry in lockstep
		delay = delay*time.Duration(opts.Factor) + time.Duration(rand.Int63n(int64(100*time.Millisecond)))
		if delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}
	}

	slog.ErrorContext(ctx, "operation failed after all attempts",
		"operation", opts.Name, "attempts", opts.MaxAttempts, "err", lastErr)
	return zero, lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
