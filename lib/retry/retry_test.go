package retry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSucceedsAfterFailures(t *testing.T) {
	calls := 0
	out, err := Do(context.Background(), Options{
		MaxAttempts:  5,
		InitialDelay: 10 * time.Millisecond,
	}, func(ctx context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", fmt.Errorf("transient failure %d", calls)
		}
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", out)
	require.Equal(t, 3, calls)
}

func TestExhaustsAttempts(t *testing.T) {
	calls := 0
	boom := fmt.Errorf("always fails")
	_, err := Do(context.Background(), Options{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
	}, func(ctx context.Context) (int, error) {
		calls++
		return 0, boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 3, calls)
}

func TestPermanentShortCircuits(t *testing.T) {
	calls := 0
	rejected := fmt.Errorf("bad credentials")
	_, err := Do(context.Background(), Options{
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
	}, func(ctx context.Context) (int, error) {
		calls++
		return 0, Permanent(rejected)
	})
	require.ErrorIs(t, err, rejected)
	require.True(t, IsPermanent(err))
	require.Equal(t, 1, calls)
}

func TestContextCancelStopsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := Do(ctx, Options{
		MaxAttempts:  5,
		InitialDelay: time.Minute,
	}, func(ctx context.Context) (int, error) {
		calls++
		return 0, fmt.Errorf("transient")
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}
