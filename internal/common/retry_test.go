package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/rankflow/internal/service"
)

func TestWithRetry(t *testing.T) {
	opts := service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, opts)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return &RetryableError{Err: errors.New("bad request"), Retryable: false}
		}, opts)
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return errors.New("still broken")
		}, opts)
		require.ErrorIs(t, err, ErrMaxRetries)
		assert.Equal(t, 3, calls)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, func() error {
			return errors.New("transient")
		}, service.RetryOptions{MaxAttempts: 5, InitialDelay: time.Second})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWithRetry_KeepsCause(t *testing.T) {
	cause := errors.New("backend unavailable")
	err := WithRetry(context.Background(), func() error {
		return &RetryableError{Err: cause, Retryable: true}
	}, service.RetryOptions{MaxAttempts: 2, InitialDelay: time.Millisecond})

	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.ErrorIs(t, err, cause)
}

func TestRetryDefaults(t *testing.T) {
	opts := retryDefaults(service.RetryOptions{MaxAttempts: 7})

	assert.Equal(t, 7, opts.MaxAttempts)
	assert.Equal(t, defaultInitialDelay, opts.InitialDelay)
	assert.Equal(t, defaultMaxDelay, opts.MaxDelay)
	assert.InDelta(t, defaultMultiplier, opts.Multiplier, 0)
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, isRateLimited(ErrSheetsRateLimit))
	assert.True(t, isRateLimited(&RetryableError{Err: ErrRateLimit, Retryable: true}))
	assert.False(t, isRateLimited(errors.New("boom")))
}
