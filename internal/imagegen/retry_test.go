package imagegen

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(errors.New("google image request failed: 429 Too Many Requests")))
	assert.True(t, IsRetryable(errors.New("rpc error: RESOURCE_EXHAUSTED")))
	assert.True(t, IsRetryable(errors.New("Resource exhausted, try again later")))
	assert.True(t, IsRetryable(ErrNoImage))
	assert.True(t, IsRetryable(fmt.Errorf("generate: %w", ErrNoImage)))

	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(errors.New("invalid API key")))
	assert.False(t, IsRetryable(context.Canceled))
}

func TestWithRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	response, err := WithRetry(context.Background(), func(attempt int) (*Response, error) {
		calls++
		return &Response{Image: []byte("img")}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []byte("img"), response.Image)
}

func TestWithRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := errors.New("invalid API key")
	_, err := WithRetry(context.Background(), func(attempt int) (*Response, error) {
		calls++
		return nil, permanent
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, permanent, err)
}

func TestWithRetryHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := WithRetry(ctx, func(attempt int) (*Response, error) {
		calls++
		return nil, ErrNoImage
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestWithRetryCancelDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempted := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := WithRetry(ctx, func(attempt int) (*Response, error) {
			close(attempted)
			return nil, ErrNoImage
		})
		done <- err
	}()

	// Let the first attempt fail and enter the backoff sleep, then cancel
	// instead of waiting out the 8s delay.
	<-attempted
	cancel()

	err := <-done
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTemperatureFor(t *testing.T) {
	assert.Equal(t, removalTemperature, temperatureFor("Remove EVERYTHING from this room"))
	assert.Equal(t, removalTemperature, temperatureFor("render an empty room shell"))
	assert.Equal(t, generationTemperature, temperatureFor("A living room in scandinavian style."))
}
