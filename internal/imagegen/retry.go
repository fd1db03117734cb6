package imagegen

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"strings"
	"time"
)

// ErrNoImage means the backend answered successfully but the response
// carried no image part. Treated as transient, like a rate limit.
var ErrNoImage = errors.New("no image data in response")

const (
	retryMaxRetries = 2
	retryBaseDelay  = 8 * time.Second
	retryMaxJitter  = 2 * time.Second
)

// IsRetryable reports whether an error is a transient backend failure
// worth retrying: rate limits (429 / RESOURCE_EXHAUSTED) and empty
// image responses. Everything else fails the job immediately.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoImage) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "Resource exhausted")
}

// WithRetry runs fn with exponential backoff on retryable errors.
// Delays are 8s then 16s, each with 0-2s of random jitter so parallel
// jobs hitting the same rate limit do not retry in lockstep.
func WithRetry(ctx context.Context, fn func(attempt int) (*Response, error)) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt <= retryMaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		response, err := fn(attempt)
		if err == nil {
			return response, nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == retryMaxRetries {
			return nil, err
		}

		delay := retryBaseDelay << attempt
		jitter := time.Duration(rand.Int63n(int64(retryMaxJitter)))
		total := delay + jitter
		log.Printf("⚠️  IMAGEGEN RETRY: attempt %d/%d failed (%v), retrying in %v",
			attempt+1, retryMaxRetries+1, err, total)

		timer := time.NewTimer(total)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}
