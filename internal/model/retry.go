package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/cenkalti/backoff/v4"
)

// Anthropic signals overload with 529 in addition to the standard 429.
const statusOverloaded = 529

// retrier applies bounded exponential backoff to throttled model calls.
// Delay grows as baseDelay * 2^attempt; any non-throttle failure
// propagates immediately.
type retrier struct {
	maxAttempts int
	baseDelay   time.Duration
	timer       backoff.Timer
	logger      *slog.Logger
}

func (r *retrier) policy(ctx context.Context) backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.baseDelay
	policy.RandomizationFactor = 0
	policy.Multiplier = 2
	policy.MaxElapsedTime = 0
	policy.Reset()

	retries := uint64(0)
	if r.maxAttempts > 1 {
		retries = uint64(r.maxAttempts - 1)
	}

	return backoff.WithContext(backoff.WithMaxRetries(policy, retries), ctx)
}

// callWithRetry runs op, retrying only on throttling. Each retry is
// logged at warning level with the attempt count and computed delay.
func callWithRetry[T any](ctx context.Context, r *retrier, op func(context.Context) (T, error)) (T, error) {
	attempt := 0

	wrapped := func() (T, error) {
		var zero T

		out, err := op(ctx)
		if err == nil {
			return out, nil
		}

		if isThrottle(err) {
			return zero, &CallError{Kind: KindThrottled, Err: err}
		}

		// ops may pre-classify failures (parse errors in particular)
		var callErr *CallError
		if errors.As(err, &callErr) {
			return zero, backoff.Permanent(callErr)
		}

		return zero, backoff.Permanent(&CallError{Kind: KindTransport, Err: err})
	}

	notify := func(err error, delay time.Duration) {
		attempt++
		r.logger.Warn(
			"model throttled, backing off",
			"attempt", attempt,
			"delay", delay,
		)
	}

	out, err := backoff.RetryNotifyWithTimerAndData(wrapped, r.policy(ctx), notify, r.timer)
	if err != nil {
		if IsThrottled(err) {
			return out, &CallError{
				Kind: KindThrottled,
				Err:  fmt.Errorf("max retries (%d) exceeded: %w", r.maxAttempts, errors.Unwrap(err)),
			}
		}
		return out, err
	}

	return out, nil
}

func isThrottle(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests ||
			apiErr.StatusCode == statusOverloaded
	}

	var throttled *brtypes.ThrottlingException
	return errors.As(err, &throttled)
}
