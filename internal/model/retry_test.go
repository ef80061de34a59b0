package model

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// fakeTimer records requested delays and fires immediately so backoff
// behavior is observable without sleeping.
type fakeTimer struct {
	delays []time.Duration
	ch     chan time.Time
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{ch: make(chan time.Time, 1)}
}

func (t *fakeTimer) Start(d time.Duration) {
	t.delays = append(t.delays, d)
	t.ch <- time.Now()
}

func (t *fakeTimer) Stop() {}

func (t *fakeTimer) C() <-chan time.Time {
	return t.ch
}

func testRetrier(maxAttempts int, timer *fakeTimer) *retrier {
	return &retrier{
		maxAttempts: maxAttempts,
		baseDelay:   500 * time.Millisecond,
		timer:       timer,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func throttleErr() error {
	return &brtypes.ThrottlingException{}
}

func TestRetrySucceedsAfterThrottles(t *testing.T) {
	timer := newFakeTimer()
	calls := 0

	out, err := callWithRetry(context.Background(), testRetrier(5, timer), func(ctx context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", throttleErr()
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("callWithRetry error: %v", err)
	}
	if out != "ok" {
		t.Errorf("out = %q, want ok", out)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}

	want := []time.Duration{500 * time.Millisecond, time.Second}
	if len(timer.delays) != len(want) {
		t.Fatalf("delays = %v, want %v", timer.delays, want)
	}
	for i, d := range timer.delays {
		if d != want[i] {
			t.Errorf("delays[%d] = %v, want %v", i, d, want[i])
		}
	}
}

func TestRetryDelaysDouble(t *testing.T) {
	timer := newFakeTimer()

	_, err := callWithRetry(context.Background(), testRetrier(5, timer), func(ctx context.Context) (string, error) {
		return "", throttleErr()
	})
	if err == nil {
		t.Fatal("expected exhaustion error")
	}

	if len(timer.delays) != 4 {
		t.Fatalf("delays = %v, want 4 entries", timer.delays)
	}
	for i := 1; i < len(timer.delays); i++ {
		if timer.delays[i] != 2*timer.delays[i-1] {
			t.Errorf("delays[%d] = %v, want double of %v", i, timer.delays[i], timer.delays[i-1])
		}
	}
}

func TestRetryExhaustionIsThrottled(t *testing.T) {
	timer := newFakeTimer()
	calls := 0

	_, err := callWithRetry(context.Background(), testRetrier(3, timer), func(ctx context.Context) (string, error) {
		calls++
		return "", throttleErr()
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsThrottled(err) {
		t.Errorf("IsThrottled = false for %v", err)
	}
	if !strings.Contains(err.Error(), "max retries (3) exceeded") {
		t.Errorf("err = %v, want max retries message", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryNonThrottleFailsImmediately(t *testing.T) {
	timer := newFakeTimer()
	calls := 0

	_, err := callWithRetry(context.Background(), testRetrier(5, timer), func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("connection refused")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if len(timer.delays) != 0 {
		t.Errorf("delays = %v, want none", timer.delays)
	}

	var callErr *CallError
	if !errors.As(err, &callErr) || callErr.Kind != KindTransport {
		t.Errorf("err = %v, want transport CallError", err)
	}
}

func TestRetryPreservesParseClassification(t *testing.T) {
	timer := newFakeTimer()
	calls := 0

	_, err := callWithRetry(context.Background(), testRetrier(5, timer), func(ctx context.Context) (string, error) {
		calls++
		return "", &CallError{Kind: KindParse, Err: errors.New("bad reply")}
	})
	if !IsParse(err) {
		t.Errorf("IsParse = false for %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryContextCancellation(t *testing.T) {
	timer := newFakeTimer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := callWithRetry(ctx, testRetrier(5, timer), func(ctx context.Context) (string, error) {
		return "", throttleErr()
	})
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
}

func TestIsThrottleClassification(t *testing.T) {
	if !isThrottle(throttleErr()) {
		t.Error("bedrock throttling exception not classified as throttle")
	}
	if isThrottle(errors.New("boom")) {
		t.Error("plain error classified as throttle")
	}
}
