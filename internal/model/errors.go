package model

import (
	"errors"
	"fmt"
)

// Kind classifies a model call failure so callers can branch on the
// failure mode instead of matching error strings.
type Kind int

const (
	// KindTransport covers network, authentication, and service errors
	// that are not worth retrying.
	KindTransport Kind = iota
	// KindThrottled covers rate-limit rejections, retried with backoff.
	KindThrottled
	// KindParse covers replies that could not be decoded into the
	// expected structure.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindThrottled:
		return "throttled"
	case KindParse:
		return "parse"
	default:
		return "transport"
	}
}

// CallError is the failure type for every model call.
type CallError struct {
	Kind Kind
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("model call %s: %v", e.Kind, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// IsThrottled reports whether err is a throttling failure, including
// terminal retry exhaustion.
func IsThrottled(err error) bool {
	return kindOf(err) == KindThrottled
}

// IsParse reports whether err is a reply decoding failure.
func IsParse(err error) bool {
	return kindOf(err) == KindParse
}

func kindOf(err error) Kind {
	var callErr *CallError
	if errors.As(err, &callErr) {
		return callErr.Kind
	}
	return KindTransport
}
