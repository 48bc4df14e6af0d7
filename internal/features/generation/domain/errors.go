package domain

import (
	"errors"
	"strings"
)

// ErrorKind is the closed taxonomy raw provider errors are mapped into. It
// tags telemetry and the errors surfaced to callers; it does not change the
// fallback decision (any phase failure degrades regardless of kind).
type ErrorKind string

const (
	KindAPIKey     ErrorKind = "api-key-error"
	KindRateLimit  ErrorKind = "rate-limit-error"
	KindTimeout    ErrorKind = "timeout-error"
	KindGeneration ErrorKind = "generation-error"
)

// Classify maps a raw provider error onto the taxonomy by case-insensitive
// substring matching, in priority order. Unknown errors are generation
// errors.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindGeneration
	}
	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "api key", "401", "unauthorized"):
		return KindAPIKey
	case containsAny(msg, "rate limit", "429", "quota"):
		return KindRateLimit
	case containsAny(msg, "timeout", "timed out", "etimedout"):
		return KindTimeout
	default:
		return KindGeneration
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ClassifiedError attaches an ErrorKind to the underlying provider error
// without losing the original message.
type ClassifiedError struct {
	Kind ErrorKind
	Err  error
}

func (e *ClassifiedError) Error() string {
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *ClassifiedError) Unwrap() error { return e.Err }

// WrapClassified classifies err and wraps it. Already-classified errors are
// returned unchanged.
func WrapClassified(err error) *ClassifiedError {
	if err == nil {
		return nil
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce
	}
	return &ClassifiedError{Kind: Classify(err), Err: err}
}
