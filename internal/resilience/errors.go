package resilience

import (
	"errors"
	"strings"
)

// RateLimitError wraps an error from the generation provider that indicates
// quota pressure (429 / resource exhaustion) and is therefore safe to retry.
type RateLimitError struct {
	Err        error
	StatusCode int
}

func (e *RateLimitError) Error() string {
	return e.Err.Error()
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError wraps an error as rate-limited with an optional HTTP status.
func NewRateLimitError(err error, statusCode int) *RateLimitError {
	return &RateLimitError{Err: err, StatusCode: statusCode}
}

// IsRateLimited reports whether the error (or any error in its chain) is a
// RateLimitError, or matches the provider's known rate-limit/quota signals.
// All other failure classes propagate to the caller without retry.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	var rle *RateLimitError
	if errors.As(err, &rle) {
		return true
	}

	msg := strings.ToLower(err.Error())
	rateLimitPatterns := []string{
		"429",
		"rate limit",
		"rate_limit",
		"too many requests",
		"quota",
		"resource_exhausted",
		"overloaded",
	}
	for _, p := range rateLimitPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}

// IsRateLimitStatus reports whether an HTTP status code signals quota pressure.
func IsRateLimitStatus(statusCode int) bool {
	return statusCode == 429 || statusCode == 529
}
