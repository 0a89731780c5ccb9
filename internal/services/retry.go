package services

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Backoff returns the wait before the attempt following attempt (1-based).
// A Retry-After carried by a StatusError wins over the exponential schedule.
// Both are clamped to max when max is positive. A non-positive base yields
// no wait unless the server asked for one.
func Backoff(attempt int, base, max time.Duration, err error) time.Duration {
	var status *StatusError
	if errors.As(err, &status) && status.RetryAfter > 0 {
		return clamp(status.RetryAfter, max)
	}
	if base <= 0 {
		return 0
	}
	if attempt < 1 {
		attempt = 1
	}
	d := base << (attempt - 1)
	if d <= 0 {
		// shift overflow
		return max
	}
	return clamp(d, max)
}

func clamp(d, max time.Duration) time.Duration {
	if max > 0 && d > max {
		return max
	}
	return d
}

// ParseRetryAfter reads a Retry-After header given in seconds or as an HTTP
// date. Unparseable or past values yield zero.
func ParseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	if when, err := http.ParseTime(value); err == nil {
		if d := time.Until(when); d > 0 {
			return d
		}
	}
	return 0
}
