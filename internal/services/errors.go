package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrTransport     = errors.New("transport error")
	ErrRemoteStatus  = errors.New("remote status error")
	ErrDecode        = errors.New("decode error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrTimeout       = errors.New("timeout")
	ErrCanceled      = errors.New("canceled")
	ErrTransient     = errors.New("transient failure")
	ErrWorkerPanic   = errors.New("worker panic")
)

// Failure reason tags recorded against failed batches.
const (
	ReasonTimeout       = "timeout"
	ReasonCanceled      = "canceled"
	ReasonRemoteCall    = "remote_call_failed"
	ReasonRemoteStatus  = "remote_status"
	ReasonDecode        = "decode_failed"
	ReasonWorkerPanic   = "worker_panic"
	ReasonMissingResult = "missing_batch_result"
	ReasonUnknown       = "unknown"
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureReason maps a batch error onto the reason tag written to checkpoints
// and the diagnostic log.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrWorkerPanic):
		return ReasonWorkerPanic
	case errors.Is(err, ErrCanceled), errors.Is(err, context.Canceled):
		return ReasonCanceled
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(err, ErrDecode), errors.Is(err, ErrValidation):
		return ReasonDecode
	case errors.Is(err, ErrRemoteStatus):
		return ReasonRemoteStatus
	case errors.Is(err, ErrTransport), errors.Is(err, ErrTransient):
		return ReasonRemoteCall
	default:
		return ReasonUnknown
	}
}

// Retryable reports whether a failed remote call may be attempted again.
// Decode failures, cancellation and configuration problems are final.
func Retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, ErrCanceled):
		return false
	case errors.Is(err, ErrDecode), errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration):
		return false
	case errors.Is(err, ErrTimeout), errors.Is(err, ErrTransport), errors.Is(err, ErrTransient):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}
	var status *StatusError
	if errors.As(err, &status) {
		return status.Temporary()
	}
	return false
}

// StatusError carries a non-2xx HTTP response from a remote collaborator.
type StatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether the status code is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == 408 || e.StatusCode == 429 || e.StatusCode >= 500
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
