package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"reviewlens/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTransport, "classifier", "predict_batch", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"classifier", "predict_batch", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestFailureReasonMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"timeout marker", services.Wrap(services.ErrTimeout, "llm", "call", "", nil), services.ReasonTimeout},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), services.ReasonTimeout},
		{"canceled", fmt.Errorf("call: %w", context.Canceled), services.ReasonCanceled},
		{"decode", services.Wrap(services.ErrDecode, "classifier", "decode", "", nil), services.ReasonDecode},
		{"status", services.Wrap(services.ErrRemoteStatus, "llm", "call", "", &services.StatusError{StatusCode: 500}), services.ReasonRemoteStatus},
		{"transport", services.Wrap(services.ErrTransport, "llm", "call", "", nil), services.ReasonRemoteCall},
		{"panic", services.Wrap(services.ErrWorkerPanic, "pipeline", "worker", "", nil), services.ReasonWorkerPanic},
		{"unknown", errors.New("boom"), services.ReasonUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.FailureReason(tt.err); got != tt.want {
				t.Fatalf("FailureReason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	if services.Retryable(nil) {
		t.Fatal("nil error must not be retryable")
	}
	if !services.Retryable(services.Wrap(services.ErrTransport, "llm", "call", "", nil)) {
		t.Fatal("transport errors should be retryable")
	}
	if services.Retryable(services.Wrap(services.ErrDecode, "llm", "call", "", nil)) {
		t.Fatal("decode errors must not be retryable")
	}
	if services.Retryable(fmt.Errorf("wrap: %w", context.Canceled)) {
		t.Fatal("cancellation must not be retryable")
	}
	if !services.Retryable(fmt.Errorf("wrap: %w", &services.StatusError{StatusCode: 429})) {
		t.Fatal("429 should be retryable")
	}
	if services.Retryable(fmt.Errorf("wrap: %w", &services.StatusError{StatusCode: 400})) {
		t.Fatal("400 must not be retryable")
	}
}
