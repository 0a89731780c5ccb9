// Package llm provides an OpenAI-compatible chat client. DeepSeek is the
// default endpoint.
//
// This package is used by:
//   - Annotator: label review batches with per-aspect sentiment and reason tags
//   - Summarizer: write the prose summary when the llm backend is selected
//   - Preflight: verify the API key and model before a run starts
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.CompleteJSON: send system/user prompts, receive a JSON payload.
// Client.Complete: send system/user prompts, receive free text.
// Client.HealthCheck: verify API key and model availability.
//
// # Errors
//
// Every failure carries a services marker (ErrTransport, ErrTimeout,
// ErrRemoteStatus, ErrDecode, ErrConfiguration) so the batch pipeline can tag
// failed batches without inspecting messages.
//
// # Retry Behaviour
//
// Retries are off by default because the batch pipeline owns its own retry
// policy. WithRetryMaxAttempts enables them for errors services.Retryable
// accepts (HTTP 408/429/5xx, empty completions, transport failures), waiting
// services.Backoff between attempts (base 1s, max 10s) or the server's
// Retry-After. Context cancellation aborts retries immediately.
package llm
