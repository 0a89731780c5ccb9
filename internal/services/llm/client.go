package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"reviewlens/internal/services"
)

const (
	defaultBaseURL = "https://api.deepseek.com/chat/completions"
	defaultModel   = "deepseek-chat"
	defaultTimeout = 120 * time.Second

	jsonResponseType = "json_object"
	snippetLimit     = 160
	maxResponseBytes = 8 << 20
)

// Config holds the endpoint settings for one chat completion client.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Temperature    float64
	MaxTokens      int
	TimeoutSeconds int
}

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	cfg  Config
	http *http.Client

	attempts  int
	baseDelay time.Duration
	maxDelay  time.Duration
	sleep     func(time.Duration)
}

// Option customizes the client.
type Option func(*Client)

// WithRetryMaxAttempts sets how many times a retryable failure is attempted.
// The default of 1 leaves retrying to the caller.
func WithRetryMaxAttempts(attempts int) Option {
	return func(c *Client) { c.attempts = attempts }
}

// WithRetryBackoff overrides the exponential backoff bounds.
func WithRetryBackoff(base, max time.Duration) Option {
	return func(c *Client) {
		c.baseDelay = base
		c.maxDelay = max
	}
}

// WithSleeper replaces the wait between attempts.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(c *Client) { c.sleep = sleep }
}

// NewClient builds a client, filling in the DeepSeek endpoint and model when
// the config leaves them empty.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	c := &Client{
		cfg:       cfg,
		http:      &http.Client{Timeout: timeout},
		attempts:  1,
		baseDelay: time.Second,
		maxDelay:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// CompleteJSON asks for a JSON object answer and returns the raw payload.
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req, err := c.newRequest("complete", systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	req.ResponseFormat = map[string]string{"type": jsonResponseType}
	return c.complete(ctx, "complete", req)
}

// Complete asks for a free text answer.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req, err := c.newRequest("complete", systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	return c.complete(ctx, "complete", req)
}

// HealthCheck sends a tiny JSON prompt to prove the key and model work.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c.cfg.APIKey == "" {
		return services.Wrap(services.ErrConfiguration, "llm", "health", "api key required", nil)
	}
	content, err := c.complete(ctx, "health", chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "Reply with JSON only."},
			{Role: "user", Content: `Reply with {"ok":true}`},
		},
		ResponseFormat: map[string]string{"type": jsonResponseType},
	})
	if err != nil {
		return err
	}
	var reply struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal([]byte(unfence(content)), &reply); err != nil {
		return services.Wrap(services.ErrDecode, "llm", "health", "parse reply "+snippet(content), err)
	}
	if !reply.OK {
		return services.Wrap(services.ErrDecode, "llm", "health", "unexpected reply "+snippet(content), nil)
	}
	return nil
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Some gateways answer non-streaming calls with the streaming "delta" shape
// or the legacy completion "text" field.
type chatChoice struct {
	Message      replyMessage `json:"message"`
	Delta        replyMessage `json:"delta"`
	Text         string       `json:"text"`
	FinishReason string       `json:"finish_reason"`
}

type replyMessage struct {
	Content string `json:"content"`
	Refusal string `json:"refusal"`
}

func (r chatResponse) content() string {
	for _, choice := range r.Choices {
		for _, candidate := range []string{choice.Message.Content, choice.Delta.Content, choice.Text} {
			if trimmed := strings.TrimSpace(candidate); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func (r chatResponse) emptyDetail(body []byte) string {
	var finish, refusal string
	for _, choice := range r.Choices {
		if finish == "" {
			finish = choice.FinishReason
		}
		if refusal == "" {
			refusal = strings.TrimSpace(choice.Message.Refusal + choice.Delta.Refusal)
		}
	}
	return fmt.Sprintf("empty content (finish_reason=%q, refusal=%q, response_snippet=%s)", finish, refusal, snippet(string(body)))
}

func (c *Client) newRequest(op, systemPrompt, userPrompt string) (chatRequest, error) {
	systemPrompt = strings.TrimSpace(systemPrompt)
	userPrompt = strings.TrimSpace(userPrompt)
	switch {
	case systemPrompt == "":
		return chatRequest{}, services.Wrap(services.ErrValidation, "llm", op, "system prompt required", nil)
	case userPrompt == "":
		return chatRequest{}, services.Wrap(services.ErrValidation, "llm", op, "user prompt required", nil)
	case c.cfg.APIKey == "":
		return chatRequest{}, services.Wrap(services.ErrConfiguration, "llm", op, "api key required", nil)
	}
	return chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}, nil
}

// complete runs the request until it yields content, the failure is final,
// or the attempt budget is spent.
func (c *Client) complete(ctx context.Context, op string, req chatRequest) (string, error) {
	attempts := max(c.attempts, 1)
	for attempt := 1; ; attempt++ {
		content, err := c.send(ctx, op, req)
		if err == nil {
			return content, nil
		}
		if attempt >= attempts || ctx.Err() != nil || !services.Retryable(err) {
			if attempt > 1 {
				return "", fmt.Errorf("llm %s: failed after %d attempts: %w", op, attempt, err)
			}
			return "", err
		}
		if err := c.wait(ctx, services.Backoff(attempt, c.baseDelay, c.maxDelay, err)); err != nil {
			return "", services.Wrap(services.ErrCanceled, "llm", op, "retry wait", err)
		}
	}
}

func (c *Client) send(ctx context.Context, op string, payload chatRequest) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "llm", op, "encode body", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "llm", op, "new request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", c.transportError(op, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return "", c.transportError(op, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", services.Wrap(services.ErrRemoteStatus, "llm", op, "", &services.StatusError{
			StatusCode: resp.StatusCode,
			Body:       snippet(string(body)),
			RetryAfter: services.ParseRetryAfter(resp.Header.Get("Retry-After")),
		})
	}

	if len(body) > maxResponseBytes {
		return "", services.Wrap(services.ErrDecode, "llm", op, fmt.Sprintf("response exceeds %d bytes", maxResponseBytes), nil)
	}
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", services.Wrap(services.ErrDecode, "llm", op, "decode response", err)
	}
	if parsed.Error != nil {
		return "", services.Wrap(services.ErrRemoteStatus, "llm", op, "api error: "+strings.TrimSpace(parsed.Error.Message), nil)
	}
	if len(parsed.Choices) == 0 {
		return "", services.Wrap(services.ErrTransient, "llm", op, "no choices", nil)
	}
	content := parsed.content()
	if content == "" {
		return "", services.Wrap(services.ErrTransient, "llm", op, parsed.emptyDetail(body), nil)
	}
	return content, nil
}

func (c *Client) transportError(op string, err error) error {
	msg := fmt.Sprintf("http error (timeout=%s)", c.http.Timeout)
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return services.Wrap(services.ErrTimeout, "llm", op, msg, err)
	}
	if errors.Is(err, context.Canceled) {
		return services.Wrap(services.ErrCanceled, "llm", op, msg, err)
	}
	return services.Wrap(services.ErrTransport, "llm", op, msg, err)
}

func (c *Client) wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	if c.sleep != nil {
		c.sleep(d)
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// unfence strips a markdown code fence and any prose around a JSON object.
func unfence(content string) string {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(strings.TrimSpace(s), "json")
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}
	if start, end := strings.Index(s, "{"), strings.LastIndex(s, "}"); start > 0 && end > start {
		s = s[start : end+1]
	}
	return s
}

func snippet(content string) string {
	clean := strings.Join(strings.Fields(content), " ")
	if clean == "" {
		return "<empty>"
	}
	if runes := []rune(clean); len(runes) > snippetLimit {
		return string(runes[:snippetLimit]) + "..."
	}
	return clean
}
