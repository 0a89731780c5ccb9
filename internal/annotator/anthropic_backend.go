package annotator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"reviewlens/internal/services"
)

const (
	defaultAnthropicModel     = "claude-sonnet-4-5"
	defaultAnthropicMaxTokens = 4096
)

// AnthropicConfig captures the Anthropic Messages API settings.
type AnthropicConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	MaxTokens      int
	TimeoutSeconds int
}

// AnthropicBackend labels batches through the Anthropic Messages API.
type AnthropicBackend struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicBackend builds a backend. SDK-level retries are disabled; the
// batch pipeline owns the retry policy.
func NewAnthropicBackend(cfg AnthropicConfig) *AnthropicBackend {
	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithMaxRetries(0),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultAnthropicModel
	}
	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	return &AnthropicBackend{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (b *AnthropicBackend) Name() string { return "anthropic:" + b.model }

// CompleteJSON asks the model for a JSON object. The Messages API has no JSON
// response mode, so the system prompt carries the format instructions.
func (b *AnthropicBackend) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	message, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(b.model),
		MaxTokens:   b.maxTokens,
		Temperature: anthropic.Float(0),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", classifyAnthropicError(err)
	}
	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", services.Wrap(services.ErrTransient, "anthropic", "messages", "no text content in response", nil)
}

func classifyAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return services.Wrap(services.ErrRemoteStatus, "anthropic", "messages", "", &services.StatusError{
			StatusCode: apiErr.StatusCode,
			Body:       apiErr.Error(),
		})
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, "anthropic", "messages", "request timed out", err)
	}
	return services.Wrap(services.ErrTransport, "anthropic", "messages", "request failed", err)
}
