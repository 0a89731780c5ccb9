package annotator

import (
	"context"

	"reviewlens/internal/services/llm"
)

// LLMBackend adapts the OpenAI-compatible client.
type LLMBackend struct {
	Client *llm.Client
}

func (b LLMBackend) Name() string { return "openai:" + b.Client.Model() }

func (b LLMBackend) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return b.Client.CompleteJSON(ctx, systemPrompt, userPrompt)
}
