package summarizer

import (
	"context"

	"reviewlens/internal/services/llm"
	"reviewlens/internal/services/ollama"
)

// OllamaBackend writes summaries with a local Ollama model.
type OllamaBackend struct {
	Client *ollama.Client
}

func (b OllamaBackend) Name() string { return "ollama:" + b.Client.Model() }

func (b OllamaBackend) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return b.Client.Chat(ctx, systemPrompt, userPrompt)
}

// LLMBackend writes summaries with the OpenAI-compatible client.
type LLMBackend struct {
	Client *llm.Client
}

func (b LLMBackend) Name() string { return "llm:" + b.Client.Model() }

func (b LLMBackend) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return b.Client.Complete(ctx, systemPrompt, userPrompt)
}
