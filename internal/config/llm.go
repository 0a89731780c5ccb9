package config

import "strings"

// LLMConfig holds resolved settings for an OpenAI-compatible endpoint.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Temperature    float64
	MaxTokens      int
	TimeoutSeconds int
}

// AnnotatorLLM returns the annotator connection settings.
func (c *Config) AnnotatorLLM() LLMConfig {
	return LLMConfig{
		APIKey:         strings.TrimSpace(c.Annotator.APIKey),
		BaseURL:        strings.TrimSpace(c.Annotator.BaseURL),
		Model:          strings.TrimSpace(c.Annotator.Model),
		Temperature:    c.Annotator.Temperature,
		MaxTokens:      c.Annotator.MaxTokens,
		TimeoutSeconds: c.Annotator.TimeoutSeconds,
	}
}

// SummarizerLLM returns the summarizer settings when it uses an
// OpenAI-compatible endpoint. The API key falls back to the annotator's
// when the endpoints match.
func (c *Config) SummarizerLLM() LLMConfig {
	cfg := LLMConfig{
		APIKey:         strings.TrimSpace(c.Summarizer.APIKey),
		BaseURL:        strings.TrimSpace(c.Summarizer.URL),
		Model:          strings.TrimSpace(c.Summarizer.Model),
		Temperature:    c.Summarizer.Temperature,
		MaxTokens:      c.Summarizer.NumPredict,
		TimeoutSeconds: c.Summarizer.TimeoutSeconds,
	}
	if cfg.APIKey == "" && c.Annotator.Provider == ProviderOpenAI && cfg.BaseURL == strings.TrimSpace(c.Annotator.BaseURL) {
		cfg.APIKey = strings.TrimSpace(c.Annotator.APIKey)
	}
	return cfg
}
