package analysis

import (
	"fmt"
	"strings"
	"time"

	"reviewlens/internal/annotator"
	"reviewlens/internal/config"
	"reviewlens/internal/pipeline"
	"reviewlens/internal/services"
	"reviewlens/internal/services/classifier"
	"reviewlens/internal/services/llm"
	"reviewlens/internal/services/ollama"
	"reviewlens/internal/summarizer"
	"reviewlens/internal/vocabulary"
)

// Mode selects the labelling path.
type Mode string

const (
	ModeClassify Mode = "classify"
	ModeAnnotate Mode = "annotate"
)

// ParseMode validates a mode name.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeClassify:
		return ModeClassify, nil
	case ModeAnnotate:
		return ModeAnnotate, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want classify or annotate)", value)
	}
}

// LoadVocabulary returns the configured reason-tag table, or the built-in
// one when no override is set.
func LoadVocabulary(cfg *config.Config) (*vocabulary.Table, error) {
	if cfg == nil || strings.TrimSpace(cfg.Vocabulary.Path) == "" {
		return vocabulary.Default(), nil
	}
	table, err := vocabulary.LoadTable(cfg.Vocabulary.Path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "analysis", "vocabulary", cfg.Vocabulary.Path, err)
	}
	return table, nil
}

// NewProcessor builds the pipeline processor for mode from configuration.
// Client-level retries are disabled; the pipeline retry policy applies.
func NewProcessor(cfg *config.Config, mode Mode, table *vocabulary.Table) (pipeline.Processor, error) {
	switch mode {
	case ModeClassify:
		client := classifier.NewClient(classifier.Config{
			BaseURL:        cfg.Classifier.URL,
			TimeoutSeconds: cfg.Classifier.TimeoutSeconds,
		})
		return pipeline.ClassifierProcessor{Predictor: client}, nil
	case ModeAnnotate:
		var backend annotator.Backend
		switch cfg.Annotator.Provider {
		case config.ProviderAnthropic:
			backend = annotator.NewAnthropicBackend(annotator.AnthropicConfig{
				APIKey:         cfg.Annotator.APIKey,
				BaseURL:        cfg.Annotator.BaseURL,
				Model:          cfg.Annotator.Model,
				MaxTokens:      cfg.Annotator.MaxTokens,
				TimeoutSeconds: cfg.Annotator.TimeoutSeconds,
			})
		default:
			backend = annotator.LLMBackend{Client: newLLMClient(cfg.AnnotatorLLM(), llm.WithRetryMaxAttempts(1))}
		}
		return pipeline.AnnotatorProcessor{
			Annotator: annotator.New(backend, table),
			Validator: vocabulary.NewValidator(table),
		}, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "analysis", "processor", fmt.Sprintf("unknown mode %q", mode), nil)
	}
}

// NewSummarizer builds the prose summarizer. Provider "none" yields a
// disabled summarizer.
func NewSummarizer(cfg *config.Config) *summarizer.Summarizer {
	switch cfg.Summarizer.Provider {
	case config.ProviderOllama:
		client := ollama.NewClient(ollama.Config{
			BaseURL:        cfg.Summarizer.URL,
			Model:          cfg.Summarizer.Model,
			TimeoutSeconds: cfg.Summarizer.TimeoutSeconds,
			Options: ollama.Options{
				Temperature:   cfg.Summarizer.Temperature,
				TopP:          cfg.Summarizer.TopP,
				NumPredict:    cfg.Summarizer.NumPredict,
				RepeatPenalty: cfg.Summarizer.RepeatPenalty,
			},
		})
		return summarizer.New(summarizer.OllamaBackend{Client: client})
	case config.ProviderLLM:
		return summarizer.New(summarizer.LLMBackend{Client: newLLMClient(cfg.SummarizerLLM())})
	default:
		return summarizer.New(nil)
	}
}

func newLLMClient(cfg config.LLMConfig, opts ...llm.Option) *llm.Client {
	return llm.NewClient(llm.Config{
		APIKey:         cfg.APIKey,
		BaseURL:        cfg.BaseURL,
		Model:          cfg.Model,
		Temperature:    cfg.Temperature,
		MaxTokens:      cfg.MaxTokens,
		TimeoutSeconds: cfg.TimeoutSeconds,
	}, opts...)
}

func pipelineRetry(cfg *config.Config) pipeline.RetryPolicy {
	return pipeline.RetryPolicy{
		MaxAttempts: cfg.Pipeline.RetryAttempts,
		BaseDelay:   time.Duration(cfg.Pipeline.RetryBaseDelayMS) * time.Millisecond,
		MaxDelay:    time.Duration(cfg.Pipeline.RetryMaxDelayMS) * time.Millisecond,
	}
}

func batchSize(cfg *config.Config, mode Mode) int {
	if mode == ModeAnnotate {
		return cfg.Pipeline.AnnotateBatchSize
	}
	return cfg.Pipeline.ClassifyBatchSize
}
