package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeClassifier()
	c.normalizeAnnotator()
	c.normalizeSummarizer()
	c.normalizePipeline()
	if err := c.normalizeVocabulary(); err != nil {
		return err
	}
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CheckpointDir) == "" {
		c.Paths.CheckpointDir = defaultCheckpointDir
	}
	if c.Paths.CheckpointDir, err = expandPath(c.Paths.CheckpointDir); err != nil {
		return fmt.Errorf("paths.checkpoint_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeClassifier() {
	c.Classifier.URL = strings.TrimRight(strings.TrimSpace(c.Classifier.URL), "/")
	if c.Classifier.URL == "" {
		if value, ok := lookupEnv("REVIEWLENS_CLASSIFIER_URL"); ok {
			c.Classifier.URL = strings.TrimRight(value, "/")
		} else {
			c.Classifier.URL = defaultClassifierURL
		}
	}
	if c.Classifier.TimeoutSeconds <= 0 {
		c.Classifier.TimeoutSeconds = defaultRemoteTimeout
	}
}

func (c *Config) normalizeAnnotator() {
	c.Annotator.Provider = strings.ToLower(strings.TrimSpace(c.Annotator.Provider))
	if c.Annotator.Provider == "" {
		c.Annotator.Provider = defaultAnnotatorProvider
	}
	c.Annotator.APIKey = strings.TrimSpace(c.Annotator.APIKey)
	c.Annotator.BaseURL = strings.TrimSpace(c.Annotator.BaseURL)
	c.Annotator.Model = strings.TrimSpace(c.Annotator.Model)
	switch c.Annotator.Provider {
	case ProviderAnthropic:
		if c.Annotator.APIKey == "" {
			c.Annotator.APIKey, _ = lookupEnv("ANTHROPIC_API_KEY")
		}
		if c.Annotator.Model == "" {
			c.Annotator.Model = defaultAnthropicModel
		}
	default:
		if c.Annotator.APIKey == "" {
			c.Annotator.APIKey = openAIKeyFromEnv()
		}
		if c.Annotator.BaseURL == "" {
			c.Annotator.BaseURL = defaultOpenAIBaseURL
		}
		if c.Annotator.Model == "" {
			c.Annotator.Model = defaultOpenAIModel
		}
	}
	if c.Annotator.MaxTokens <= 0 {
		c.Annotator.MaxTokens = defaultAnnotatorMaxTokens
	}
	if c.Annotator.TimeoutSeconds <= 0 {
		c.Annotator.TimeoutSeconds = defaultRemoteTimeout
	}
}

func (c *Config) normalizeSummarizer() {
	c.Summarizer.Provider = strings.ToLower(strings.TrimSpace(c.Summarizer.Provider))
	if c.Summarizer.Provider == "" {
		c.Summarizer.Provider = defaultSummarizerProvider
	}
	c.Summarizer.URL = strings.TrimRight(strings.TrimSpace(c.Summarizer.URL), "/")
	c.Summarizer.APIKey = strings.TrimSpace(c.Summarizer.APIKey)
	c.Summarizer.Model = strings.TrimSpace(c.Summarizer.Model)
	switch c.Summarizer.Provider {
	case ProviderOllama:
		if c.Summarizer.URL == "" {
			if value, ok := lookupEnv("OLLAMA_HOST"); ok {
				c.Summarizer.URL = ollamaURLFromHost(value)
			} else {
				c.Summarizer.URL = defaultOllamaURL
			}
		}
		if c.Summarizer.Model == "" {
			c.Summarizer.Model = defaultOllamaModel
		}
	case ProviderLLM:
		if c.Summarizer.URL == "" {
			c.Summarizer.URL = defaultOpenAIBaseURL
		}
		if c.Summarizer.APIKey == "" {
			c.Summarizer.APIKey = openAIKeyFromEnv()
		}
		if c.Summarizer.Model == "" {
			c.Summarizer.Model = defaultOpenAIModel
		}
	}
	if c.Summarizer.TimeoutSeconds <= 0 {
		c.Summarizer.TimeoutSeconds = defaultRemoteTimeout
	}
	if c.Summarizer.NumPredict <= 0 {
		c.Summarizer.NumPredict = defaultSummaryNumPredict
	}
}

func (c *Config) normalizePipeline() {
	if c.Pipeline.ClassifyBatchSize <= 0 {
		c.Pipeline.ClassifyBatchSize = defaultClassifyBatchSize
	}
	if c.Pipeline.AnnotateBatchSize <= 0 {
		c.Pipeline.AnnotateBatchSize = defaultAnnotateBatchSize
	}
	if c.Pipeline.Workers <= 0 {
		c.Pipeline.Workers = defaultWorkers
	}
	if c.Pipeline.CheckpointEvery <= 0 {
		c.Pipeline.CheckpointEvery = defaultCheckpointEvery
	}
	if c.Pipeline.CallTimeoutSeconds <= 0 {
		c.Pipeline.CallTimeoutSeconds = defaultRemoteTimeout
	}
	if c.Pipeline.RetryAttempts <= 0 {
		c.Pipeline.RetryAttempts = defaultRetryAttempts
	}
	if c.Pipeline.RetryBaseDelayMS <= 0 {
		c.Pipeline.RetryBaseDelayMS = defaultRetryBaseDelayMS
	}
	if c.Pipeline.RetryMaxDelayMS <= 0 {
		c.Pipeline.RetryMaxDelayMS = defaultRetryMaxDelayMS
	}
	if c.Pipeline.MinReviewLength <= 0 {
		c.Pipeline.MinReviewLength = defaultMinReviewLength
	}
	c.Pipeline.OutputFormat = strings.ToLower(strings.TrimSpace(c.Pipeline.OutputFormat))
	if c.Pipeline.OutputFormat == "" {
		c.Pipeline.OutputFormat = OutputFormatJSONL
	}
}

func (c *Config) normalizeVocabulary() error {
	path := strings.TrimSpace(c.Vocabulary.Path)
	if path == "" {
		c.Vocabulary.Path = ""
		return nil
	}
	expanded, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("vocabulary.path: %w", err)
	}
	c.Vocabulary.Path = expanded
	return nil
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func openAIKeyFromEnv() string {
	if value, ok := lookupEnv("DEEPSEEK_API_KEY"); ok {
		return value
	}
	value, _ := lookupEnv("OPENAI_API_KEY")
	return value
}

// ollamaURLFromHost accepts OLLAMA_HOST values with or without a scheme.
func ollamaURLFromHost(host string) string {
	host = strings.TrimRight(host, "/")
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "http://" + host
}
