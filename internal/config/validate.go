package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateClassifier(); err != nil {
		return err
	}
	if err := c.validateAnnotator(); err != nil {
		return err
	}
	if err := c.validateSummarizer(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateClassifier() error {
	if err := validateURL("classifier.url", c.Classifier.URL); err != nil {
		return err
	}
	return nil
}

// validateAnnotator checks provider names only. A missing API key is reported
// by preflight when an annotate run actually needs it.
func (c *Config) validateAnnotator() error {
	switch c.Annotator.Provider {
	case ProviderOpenAI:
		return validateURL("annotator.base_url", c.Annotator.BaseURL)
	case ProviderAnthropic:
		if c.Annotator.BaseURL != "" {
			return validateURL("annotator.base_url", c.Annotator.BaseURL)
		}
		return nil
	default:
		return fmt.Errorf("annotator.provider must be %q or %q, got %q", ProviderOpenAI, ProviderAnthropic, c.Annotator.Provider)
	}
}

func (c *Config) validateSummarizer() error {
	switch c.Summarizer.Provider {
	case ProviderNone:
		return nil
	case ProviderOllama, ProviderLLM:
	default:
		return fmt.Errorf("summarizer.provider must be one of %q, %q, %q, got %q", ProviderOllama, ProviderLLM, ProviderNone, c.Summarizer.Provider)
	}
	if err := validateURL("summarizer.url", c.Summarizer.URL); err != nil {
		return err
	}
	if c.Summarizer.Temperature < 0 || c.Summarizer.Temperature > 2 {
		return errors.New("summarizer.temperature must be between 0 and 2")
	}
	if c.Summarizer.TopP < 0 || c.Summarizer.TopP > 1 {
		return errors.New("summarizer.top_p must be between 0 and 1")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	p := c.Pipeline
	if p.ClassifyBatchSize > maxBatchSize || p.AnnotateBatchSize > maxBatchSize {
		return fmt.Errorf("pipeline batch sizes must not exceed %d", maxBatchSize)
	}
	if p.Workers > maxWorkers {
		return fmt.Errorf("pipeline.workers must not exceed %d", maxWorkers)
	}
	if p.CallTimeoutSeconds > maxCallTimeoutSeconds {
		return fmt.Errorf("pipeline.call_timeout_seconds must not exceed %d", maxCallTimeoutSeconds)
	}
	if p.RetryAttempts > maxRetryAttempts {
		return fmt.Errorf("pipeline.retry_attempts must not exceed %d", maxRetryAttempts)
	}
	if p.RetryMaxDelayMS < p.RetryBaseDelayMS {
		return errors.New("pipeline.retry_max_delay_ms must be >= retry_base_delay_ms")
	}
	if p.DuplicateThreshold < 0 || p.DuplicateThreshold > 1 {
		return errors.New("pipeline.duplicate_threshold must be between 0 and 1")
	}
	switch p.OutputFormat {
	case OutputFormatJSONL, OutputFormatText:
	default:
		return fmt.Errorf("pipeline.output_format must be %q or %q, got %q", OutputFormatJSONL, OutputFormatText, p.OutputFormat)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

func validateURL(key, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s must be set", key)
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", key, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", key, value)
	}
	return nil
}
