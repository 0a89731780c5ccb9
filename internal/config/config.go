package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains output and state directories.
type Paths struct {
	OutputDir     string `toml:"output_dir"`
	LogDir        string `toml:"log_dir"`
	CheckpointDir string `toml:"checkpoint_dir"`
}

// Classifier contains connection settings for the aspect classifier service.
type Classifier struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Annotator contains settings for the LLM annotation backend.
type Annotator struct {
	Provider       string  `toml:"provider"` // "openai" or "anthropic"
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	Model          string  `toml:"model"`
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// Summarizer contains settings for the prose summary backend.
type Summarizer struct {
	Provider       string  `toml:"provider"` // "ollama", "llm" or "none"
	URL            string  `toml:"url"`
	APIKey         string  `toml:"api_key"`
	Model          string  `toml:"model"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Temperature    float64 `toml:"temperature"`
	TopP           float64 `toml:"top_p"`
	NumPredict     int     `toml:"num_predict"`
	RepeatPenalty  float64 `toml:"repeat_penalty"`
}

// Pipeline contains batching, concurrency and retry settings.
type Pipeline struct {
	ClassifyBatchSize  int     `toml:"classify_batch_size"`
	AnnotateBatchSize  int     `toml:"annotate_batch_size"`
	Workers            int     `toml:"workers"`
	CheckpointEvery    int     `toml:"checkpoint_every"`
	CallTimeoutSeconds int     `toml:"call_timeout_seconds"`
	RetryAttempts      int     `toml:"retry_attempts"` // 1 disables retries
	RetryBaseDelayMS   int     `toml:"retry_base_delay_ms"`
	RetryMaxDelayMS    int     `toml:"retry_max_delay_ms"`
	MinReviewLength    int     `toml:"min_review_length"`
	DuplicateThreshold float64 `toml:"duplicate_threshold"` // 0 disables near-duplicate removal
	OutputFormat       string  `toml:"output_format"`       // "jsonl" or "text"
}

// Vocabulary points at an optional YAML reason-tag override.
type Vocabulary struct {
	Path string `toml:"path"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for reviewlens.
//
// Configuration sections by subsystem:
//   - Paths: output, log and checkpoint directories
//   - Classifier: aspect classifier HTTP service
//   - Annotator: LLM annotation backend (OpenAI-compatible or Anthropic)
//   - Summarizer: prose summary backend (Ollama or OpenAI-compatible)
//   - Pipeline: batch sizes, worker count, checkpoint cadence, retries
//   - Vocabulary: reason-tag override file
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Classifier    Classifier    `toml:"classifier"`
	Annotator     Annotator     `toml:"annotator"`
	Summarizer    Summarizer    `toml:"summarizer"`
	Pipeline      Pipeline      `toml:"pipeline"`
	Vocabulary    Vocabulary    `toml:"vocabulary"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file).DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("reviewlens.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output, log and checkpoint directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir, c.Paths.CheckpointDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML with secrets masked.
func (c *Config) Encode() ([]byte, error) {
	masked := *c
	masked.Annotator.APIKey = maskSecret(masked.Annotator.APIKey)
	masked.Summarizer.APIKey = maskSecret(masked.Summarizer.APIKey)
	return toml.Marshal(masked)
}

func maskSecret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return "****"
	}
	return value[:4] + "…" + value[len(value)-2:]
}

// OutputExtension returns the result file extension for the configured format.
func (c *Config) OutputExtension() string {
	if c.Pipeline.OutputFormat == OutputFormatText {
		return ".txt"
	}
	return ".jsonl"
}
