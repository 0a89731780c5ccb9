package config

const (
	defaultConfigPath         = "~/.config/reviewlens/config.toml"
	defaultOutputDir          = "~/.local/share/reviewlens/output"
	defaultLogDir             = "~/.local/share/reviewlens/logs"
	defaultCheckpointDir      = "~/.local/share/reviewlens/checkpoints"
	defaultClassifierURL      = "http://localhost:8000"
	defaultAnnotatorProvider  = ProviderOpenAI
	defaultOpenAIBaseURL      = "https://api.deepseek.com/chat/completions"
	defaultOpenAIModel        = "deepseek-chat"
	defaultAnthropicModel     = "claude-sonnet-4-5"
	defaultAnnotatorMaxTokens = 4096
	defaultRemoteTimeout      = 120
	defaultSummarizerProvider = ProviderOllama
	defaultOllamaURL          = "http://localhost:11434"
	defaultOllamaModel        = "otel-ozet"
	defaultSummaryTemperature = 0.7
	defaultSummaryTopP        = 0.9
	defaultSummaryNumPredict  = 1024
	defaultSummaryRepeatPen   = 1.08
	defaultClassifyBatchSize  = 32
	defaultAnnotateBatchSize  = 6
	defaultWorkers            = 8
	defaultCheckpointEvery    = 10
	defaultRetryAttempts      = 1
	defaultRetryBaseDelayMS   = 500
	defaultRetryMaxDelayMS    = 10000
	defaultMinReviewLength    = 10
	defaultNotifyTimeout      = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	maxWorkers                = 64
	maxCallTimeoutSeconds     = 3600
	maxRetryAttempts          = 10
	maxBatchSize              = 1024
)

// Provider and format names accepted in the configuration file.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderLLM       = "llm"
	ProviderNone      = "none"

	OutputFormatJSONL = "jsonl"
	OutputFormatText  = "text"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:     defaultOutputDir,
			LogDir:        defaultLogDir,
			CheckpointDir: defaultCheckpointDir,
		},
		Classifier: Classifier{
			TimeoutSeconds: defaultRemoteTimeout,
		},
		Annotator: Annotator{
			Provider:       defaultAnnotatorProvider,
			MaxTokens:      defaultAnnotatorMaxTokens,
			TimeoutSeconds: defaultRemoteTimeout,
		},
		Summarizer: Summarizer{
			Provider:       defaultSummarizerProvider,
			TimeoutSeconds: defaultRemoteTimeout,
			Temperature:    defaultSummaryTemperature,
			TopP:           defaultSummaryTopP,
			NumPredict:     defaultSummaryNumPredict,
			RepeatPenalty:  defaultSummaryRepeatPen,
		},
		Pipeline: Pipeline{
			ClassifyBatchSize:  defaultClassifyBatchSize,
			AnnotateBatchSize:  defaultAnnotateBatchSize,
			Workers:            defaultWorkers,
			CheckpointEvery:    defaultCheckpointEvery,
			CallTimeoutSeconds: defaultRemoteTimeout,
			RetryAttempts:      defaultRetryAttempts,
			RetryBaseDelayMS:   defaultRetryBaseDelayMS,
			RetryMaxDelayMS:    defaultRetryMaxDelayMS,
			MinReviewLength:    defaultMinReviewLength,
			OutputFormat:       OutputFormatJSONL,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
