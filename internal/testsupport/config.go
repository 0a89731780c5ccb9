// Package testsupport builds configs, review files and stores for tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"reviewlens/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Summaries are disabled and batches are small so a handful of reviews span
// several batches.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.CheckpointDir = filepath.Join(base, "checkpoints")
	cfgVal.Summarizer.Provider = config.ProviderNone
	cfgVal.Pipeline.ClassifyBatchSize = 2
	cfgVal.Pipeline.AnnotateBatchSize = 2
	cfgVal.Pipeline.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithClassifierURL points the classifier at a test server.
func WithClassifierURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Classifier.URL = url
	}
}

// WithBatchSize sets both labelling batch sizes.
func WithBatchSize(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pipeline.ClassifyBatchSize = n
		b.cfg.Pipeline.AnnotateBatchSize = n
	}
}
