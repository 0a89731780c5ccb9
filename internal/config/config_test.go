package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"reviewlens/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DEEPSEEK_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "REVIEWLENS_CLASSIFIER_URL", "OLLAMA_HOST"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultsExpandPathsAndReadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEEPSEEK_API_KEY", "ds-key")
	t.Setenv("OLLAMA_HOST", "gpu-box:11434")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(tempHome, ".config", "reviewlens", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if want := filepath.Join(tempHome, ".local", "share", "reviewlens", "output"); cfg.Paths.OutputDir != want {
		t.Fatalf("output dir = %q, want %q", cfg.Paths.OutputDir, want)
	}
	if cfg.Classifier.URL != "http://localhost:8000" {
		t.Fatalf("classifier url = %q", cfg.Classifier.URL)
	}
	if cfg.Annotator.APIKey != "ds-key" || cfg.Annotator.Model != "deepseek-chat" {
		t.Fatalf("unexpected annotator %+v", cfg.Annotator)
	}
	if cfg.Summarizer.URL != "http://gpu-box:11434" || cfg.Summarizer.Model != "otel-ozet" {
		t.Fatalf("unexpected summarizer %+v", cfg.Summarizer)
	}
	p := cfg.Pipeline
	if p.ClassifyBatchSize != 32 || p.AnnotateBatchSize != 6 || p.Workers != 8 || p.CheckpointEvery != 10 || p.RetryAttempts != 1 {
		t.Fatalf("unexpected pipeline defaults %+v", p)
	}
	if cfg.OutputExtension() != ".jsonl" {
		t.Fatalf("unexpected extension %q", cfg.OutputExtension())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir, cfg.Paths.CheckpointDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", dir, err)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	configPath := filepath.Join(t.TempDir(), "reviewlens.toml")

	type payload struct {
		Annotator struct {
			Provider string `toml:"provider"`
		} `toml:"annotator"`
		Pipeline struct {
			Workers      int    `toml:"workers"`
			OutputFormat string `toml:"output_format"`
		} `toml:"pipeline"`
		Summarizer struct {
			Provider string `toml:"provider"`
		} `toml:"summarizer"`
	}
	custom := payload{}
	custom.Annotator.Provider = "Anthropic"
	custom.Pipeline.Workers = 3
	custom.Pipeline.OutputFormat = "TEXT"
	custom.Summarizer.Provider = "none"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution %q exists=%v", resolved, exists)
	}
	if cfg.Annotator.Provider != config.ProviderAnthropic || cfg.Annotator.APIKey != "sk-ant" || cfg.Annotator.Model != "claude-sonnet-4-5" {
		t.Fatalf("unexpected annotator %+v", cfg.Annotator)
	}
	if cfg.Annotator.BaseURL != "" {
		t.Fatalf("anthropic base url should stay empty, got %q", cfg.Annotator.BaseURL)
	}
	if cfg.Pipeline.Workers != 3 || cfg.OutputExtension() != ".txt" {
		t.Fatalf("unexpected pipeline %+v", cfg.Pipeline)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	cases := map[string]string{
		"unknown provider": "[annotator]\nprovider = \"gemini\"\n",
		"bad format":       "[pipeline]\noutput_format = \"xml\"\n",
		"threshold":        "[pipeline]\nduplicate_threshold = 1.5\n",
		"workers":          "[pipeline]\nworkers = 1000\n",
		"classifier url":   "[classifier]\nurl = \"localhost:8000\"\n",
		"unknown key":      "[pipeline]\nbatch = 3\n",
		"log level":        "[logging]\nlevel = \"loud\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestSampleConfigLoads(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Summarizer.Provider != config.ProviderOllama || cfg.Summarizer.Model != "otel-ozet" {
		t.Fatalf("unexpected summarizer %+v", cfg.Summarizer)
	}
}

func TestEncodeMasksSecrets(t *testing.T) {
	cfg := config.Default()
	cfg.Annotator.APIKey = "sk-1234567890abcdef"
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.Contains(string(data), "1234567890") {
		t.Fatalf("secret leaked: %s", data)
	}
	if !strings.Contains(string(data), "[pipeline]") {
		t.Fatalf("expected pipeline section: %s", data)
	}
}
