package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	outputDir  string
	classifier *httptest.Server
}

// setupCLITestEnv writes a config pointing every directory at a temp tree and
// the classifier at a stub that marks cleanliness positive for every text.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("REVIEWLENS_CLASSIFIER_URL", "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/predict_batch":
			var req struct {
				Texts []string `json:"texts"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			out := make([][]int, len(req.Texts))
			for i := range out {
				out[i] = make([]int, 25)
				out[i][0] = 1
			}
			_ = json.NewEncoder(w).Encode(out)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "reviewlens.toml"),
		outputDir:  filepath.Join(base, "output"),
		classifier: server,
	}
	writeTestConfig(t, env)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
output_dir = %q
log_dir = %q
checkpoint_dir = %q

[classifier]
url = %q

[annotator]
provider = "anthropic"
api_key = "sk-ant-test-secret-key"

[summarizer]
provider = "none"

[pipeline]
classify_batch_size = 2
workers = 2
`,
		env.outputDir,
		filepath.Join(env.baseDir, "logs"),
		filepath.Join(env.baseDir, "checkpoints"),
		env.classifier.URL,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
