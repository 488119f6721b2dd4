package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"packlist/internal/config"
	"packlist/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	homeDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	homeDir := filepath.Join(testsupport.BaseDir(cfg), "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("PACKLIST_DATA_DIR", "")
	t.Setenv("PACKLIST_STORAGE_BACKEND", "")

	configPath := filepath.Join(homeDir, ".config", "packlist", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, homeDir: homeDir}
}

// runCLI executes the root command with the test config. stdin feeds
// confirmation prompts.
func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nbackup_dir = %q\nlog_dir = %q\n\n[storage]\nbackend = %q\nkey = %q\n",
		cfg.Paths.DataDir,
		cfg.Paths.BackupDir,
		cfg.Paths.LogDir,
		cfg.Storage.Backend,
		cfg.Storage.Key,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func listItems(t *testing.T, env *cliTestEnv) listJSON {
	t.Helper()
	out, _, err := runCLI(t, env, "", "list", "--json")
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	var view listJSON
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, out)
	}
	return view
}

func itemTexts(view listJSON) []string {
	texts := make([]string, 0, len(view.Items))
	for _, item := range view.Items {
		texts = append(texts, item.Text)
	}
	return texts
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
