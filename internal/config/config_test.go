package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.InputFile != "call_center_data.xlsx" || cfg.OutputFile != "call_center_qa_results.xlsx" {
		t.Fatalf("file defaults = %q / %q", cfg.InputFile, cfg.OutputFile)
	}
	if cfg.Workers != 1 {
		t.Fatalf("workers = %d, want 1", cfg.Workers)
	}
	if cfg.Deepgram.BaseURL != "https://api.deepgram.com" {
		t.Fatalf("deepgram base url = %q", cfg.Deepgram.BaseURL)
	}
	if cfg.OpenAI.Model != "gpt-3.5-turbo" {
		t.Fatalf("openai model = %q", cfg.OpenAI.Model)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
listen_addr: ":9000"
workers: 4
input_file: in.xlsx
output_file: out.xlsx
deepgram:
  api_key: dg-key
openai:
  api_key: oa-key
  model: gpt-4o-mini
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9000" || cfg.Workers != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Deepgram.APIKey != "dg-key" || cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("api settings = %+v", cfg)
	}
	// Unset YAML fields keep their defaults.
	if cfg.OpenAI.BaseURL != "https://api.openai.com" {
		t.Fatalf("openai base url = %q", cfg.OpenAI.BaseURL)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("workers: 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WORKERS", "8")
	t.Setenv("PORT", "9999")
	t.Setenv("DEEPGRAM_API_KEY", "env-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 8 {
		t.Fatalf("workers = %d, want env override 8", cfg.Workers)
	}
	if cfg.ListenAddr != ":9999" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.Deepgram.APIKey != "env-key" {
		t.Fatalf("deepgram key = %q", cfg.Deepgram.APIKey)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
