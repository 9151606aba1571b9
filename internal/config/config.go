// Package config layers configuration: compiled defaults, then an
// optional YAML file, then environment variables. The binaries load .env
// first, so a local .env behaves like exported environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	StaticDir  string `yaml:"static_dir"`
	UsersFile  string `yaml:"users_file"`
	InputFile  string `yaml:"input_file"`
	OutputFile string `yaml:"output_file"`
	Workers    int    `yaml:"workers"`

	Deepgram DeepgramConfig `yaml:"deepgram"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
}

type DeepgramConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Load builds the effective configuration. path may be empty.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ListenAddr: ":8080",
		StaticDir:  "static",
		UsersFile:  "users.json",
		InputFile:  "call_center_data.xlsx",
		OutputFile: "call_center_qa_results.xlsx",
		Workers:    1,
		Deepgram:   DeepgramConfig{BaseURL: "https://api.deepgram.com"},
		OpenAI:     OpenAIConfig{BaseURL: "https://api.openai.com", Model: "gpt-3.5-turbo"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.ListenAddr = ":" + port
	}
	c.StaticDir = envOr("STATIC_DIR", c.StaticDir)
	c.UsersFile = envOr("USERS_FILE", c.UsersFile)
	c.InputFile = envOr("EXCEL_FILE", c.InputFile)
	c.OutputFile = envOr("OUTPUT_FILE", c.OutputFile)
	if w := os.Getenv("WORKERS"); w != "" {
		if n, err := strconv.Atoi(w); err == nil {
			c.Workers = n
		}
	}
	c.Deepgram.APIKey = envOr("DEEPGRAM_API_KEY", c.Deepgram.APIKey)
	c.Deepgram.BaseURL = envOr("DEEPGRAM_URL", c.Deepgram.BaseURL)
	c.OpenAI.APIKey = envOr("OPENAI_API_KEY", c.OpenAI.APIKey)
	c.OpenAI.BaseURL = envOr("OPENAI_URL", c.OpenAI.BaseURL)
	c.OpenAI.Model = envOr("OPENAI_MODEL", c.OpenAI.Model)
}

// Validate fills defaults that YAML may have blanked and checks the few
// values that have no sane fallback.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.Deepgram.BaseURL == "" {
		c.Deepgram.BaseURL = "https://api.deepgram.com"
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = "https://api.openai.com"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-3.5-turbo"
	}
	if c.InputFile == "" {
		return fmt.Errorf("input_file is required")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output_file is required")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
