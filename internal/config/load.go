package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the YAML file.
const (
	EnvProvider      = "DIGEST_PROVIDER"
	EnvEndpointURL   = "DIGEST_ENDPOINT_URL"
	EnvModel         = "DIGEST_MODEL"
	EnvGeminiAPIKeys = "GEMINI_API_KEYS"
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
)

// Load reads the YAML file at path on top of Default(), applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given). Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := strings.ToLower(getenv(EnvProvider)); v != "" {
		c.Summarizer.Provider = v
	}
	if v := getenv(EnvEndpointURL); v != "" {
		c.Summarizer.EndpointURL = v
	}
	if v := getenv(EnvModel); v != "" {
		c.Summarizer.Model = v
	}

	switch c.Summarizer.Provider {
	case ProviderGemini:
		if v := getenv(EnvGeminiAPIKeys); v != "" {
			c.Summarizer.APIKeys = splitList(v)
		}
	case ProviderOpenAI:
		if v := getenv(EnvOpenAIAPIKey); v != "" {
			c.Summarizer.APIKeys = []string{v}
		}
		if v := getenv(EnvOpenAIBaseURL); v != "" {
			c.Summarizer.BaseURL = v
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
