package config

import (
	"fmt"
	"time"
)

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// SummaryPrompt is the instruction prefixed to every chunk.
const SummaryPrompt = "Summarize the following text in a concise and clear manner:"

type Config struct {
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Transcript  TranscriptConfig  `yaml:"transcript"`
	Performance PerformanceConfig `yaml:"performance"`
	Paths       PathsConfig       `yaml:"paths"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type SummarizerConfig struct {
	Provider    string        `yaml:"provider"`
	EndpointURL string        `yaml:"endpoint_url"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	Prompt      string        `yaml:"prompt"`
	APIKeys     []string      `yaml:"api_keys"`
	Timeout     time.Duration `yaml:"timeout"`
}

// ChunkingConfig sizes chunks in characters (runes plus one separator per word), not model tokens.
type ChunkingConfig struct {
	MaxChunkSize int `yaml:"max_chunk_size"`
	OverlapWords int `yaml:"overlap_words"`
}

type TranscriptConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Languages []string      `yaml:"languages"`
	Timeout   time.Duration `yaml:"timeout"`
}

// PerformanceConfig bounds outgoing work. MaxConcurrent limits chunks of one
// video; MaxConcurrentLists limits URL lists handled at once in watch mode.
// Watch mode can therefore have MaxConcurrent * MaxConcurrentLists requests
// in flight.
type PerformanceConfig struct {
	MaxConcurrent      int `yaml:"max_concurrent"`
	MaxConcurrentLists int `yaml:"max_concurrent_lists"`
	RequestsPerMinute  int `yaml:"requests_per_minute"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type OutputConfig struct {
	Docx bool `yaml:"docx"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the baseline configuration. The model is left empty so
// Validate can pick the default for whichever provider ends up selected.
func Default() *Config {
	return &Config{
		Summarizer: SummarizerConfig{
			Provider:    ProviderOllama,
			EndpointURL: "http://127.0.0.1:11434/api/generate",
			Prompt:      SummaryPrompt,
		},
		Chunking: ChunkingConfig{
			MaxChunkSize: 16000,
			OverlapWords: 50,
		},
		Transcript: TranscriptConfig{
			BaseURL:   "https://www.youtube.com",
			Languages: []string{"en"},
		},
		Performance: PerformanceConfig{
			MaxConcurrent:      1,
			MaxConcurrentLists: 1,
		},
		Paths: PathsConfig{
			Input:    "data/input",
			Output:   "data/output",
			Archived: "data/archived",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func (c *Config) Validate() error {
	switch c.Summarizer.Provider {
	case "":
		c.Summarizer.Provider = ProviderOllama
	case ProviderOllama, ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("summarizer.provider %q is not supported", c.Summarizer.Provider)
	}

	if c.Summarizer.Model == "" {
		switch c.Summarizer.Provider {
		case ProviderGemini:
			c.Summarizer.Model = "gemini-2.5-flash"
		case ProviderOpenAI:
			c.Summarizer.Model = "gpt-4o-mini"
		default:
			c.Summarizer.Model = "deepseek-r1:7b"
		}
	}
	if c.Summarizer.Prompt == "" {
		c.Summarizer.Prompt = SummaryPrompt
	}

	switch c.Summarizer.Provider {
	case ProviderOllama:
		if c.Summarizer.EndpointURL == "" {
			return fmt.Errorf("summarizer.endpoint_url is required")
		}
	case ProviderGemini:
		if len(c.Summarizer.APIKeys) == 0 {
			return fmt.Errorf("summarizer.api_keys is required for provider %s", ProviderGemini)
		}
	case ProviderOpenAI:
		if len(c.Summarizer.APIKeys) == 0 && c.Summarizer.BaseURL == "" {
			return fmt.Errorf("summarizer.api_keys or summarizer.base_url is required for provider %s", ProviderOpenAI)
		}
	}
	if c.Summarizer.Timeout < 0 {
		return fmt.Errorf("summarizer.timeout must not be negative")
	}

	if c.Chunking.MaxChunkSize <= 0 {
		return fmt.Errorf("chunking.max_chunk_size must be positive")
	}
	if c.Chunking.OverlapWords < 0 {
		return fmt.Errorf("chunking.overlap_words must not be negative")
	}

	if c.Transcript.BaseURL == "" {
		c.Transcript.BaseURL = "https://www.youtube.com"
	}
	if len(c.Transcript.Languages) == 0 {
		c.Transcript.Languages = []string{"en"}
	}

	if c.Performance.MaxConcurrent <= 0 {
		c.Performance.MaxConcurrent = 1
	}
	if c.Performance.MaxConcurrentLists <= 0 {
		c.Performance.MaxConcurrentLists = 1
	}
	if c.Performance.RequestsPerMinute < 0 {
		return fmt.Errorf("performance.requests_per_minute must not be negative")
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
