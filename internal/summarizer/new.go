package summarizer

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/nguyentantai21042004/transcript-digest/internal/config"
	"github.com/nguyentantai21042004/transcript-digest/internal/logger"
	"github.com/sashabaranov/go-openai"
)

type implOllama struct {
	endpoint string
	model    string
	prompt   string
	http     *http.Client
	logger   logger.Logger
}

type implGemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	baseURL    string
	model      string
	prompt     string
	http       *http.Client
	logger     logger.Logger
}

type implOpenAI struct {
	client *openai.Client
	model  string
	prompt string
	logger logger.Logger
}

// New creates the Summarizer selected by cfg.Provider. cfg is expected to
// have passed config.Validate.
func New(cfg config.SummarizerConfig, log logger.Logger) (Summarizer, error) {
	// Zero keeps the default client behaviour: no timeout.
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.ProviderOllama, "":
		return &implOllama{
			endpoint: cfg.EndpointURL,
			model:    cfg.Model,
			prompt:   cfg.Prompt,
			http:     httpClient,
			logger:   log,
		}, nil

	case config.ProviderGemini:
		if len(cfg.APIKeys) == 0 {
			return nil, fmt.Errorf("gemini summarizer needs at least one API key")
		}
		return &implGemini{
			apiKeys: cfg.APIKeys,
			baseURL: cfg.BaseURL,
			model:   cfg.Model,
			prompt:  cfg.Prompt,
			http:    httpClient,
			logger:  log,
		}, nil

	case config.ProviderOpenAI:
		key := ""
		if len(cfg.APIKeys) > 0 {
			key = cfg.APIKeys[0]
		}
		clientCfg := openai.DefaultConfig(key)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		clientCfg.HTTPClient = httpClient
		return &implOpenAI{
			client: openai.NewClientWithConfig(clientCfg),
			model:  cfg.Model,
			prompt: cfg.Prompt,
			logger: log,
		}, nil
	}

	return nil, fmt.Errorf("unknown summarizer provider %q", cfg.Provider)
}
