package transcript

import (
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/transcript-digest/internal/config"
	"github.com/nguyentantai21042004/transcript-digest/internal/logger"
)

type implFetcher struct {
	client Client
	logger logger.Logger
}

// New creates a Fetcher backed by the given transcript service client
func New(client Client, log logger.Logger) Fetcher {
	return &implFetcher{
		client: client,
		logger: log,
	}
}

type implYouTubeClient struct {
	baseURL   string
	languages []string
	http      *http.Client
}

// NewYouTubeClient creates a Client reading caption tracks from YouTube watch
// pages. A zero transcript timeout keeps the HTTP client's default behaviour.
func NewYouTubeClient(cfg config.TranscriptConfig) Client {
	return &implYouTubeClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		languages: cfg.Languages,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}
