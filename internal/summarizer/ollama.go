package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const ollamaProvider = "Ollama"

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response *string `json:"response"`
}

// Summarize posts a non-streaming /api/generate request and returns the
// reply's response field.
func (o *implOllama) Summarize(ctx context.Context, chunk string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  o.model,
		Prompt: buildPrompt(o.prompt, chunk),
		Stream: false,
	})
	if err != nil {
		return "", &SummarizeError{Provider: ollamaProvider, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &SummarizeError{Provider: ollamaProvider, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	o.logger.Debug(ctx, "POST %s model=%s body_bytes=%d", o.endpoint, o.model, len(body))

	resp, err := o.http.Do(req)
	if err != nil {
		return "", &SummarizeError{Provider: ollamaProvider, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &SummarizeError{
			Provider:   ollamaProvider,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &SummarizeError{Provider: ollamaProvider, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if out.Response == nil {
		return NoSummary, nil
	}
	return *out.Response, nil
}
