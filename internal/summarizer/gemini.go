package summarizer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const geminiProvider = "Gemini"

// Summarize sends the chunk to Gemini. Rotates API keys on 429 / quota errors;
// every key is tried at most once per chunk.
func (g *implGemini) Summarize(ctx context.Context, chunk string) (string, error) {
	prompt := buildPrompt(g.prompt, chunk)

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		keyIndex, key := g.key()

		cc := &genai.ClientConfig{
			APIKey:     key,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: g.http,
		}
		if g.baseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
		}

		client, err := genai.NewClient(ctx, cc)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey(keyIndex)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			if isRateLimited(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIndex+1)
				g.rotateKey(keyIndex)
				lastErr = err
				continue
			}
			return "", &SummarizeError{Provider: geminiProvider, Err: fmt.Errorf("generate content: %w", err)}
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			if text != "" {
				return text, nil
			}
		}
		return NoSummary, nil
	}

	return "", &SummarizeError{Provider: geminiProvider, Err: fmt.Errorf("all API keys exhausted: %w", lastErr)}
}

func (g *implGemini) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

// rotateKey advances past the key at index used. Concurrent callers that
// failed on the same key rotate only once.
func (g *implGemini) rotateKey(used int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == used {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
