package summarizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const openAIProvider = "OpenAI"

// Summarize sends the chunk as a single user message to a chat completion endpoint.
func (c *implOpenAI) Summarize(ctx context.Context, chunk string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(c.prompt, chunk)},
		},
	})
	if err != nil {
		se := &SummarizeError{Provider: openAIProvider, Err: fmt.Errorf("chat completion: %w", err)}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			se.StatusCode = apiErr.HTTPStatusCode
		}
		return "", se
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return NoSummary, nil
	}
	return resp.Choices[0].Message.Content, nil
}
