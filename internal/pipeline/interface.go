package pipeline

import "context"

// Pipeline digests one video: fetch, split, summarize each chunk, join.
type Pipeline interface {
	Run(ctx context.Context, videoURL string) (*Report, error)
}
