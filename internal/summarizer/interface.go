package summarizer

import "context"

// Summarizer condenses a single transcript chunk. Implementations make one
// request per call and never retry.
type Summarizer interface {
	Summarize(ctx context.Context, chunk string) (string, error)
}
