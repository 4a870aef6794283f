package transcript

import "context"

// Fetcher turns a video URL into the plain transcript text.
type Fetcher interface {
	Fetch(ctx context.Context, videoURL string) (string, error)
}

// Client is the transcript service: it lists a video's caption entries in order.
type Client interface {
	Entries(ctx context.Context, videoID string) ([]Entry, error)
}

// Entry is a single caption line. Timing is kept by the client but dropped
// when entries are joined into a transcript.
type Entry struct {
	Text     string
	Start    float64
	Duration float64
}
