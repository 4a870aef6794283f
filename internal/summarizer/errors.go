package summarizer

import "fmt"

// SummarizeError reports a failed generation request: the backend was
// unreachable, rejected the request or returned an unreadable reply. It does
// not abort a digest; the chunk is marked failed and the run continues.
type SummarizeError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *SummarizeError) Error() string {
	return fmt.Sprintf("Error communicating with %s API: %v", e.Provider, e.Err)
}

func (e *SummarizeError) Unwrap() error {
	return e.Err
}
