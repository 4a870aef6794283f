package pipeline

import (
	"strings"
	"time"
)

// ChunkResult is the outcome for one chunk: either Summary is set or Err is.
type ChunkResult struct {
	Index   int
	Chunk   string
	Summary string
	Err     error
}

func (r ChunkResult) Failed() bool {
	return r.Err != nil
}

// Report is everything a run produced.
type Report struct {
	RunID        string
	URL          string
	VideoID      string
	Transcript   string
	Chunks       []string
	Results      []ChunkResult
	FinalSummary string
	Duration     time.Duration
}

// Failed returns the results of chunks that could not be summarized.
func (r *Report) Failed() []ChunkResult {
	var failed []ChunkResult
	for _, res := range r.Results {
		if res.Failed() {
			failed = append(failed, res)
		}
	}
	return failed
}

// JoinSummaries joins the successful summaries with single spaces in chunk order.
func JoinSummaries(results []ChunkResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		if !r.Failed() {
			parts = append(parts, r.Summary)
		}
	}
	return strings.Join(parts, " ")
}
