package pipeline

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/transcript-digest/internal/chunker"
	"github.com/nguyentantai21042004/transcript-digest/internal/logger"
	"github.com/nguyentantai21042004/transcript-digest/internal/transcript"
)

const (
	transcriptPreviewChars = 500
	chunkPreviewChars      = 200
)

// Run fetches the transcript, splits it and summarizes every chunk. A fetch
// failure aborts the run and is returned as is. Chunk failures are recorded
// in the report and never abort.
func (p *implPipeline) Run(ctx context.Context, videoURL string) (*Report, error) {
	startTime := time.Now()
	ctx, runID := logger.WithRunID(ctx)

	p.logger.Info(ctx, "Starting digest: %s", videoURL)

	fmt.Fprintln(p.out, "Fetching transcript...")
	text, err := p.fetcher.Fetch(ctx, videoURL)
	if err != nil {
		p.logger.Error(ctx, "Transcript fetch failed: %v", err)
		return nil, err
	}

	fmt.Fprintln(p.out, "Transcript fetched successfully:")
	fmt.Fprintf(p.out, "%s...\n\n", truncate(text, transcriptPreviewChars))

	chunks := chunker.Split(text, p.opts.MaxChunkSize, p.opts.OverlapWords)
	p.logger.Info(ctx, "Split %d characters into %d chunks (max %d, overlap %d words)",
		utf8.RuneCountInString(text), len(chunks), p.opts.MaxChunkSize, p.opts.OverlapWords)

	fmt.Fprintln(p.out, "Generating summary...")

	var results []ChunkResult
	if p.opts.MaxConcurrent > 1 && len(chunks) > 1 {
		results = p.summarizeConcurrent(ctx, chunks)
	} else {
		results = p.summarizeSequential(ctx, chunks)
	}

	// Fetch already accepted the URL, so the id is there.
	videoID, _ := transcript.ExtractVideoID(videoURL)

	report := &Report{
		RunID:        runID,
		URL:          videoURL,
		VideoID:      videoID,
		Transcript:   text,
		Chunks:       chunks,
		Results:      results,
		FinalSummary: JoinSummaries(results),
		Duration:     time.Since(startTime),
	}

	fmt.Fprintln(p.out, "Final Summary:")
	fmt.Fprintln(p.out, report.FinalSummary)

	if failed := report.Failed(); len(failed) > 0 {
		fmt.Fprintf(p.out, "\n%d of %d chunks could not be summarized:\n", len(failed), len(results))
		for _, r := range failed {
			fmt.Fprintf(p.out, "  chunk %d: %v\n", r.Index+1, r.Err)
		}
		p.logger.Warn(ctx, "Digest finished with %d failed chunks", len(failed))
	}

	p.logger.Info(ctx, "Digest completed in %s", report.Duration)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (p *implPipeline) printChunkHeader(i, total int, chunk string) {
	fmt.Fprintf(p.out, "Processing chunk %d/%d...\n", i+1, total)
	fmt.Fprintf(p.out, "Chunk %d: %s...\n\n", i+1, truncate(chunk, chunkPreviewChars))
}

func (p *implPipeline) printChunkResult(r ChunkResult) {
	if r.Failed() {
		fmt.Fprintf(p.out, "Summary for chunk %d failed: %v\n\n", r.Index+1, r.Err)
		return
	}
	fmt.Fprintf(p.out, "Summary for chunk %d: %s\n\n", r.Index+1, r.Summary)
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
