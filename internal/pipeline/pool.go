package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// newLimiter returns nil when requests per minute is unlimited.
func (p *implPipeline) newLimiter() *rate.Limiter {
	if p.opts.RequestsPerMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(float64(p.opts.RequestsPerMinute)/60.0), 1)
}

func (p *implPipeline) summarizeOne(ctx context.Context, limiter *rate.Limiter, i int, chunk string) ChunkResult {
	res := ChunkResult{Index: i, Chunk: chunk}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			res.Err = fmt.Errorf("rate limiter: %w", err)
			return res
		}
	}

	summary, err := p.summarizer.Summarize(ctx, chunk)
	if err != nil {
		p.logger.Warn(ctx, "Chunk %d failed: %v", i+1, err)
		res.Err = err
		return res
	}
	res.Summary = summary
	return res
}

// summarizeSequential summarizes chunks one at a time, printing as it goes.
func (p *implPipeline) summarizeSequential(ctx context.Context, chunks []string) []ChunkResult {
	limiter := p.newLimiter()
	results := make([]ChunkResult, len(chunks))

	for i, chunk := range chunks {
		p.printChunkHeader(i, len(chunks), chunk)
		results[i] = p.summarizeOne(ctx, limiter, i, chunk)
		p.printChunkResult(results[i])
	}
	return results
}

// summarizeConcurrent fans chunks out to a bounded pool. Each task owns its
// slot in results, so the join order is the chunk order whatever order the
// tasks finish in. Chunk failures are recorded, never returned, so one bad
// chunk does not cancel its siblings.
func (p *implPipeline) summarizeConcurrent(ctx context.Context, chunks []string) []ChunkResult {
	p.logger.Info(ctx, "Summarizing %d chunks with up to %d concurrent requests", len(chunks), p.opts.MaxConcurrent)

	limiter := p.newLimiter()
	results := make([]ChunkResult, len(chunks))

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(p.opts.MaxConcurrent)

	for i, chunk := range chunks {
		g.Go(func() error {
			mu.Lock()
			fmt.Fprintf(p.out, "Processing chunk %d/%d...\n", i+1, len(chunks))
			mu.Unlock()

			results[i] = p.summarizeOne(ctx, limiter, i, chunk)

			p.logger.Debug(ctx, "Chunk %d/%d completed", i+1, len(chunks))
			return nil
		})
	}
	_ = g.Wait()

	fmt.Fprintln(p.out)
	for i, r := range results {
		fmt.Fprintf(p.out, "Chunk %d: %s...\n\n", i+1, truncate(r.Chunk, chunkPreviewChars))
		p.printChunkResult(r)
	}
	return results
}
