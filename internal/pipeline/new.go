package pipeline

import (
	"io"

	"github.com/nguyentantai21042004/transcript-digest/internal/config"
	"github.com/nguyentantai21042004/transcript-digest/internal/logger"
	"github.com/nguyentantai21042004/transcript-digest/internal/summarizer"
	"github.com/nguyentantai21042004/transcript-digest/internal/transcript"
)

// Options tunes a run.
type Options struct {
	MaxChunkSize      int
	OverlapWords      int
	MaxConcurrent     int
	RequestsPerMinute int
}

// OptionsFromConfig reads the chunking and performance sections of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxChunkSize:      cfg.Chunking.MaxChunkSize,
		OverlapWords:      cfg.Chunking.OverlapWords,
		MaxConcurrent:     cfg.Performance.MaxConcurrent,
		RequestsPerMinute: cfg.Performance.RequestsPerMinute,
	}
}

type implPipeline struct {
	fetcher    transcript.Fetcher
	summarizer summarizer.Summarizer
	opts       Options
	out        io.Writer
	logger     logger.Logger
}

// New creates a Pipeline printing its human-readable progress to out.
func New(f transcript.Fetcher, s summarizer.Summarizer, opts Options, out io.Writer, log logger.Logger) Pipeline {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if out == nil {
		out = io.Discard
	}
	return &implPipeline{
		fetcher:    f,
		summarizer: s,
		opts:       opts,
		out:        out,
		logger:     log,
	}
}
