package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/transcript-digest/internal/config"
	"github.com/nguyentantai21042004/transcript-digest/internal/logger"
	"github.com/nguyentantai21042004/transcript-digest/internal/processor"
	"github.com/nguyentantai21042004/transcript-digest/internal/watcher"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Digest every URL list dropped into the input folder",
		Long: `Watch monitors paths.input for .txt and .urls files. Each line of a list
is a video URL; the summaries are written to paths.output and the list is
moved to paths.archived once done.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}
}

func runWatch(cmd *cobra.Command, opts *options) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcript Digest Watcher")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Provider: %s (%s)", cfg.Summarizer.Provider, cfg.Summarizer.Model)
	log.Info(ctx, "Max Concurrent Lists: %d, chunks per video: %d",
		cfg.Performance.MaxConcurrentLists, cfg.Performance.MaxConcurrent)

	if err := ensureDirectories(cfg); err != nil {
		return err
	}

	// Several lists may run at once, so per-chunk progress stays off stdout.
	p, err := newPipeline(cfg, log, io.Discard)
	if err != nil {
		return err
	}
	proc := processor.New(cfg, p, log)

	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrentLists)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher: %w", err)
	}

	log.Info(ctx, "Watcher stopped")
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
