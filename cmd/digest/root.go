package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/transcript-digest/internal/config"
	"github.com/nguyentantai21042004/transcript-digest/internal/logger"
	"github.com/nguyentantai21042004/transcript-digest/internal/pipeline"
	"github.com/nguyentantai21042004/transcript-digest/internal/processor"
	"github.com/nguyentantai21042004/transcript-digest/internal/summarizer"
	"github.com/nguyentantai21042004/transcript-digest/internal/transcript"
	"github.com/spf13/cobra"
)

// options holds the flag values of one invocation.
type options struct {
	configPath   string
	verbose      bool
	quiet        bool
	model        string
	endpoint     string
	maxChunkSize int
	overlap      int
	concurrency  int
	outputPath   string
	writeDocx    bool
}

// newRootCmd builds `digest <video-url>` and its subcommands. The digest
// report is written to stdout.
func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &options{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "digest <video-url>",
		Short: "Summarize a YouTube video from its transcript",
		Long: `Digest fetches the transcript of a YouTube video, splits it into
overlapping chunks, summarizes every chunk with a language model and prints
the combined summary.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd, opts, args[0], stdout)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error logging")
	pf.StringVar(&opts.model, "model", "", "model name (default depends on provider)")
	pf.StringVar(&opts.endpoint, "endpoint", "", "generation endpoint URL")
	pf.IntVar(&opts.maxChunkSize, "max-chunk-size", defaults.Chunking.MaxChunkSize, "chunk budget in characters")
	pf.IntVar(&opts.overlap, "overlap", defaults.Chunking.OverlapWords, "words carried into the next chunk")
	pf.IntVarP(&opts.concurrency, "concurrency", "j", defaults.Performance.MaxConcurrent, "chunks summarized at once")

	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "also write the summary as Markdown to this file")
	cmd.Flags().BoolVar(&opts.writeDocx, "docx", false, "with --output, also write a .docx next to the Markdown file")

	cmd.AddCommand(newWatchCmd(opts))
	return cmd
}

// loadConfig loads .env, the YAML file and the environment, then applies
// the flags the user set explicitly.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Summarizer.Model = opts.model
	}
	if flags.Changed("endpoint") {
		cfg.Summarizer.EndpointURL = opts.endpoint
		cfg.Summarizer.BaseURL = opts.endpoint
	}
	if flags.Changed("max-chunk-size") {
		cfg.Chunking.MaxChunkSize = opts.maxChunkSize
	}
	if flags.Changed("overlap") {
		cfg.Chunking.OverlapWords = opts.overlap
	}
	if flags.Changed("concurrency") {
		cfg.Performance.MaxConcurrent = opts.concurrency
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	if opts.quiet {
		cfg.Logging.Level = "error"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// newPipeline wires the fetcher and summarizer for cfg. Progress goes to out.
func newPipeline(cfg *config.Config, log logger.Logger, out io.Writer) (pipeline.Pipeline, error) {
	sum, err := summarizer.New(cfg.Summarizer, log)
	if err != nil {
		return nil, fmt.Errorf("create summarizer: %w", err)
	}
	fetcher := transcript.New(transcript.NewYouTubeClient(cfg.Transcript), log)
	return pipeline.New(fetcher, sum, pipeline.OptionsFromConfig(cfg), out, log), nil
}

func runDigest(cmd *cobra.Command, opts *options, videoURL string, stdout io.Writer) error {
	// Arguments are valid from here on; later failures are not usage errors.
	cmd.SilenceUsage = true

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New(cfg.Logging.Level)
	log.Debug(ctx, "Provider: %s, model: %s, max chunk size: %d, overlap: %d",
		cfg.Summarizer.Provider, cfg.Summarizer.Model, cfg.Chunking.MaxChunkSize, cfg.Chunking.OverlapWords)

	p, err := newPipeline(cfg, log, stdout)
	if err != nil {
		return err
	}

	report, err := p.Run(ctx, videoURL)
	if err != nil {
		return err
	}

	if opts.outputPath != "" {
		if err := processor.SaveReport(report, opts.outputPath, opts.writeDocx); err != nil {
			return err
		}
		log.Info(ctx, "Summary written to %s", opts.outputPath)
	}
	return nil
}
