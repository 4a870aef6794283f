package processor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/transcript-digest/internal/pipeline"
	"github.com/nguyentantai21042004/transcript-digest/internal/transcript"
)

// Process digests each URL in the list file in order and writes one summary
// per video to the output folder. A video whose transcript cannot be fetched
// is skipped; the rest of the list still runs.
func (p *implProcessor) Process(ctx context.Context, listPath string) error {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting URL list: %s", listPath)
	p.logger.Info(ctx, "========================================")

	urls, err := readURLList(listPath)
	if err != nil {
		return fmt.Errorf("read url list: %w", err)
	}
	if len(urls) == 0 {
		p.logger.Warn(ctx, "No URLs found in %s", listPath)
	}

	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	successCount := 0
	failCount := 0

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.logger.Info(ctx, "[%d/%d] Digesting: %s", i+1, len(urls), url)

		report, err := p.pipeline.Run(ctx, url)
		if err != nil {
			var fe *transcript.FetchError
			if errors.As(err, &fe) {
				p.logger.Error(ctx, "Skipping %s: %v", url, err)
				failCount++
				continue
			}
			return fmt.Errorf("digest %s: %w", url, err)
		}

		mdPath, err := p.writeReport(report)
		if err != nil {
			p.logger.Error(ctx, "Failed to write summary for %s: %v", url, err)
			failCount++
			continue
		}

		p.logger.Info(ctx, "[DONE] %s -> %s", url, mdPath)
		successCount++
	}

	if err := p.moveToArchived(ctx, listPath); err != nil {
		p.logger.Warn(ctx, "Failed to move list to archived folder: %v", err)
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "URL list completed: %d success, %d failed", successCount, failCount)
	p.logger.Info(ctx, "Processing time: %s", duration)
	p.logger.Info(ctx, "========================================")

	return nil
}

// writeReport writes {videoID}.md and, when enabled, {videoID}.docx.
func (p *implProcessor) writeReport(report *pipeline.Report) (string, error) {
	name := report.VideoID
	if name == "" {
		name = report.RunID
	}

	mdPath := filepath.Join(p.cfg.Paths.Output, name+".md")
	if err := SaveReport(report, mdPath, p.cfg.Output.Docx); err != nil {
		return "", err
	}
	return mdPath, nil
}

// SaveReport writes the Markdown summary to mdPath. With withDocx set the
// same document is also rendered next to it with a .docx extension.
func SaveReport(report *pipeline.Report, mdPath string, withDocx bool) error {
	md := RenderMarkdown(report, time.Now())
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}

	if withDocx {
		docxPath := strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + ".docx"
		title := report.VideoID
		if title == "" {
			title = report.URL
		}
		if err := markdownToDocx(title, md, docxPath); err != nil {
			return fmt.Errorf("write docx: %w", err)
		}
	}
	return nil
}

// readURLList returns the non-empty, non-comment lines of path.
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
