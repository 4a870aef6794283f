package processor

import (
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/transcript-digest/internal/pipeline"
)

// RenderMarkdown formats a report as a Markdown summary document.
func RenderMarkdown(report *pipeline.Report, generatedAt time.Time) string {
	var sb strings.Builder

	title := report.VideoID
	if title == "" {
		title = report.URL
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "_%s_\n\n", generatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "Source: %s\n\n", report.URL)

	fmt.Fprintf(&sb, "## Summary\n\n%s\n", strings.TrimSpace(report.FinalSummary))

	if failed := report.Failed(); len(failed) > 0 {
		fmt.Fprintf(&sb, "\n## Failed chunks\n\n")
		for _, r := range failed {
			fmt.Fprintf(&sb, "- **Chunk %d**: %v\n", r.Index+1, r.Err)
		}
	}

	fmt.Fprintf(&sb, "\n---\n\n%d chunks, %d transcript characters, %s\n",
		len(report.Chunks), len([]rune(report.Transcript)), report.Duration.Round(time.Millisecond))
	return sb.String()
}
