package processor

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 12
	fontColor = "000000"
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reEmphasis = regexp.MustCompile(`^_(.+)_$`)
)

// markdownToDocx renders a summary document to a docx file. Only the
// Markdown that RenderMarkdown emits is understood: headings, bullets,
// bold spans and a single-line italic.
func markdownToDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		switch {
		case reHeading.MatchString(trimmed):
			m := reHeading.FindStringSubmatch(trimmed)
			text := m[2]
			if len(m[1]) == 1 && title != "" {
				text = title
			}
			addRun(doc.AddParagraph(""), text, headingSize(len(m[1]))).Bold(true)
		case reBullet.MatchString(trimmed):
			addRichText(doc.AddParagraph(""), "• "+reBullet.FindStringSubmatch(trimmed)[1])
		case reEmphasis.MatchString(trimmed):
			addRun(doc.AddParagraph(""), reEmphasis.FindStringSubmatch(trimmed)[1], fontSize).Italic(true)
		default:
			addRichText(doc.AddParagraph(""), trimmed)
		}
	}

	return doc.SaveTo(outputPath)
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	default:
		return fontSize
	}
}

func addRun(p *docx.Paragraph, text string, size uint64) *docx.Run {
	return p.AddText(stripInline(text)).Font(fontName).Size(size).Color(fontColor)
}

// addRichText splits text on **bold** spans and emits alternating runs.
func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			addRun(p, part, fontSize)
		}
		if i < len(matches) {
			addRun(p, matches[i][1], fontSize).Bold(true)
		}
	}
}

func stripInline(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}
