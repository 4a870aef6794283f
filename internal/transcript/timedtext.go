package transcript

import (
	"encoding/xml"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

type timedTextDoc struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Text     string  `xml:",chardata"`
}

func parseTimedText(body []byte) ([]Entry, error) {
	var doc timedTextDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		entries = append(entries, Entry{
			Text:     cleanCaption(line.Text),
			Start:    line.Start,
			Duration: line.Duration,
		})
	}
	return entries, nil
}

// cleanCaption strips inline markup (<font>, <i>) and the second layer of
// HTML escaping YouTube applies inside caption XML.
func cleanCaption(s string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
