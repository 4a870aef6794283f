// Package chunker splits a transcript into overlapping word chunks sized for a
// model's context window.
//
// Size is a character budget: every word costs its rune count plus one
// separator. It approximates a token budget but is not one. Swap Measure for
// a tokenizer count to budget in tokens instead.
package chunker

import (
	"strings"
	"unicode/utf8"
)

// Chunk is one flushed buffer of words.
type Chunk struct {
	Index int
	Words []string
	// Size is the running size at the moment the chunk was flushed. It
	// includes the word that triggered the flush, which is not part of Words.
	Size int
}

// Text renders the chunk as a single space-joined string.
func (c Chunk) Text() string {
	return strings.Join(c.Words, " ")
}

// Splitter holds the size budget and overlap for a split.
type Splitter struct {
	MaxSize int
	Overlap int
	// Measure returns the cost of a word without its separator. Defaults to
	// utf8.RuneCountInString.
	Measure func(word string) int
}

// Split splits transcript with the given character budget and word overlap.
func Split(transcript string, maxSize, overlap int) []string {
	return Splitter{MaxSize: maxSize, Overlap: overlap}.Split(transcript)
}

// Split returns the chunk texts in order.
func (s Splitter) Split(transcript string) []string {
	chunks := s.Chunks(transcript)
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text()
	}
	return out
}

// Chunks walks the transcript word by word. The cost of each word is added
// before the budget check; when the budget is exceeded the buffer is flushed,
// trimmed to its last Overlap words and re-measured, and only then is the
// word appended. The boundary word therefore always opens the next chunk.
// The re-measured size covers only the retained words, not the appended one.
// A first word larger than MaxSize never produces a leading empty chunk.
func (s Splitter) Chunks(transcript string) []Chunk {
	measure := s.Measure
	if measure == nil {
		measure = utf8.RuneCountInString
	}
	overlap := max(s.Overlap, 0)

	var (
		chunks  []Chunk
		current []string
		size    int
	)

	flush := func(flushSize int) {
		words := make([]string, len(current))
		copy(words, current)
		chunks = append(chunks, Chunk{Index: len(chunks), Words: words, Size: flushSize})
	}

	for _, word := range strings.Fields(transcript) {
		size += measure(word) + 1
		if size > s.MaxSize {
			// An oversized first word finds the buffer empty; nothing to emit.
			if len(current) > 0 {
				flush(size)
			}
			current = tail(current, overlap)
			size = 0
			for _, w := range current {
				size += measure(w) + 1
			}
		}
		current = append(current, word)
	}

	if len(current) > 0 {
		flush(size)
	}
	return chunks
}

// tail returns a fresh slice holding the last n words of words, or all of them
// when there are fewer than n.
func tail(words []string, n int) []string {
	if n > len(words) {
		n = len(words)
	}
	out := make([]string, n, n+1)
	copy(out, words[len(words)-n:])
	return out
}
