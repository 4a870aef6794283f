package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/transcript-digest/internal/config"
	"github.com/nguyentantai21042004/transcript-digest/internal/logger"
	"github.com/nguyentantai21042004/transcript-digest/internal/summarizer"
	"github.com/nguyentantai21042004/transcript-digest/internal/transcript"
)

type fakeFetcher struct {
	text string
	err  error
}

func (f fakeFetcher) Fetch(ctx context.Context, videoURL string) (string, error) {
	return f.text, f.err
}

// upperSummarizer "summarizes" a chunk by upper-casing its first word.
type upperSummarizer struct {
	mu     sync.Mutex
	calls  []string
	failOn map[string]error
	delay  func(chunk string) time.Duration
}

func (s *upperSummarizer) Summarize(ctx context.Context, chunk string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, chunk)
	s.mu.Unlock()

	if s.delay != nil {
		time.Sleep(s.delay(chunk))
	}
	first := strings.Fields(chunk)[0]
	if err, ok := s.failOn[first]; ok {
		return "", err
	}
	return strings.ToUpper(first), nil
}

func quietLogger() logger.Logger {
	return logger.NewWithWriter("error", io.Discard)
}

func TestRunSequential(t *testing.T) {
	var out bytes.Buffer
	s := &upperSummarizer{}
	p := New(fakeFetcher{text: "a bb ccc dddd"}, s, Options{MaxChunkSize: 5, OverlapWords: 1}, &out, quietLogger())

	report, err := p.Run(context.Background(), "https://www.youtube.com/watch?v=xyz&t=1")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantChunks := []string{"a bb", "bb ccc", "ccc dddd"}
	if fmt.Sprint(report.Chunks) != fmt.Sprint(wantChunks) {
		t.Errorf("Chunks = %q, want %q", report.Chunks, wantChunks)
	}
	if fmt.Sprint(s.calls) != fmt.Sprint(wantChunks) {
		t.Errorf("summarizer calls = %q, want %q", s.calls, wantChunks)
	}
	if report.FinalSummary != "A BB CCC" {
		t.Errorf("FinalSummary = %q, want %q", report.FinalSummary, "A BB CCC")
	}
	if report.VideoID != "xyz" {
		t.Errorf("VideoID = %q, want xyz", report.VideoID)
	}
	if report.RunID == "" {
		t.Error("RunID is empty")
	}

	text := out.String()
	for _, want := range []string{
		"Fetching transcript...\n",
		"Transcript fetched successfully:\na bb ccc dddd...\n\n",
		"Generating summary...\n",
		"Processing chunk 1/3...\nChunk 1: a bb...\n\n",
		"Summary for chunk 2: BB\n\n",
		"Final Summary:\nA BB CCC\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q\n---\n%s", want, text)
		}
	}
	if strings.Contains(text, "could not be summarized") {
		t.Errorf("unexpected failure section:\n%s", text)
	}
}

func TestRunFetchFailureAborts(t *testing.T) {
	fetchErr := &transcript.FetchError{URL: "bad", Err: transcript.ErrNoVideoID}
	s := &upperSummarizer{}
	p := New(fakeFetcher{err: fetchErr}, s, Options{MaxChunkSize: 10}, io.Discard, quietLogger())

	report, err := p.Run(context.Background(), "bad")
	if report != nil {
		t.Errorf("Run() report = %+v, want nil", report)
	}
	var fe *transcript.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Run() error = %v, want *FetchError", err)
	}
	if len(s.calls) != 0 {
		t.Errorf("summarizer called %d times after fetch failure", len(s.calls))
	}
}

func TestRunSummarizeFailureContinues(t *testing.T) {
	var out bytes.Buffer
	boom := &summarizer.SummarizeError{Provider: "Ollama", StatusCode: 500, Err: errors.New("HTTP 500")}
	s := &upperSummarizer{failOn: map[string]error{"bb": boom}}
	p := New(fakeFetcher{text: "a bb ccc dddd"}, s, Options{MaxChunkSize: 5, OverlapWords: 1}, &out, quietLogger())

	report, err := p.Run(context.Background(), "https://www.youtube.com/watch?v=xyz")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(s.calls) != 3 {
		t.Errorf("summarizer called %d times, want 3", len(s.calls))
	}
	if report.FinalSummary != "A CCC" {
		t.Errorf("FinalSummary = %q, want %q", report.FinalSummary, "A CCC")
	}

	failed := report.Failed()
	if len(failed) != 1 || failed[0].Index != 1 || !errors.Is(failed[0].Err, boom) {
		t.Fatalf("Failed() = %+v", failed)
	}

	text := out.String()
	if !strings.Contains(text, "Summary for chunk 2 failed: Error communicating with Ollama API: HTTP 500") {
		t.Errorf("missing failure line:\n%s", text)
	}
	if !strings.Contains(text, "1 of 3 chunks could not be summarized:\n  chunk 2: ") {
		t.Errorf("missing failure section:\n%s", text)
	}
}

func TestRunConcurrentKeepsChunkOrder(t *testing.T) {
	words := make([]string, 40)
	for i := range words {
		words[i] = fmt.Sprintf("w%02d", i)
	}

	var inFlight, peak int32
	s := &upperSummarizer{delay: func(chunk string) time.Duration {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		defer atomic.AddInt32(&inFlight, -1)
		// Earlier chunks finish last.
		var idx int
		fmt.Sscanf(chunk, "w%d", &idx)
		return time.Duration(40-idx) * time.Millisecond
	}}
	// "wNN " costs 4, so each chunk holds two or three words.
	p := New(fakeFetcher{text: strings.Join(words, " ")}, s,
		Options{MaxChunkSize: 8, OverlapWords: 0, MaxConcurrent: 4}, io.Discard, quietLogger())

	report, err := p.Run(context.Background(), "https://www.youtube.com/watch?v=xyz")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(report.Results) != len(report.Chunks) {
		t.Fatalf("got %d results for %d chunks", len(report.Results), len(report.Chunks))
	}
	for i, r := range report.Results {
		if r.Index != i || r.Chunk != report.Chunks[i] {
			t.Errorf("result %d = %+v, chunk %q", i, r, report.Chunks[i])
		}
	}

	var want []string
	for _, c := range report.Chunks {
		want = append(want, strings.ToUpper(strings.Fields(c)[0]))
	}
	if report.FinalSummary != strings.Join(want, " ") {
		t.Errorf("FinalSummary = %q, want %q", report.FinalSummary, strings.Join(want, " "))
	}
	if got := atomic.LoadInt32(&peak); got > 4 {
		t.Errorf("peak concurrency = %d, want <= 4", got)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &upperSummarizer{}
	p := New(fakeFetcher{text: "a bb ccc dddd"}, s,
		Options{MaxChunkSize: 5, OverlapWords: 1, RequestsPerMinute: 60}, io.Discard, quietLogger())

	report, err := p.Run(ctx, "https://www.youtube.com/watch?v=xyz")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if report == nil || len(report.Failed()) != 3 {
		t.Fatalf("expected every chunk to fail at the rate limiter, got %+v", report)
	}
	if len(s.calls) != 0 {
		t.Errorf("summarizer called %d times on a cancelled context", len(s.calls))
	}
}

func TestRunEmptyTranscript(t *testing.T) {
	var out bytes.Buffer
	s := &upperSummarizer{}
	p := New(fakeFetcher{text: ""}, s, Options{MaxChunkSize: 16000, OverlapWords: 50}, &out, quietLogger())

	report, err := p.Run(context.Background(), "https://www.youtube.com/watch?v=xyz")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(report.Chunks) != 0 || report.FinalSummary != "" {
		t.Errorf("report = %+v, want no chunks", report)
	}
	if len(s.calls) != 0 {
		t.Errorf("summarizer called for an empty transcript")
	}
}

func TestRunWithOllamaServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "overloaded", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"response":"ok"}`))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Summarizer.EndpointURL = srv.URL + "/api/generate"
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	s, err := summarizer.New(cfg.Summarizer, quietLogger())
	if err != nil {
		t.Fatal(err)
	}

	opts := OptionsFromConfig(cfg)
	opts.MaxChunkSize = 5
	opts.OverlapWords = 1
	p := New(fakeFetcher{text: "a bb ccc dddd"}, s, opts, io.Discard, quietLogger())

	report, err := p.Run(context.Background(), "https://www.youtube.com/watch?v=xyz")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("endpoint called %d times, want 3", calls)
	}
	if report.FinalSummary != "ok ok" {
		t.Errorf("FinalSummary = %q, want %q", report.FinalSummary, "ok ok")
	}
	var se *summarizer.SummarizeError
	if failed := report.Failed(); len(failed) != 1 || !errors.As(failed[0].Err, &se) || se.StatusCode != 500 {
		t.Errorf("Failed() = %+v", failed)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"héllo wörld", 4, "héll"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
