package transcript

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/transcript-digest/internal/logger"
)

type fakeClient struct {
	entries []Entry
	err     error
	gotID   string
}

func (f *fakeClient) Entries(ctx context.Context, videoID string) ([]Entry, error) {
	f.gotID = videoID
	return f.entries, f.err
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr error
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", nil},
		{"extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PL1", "dQw4w9WgXcQ", nil},
		{"v not first", "https://www.youtube.com/watch?feature=share&v=abc123", "abc123", nil},
		{"no v param", "https://youtu.be/dQw4w9WgXcQ", "", ErrNoVideoID},
		{"empty id", "https://www.youtube.com/watch?v=&t=1", "", ErrEmptyVideoID},
		{"not a url", "hello world", "", ErrNoVideoID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.url)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ExtractVideoID() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchJoinsEntries(t *testing.T) {
	client := &fakeClient{entries: []Entry{
		{Text: "hello there", Start: 0, Duration: 1.5},
		{Text: "general", Start: 1.5, Duration: 1},
		{Text: "kenobi", Start: 2.5, Duration: 1},
	}}
	f := New(client, logger.NewWithWriter("debug", io.Discard))

	got, err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc&t=3")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got != "hello there general kenobi" {
		t.Errorf("Fetch() = %q", got)
	}
	if client.gotID != "abc" {
		t.Errorf("client called with %q, want abc", client.gotID)
	}
}

func TestFetchErrors(t *testing.T) {
	serviceErr := errors.New("service unavailable")

	tests := []struct {
		name    string
		url     string
		client  *fakeClient
		wantErr error
	}{
		{"url without v=", "https://example.com/video/1", &fakeClient{}, ErrNoVideoID},
		{"service failure", "https://www.youtube.com/watch?v=abc", &fakeClient{err: serviceErr}, serviceErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.client, logger.NewWithWriter("info", io.Discard))
			_, err := f.Fetch(context.Background(), tt.url)

			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("Fetch() error = %T %v, want *FetchError", err, err)
			}
			if !strings.HasPrefix(err.Error(), "Error") {
				t.Errorf("error message %q does not start with Error", err.Error())
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Fetch() error = %v, want wrapped %v", err, tt.wantErr)
			}
			if fe.URL != tt.url {
				t.Errorf("FetchError.URL = %q, want %q", fe.URL, tt.url)
			}
		})
	}
}
