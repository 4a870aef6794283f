package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/transcript-digest/internal/config"
)

// clearEnv keeps the caller's environment from overriding the test config.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvProvider, config.EnvEndpointURL, config.EnvModel,
		config.EnvGeminiAPIKeys, config.EnvOpenAIAPIKey, config.EnvOpenAIBaseURL,
	} {
		t.Setenv(key, "")
	}
}

func newYouTubeServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "vid123" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `<html><script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"%s/api/timedtext?v=vid123&lang=en","languageCode":"en"}]}}};</script></html>`, srv.URL)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="utf-8" ?><transcript><text start="0" dur="1">hello world</text><text start="1" dur="1">from the video</text></transcript>`)
	})
	return srv
}

func newOllamaServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"A short summary.","done":true}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	clearEnv(t)
	youtube := newYouTubeServer(t)
	ollama := newOllamaServer(t)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	configYAML := fmt.Sprintf("transcript:\n  base_url: %q\n", youtube.URL)
	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}
	mdPath := filepath.Join(dir, "summary.md")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout []string
		wantStderr []string
		wantOutput []string // stdout and stderr combined
	}{
		{
			name:       "missing argument",
			args:       nil,
			wantCode:   1,
			wantStderr: []string{"Error: accepts 1 arg(s), received 0"},
			wantOutput: []string{"Usage:"},
		},
		{
			name:       "too many arguments",
			args:       []string{"a", "b"},
			wantCode:   1,
			wantStderr: []string{"Error: accepts 1 arg(s), received 2"},
		},
		{
			name:       "url without video id",
			args:       []string{"-q", "https://www.youtube.com/watch?x=1"},
			wantCode:   1,
			wantStdout: []string{"Fetching transcript...\n", "Error fetching transcript: no v= parameter in URL\n"},
		},
		{
			name: "digest",
			args: []string{
				"-q", "--config", configPath,
				"--endpoint", ollama.URL + "/api/generate",
				"--output", mdPath,
				"https://www.youtube.com/watch?v=vid123&t=42",
			},
			wantCode: 0,
			wantStdout: []string{
				"Transcript fetched successfully:\nhello world from the video...\n\n",
				"Processing chunk 1/1...\n",
				"Summary for chunk 1: A short summary.\n",
				"Final Summary:\nA short summary.\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)

			if code != tt.wantCode {
				t.Errorf("run() = %d, want %d\nstdout:\n%s\nstderr:\n%s", code, tt.wantCode, stdout.String(), stderr.String())
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout missing %q:\n%s", want, stdout.String())
				}
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr missing %q:\n%s", want, stderr.String())
				}
			}
			combined := stdout.String() + stderr.String()
			for _, want := range tt.wantOutput {
				if !strings.Contains(combined, want) {
					t.Errorf("output missing %q:\n%s", want, combined)
				}
			}
		})
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("summary file not written: %v", err)
	}
	if !strings.Contains(string(md), "A short summary.") || !strings.Contains(string(md), "# vid123") {
		t.Errorf("summary file content:\n%s", md)
	}
}

func TestRunFetchErrorNotOnStderr(t *testing.T) {
	clearEnv(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-q", "https://www.youtube.com/watch?v="}, &stdout, &stderr); code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if !strings.HasPrefix(strings.TrimPrefix(stdout.String(), "Fetching transcript...\n"), "Error") {
		t.Errorf("stdout = %q, want the fetch error after the progress line", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", stderr.String())
	}
}
