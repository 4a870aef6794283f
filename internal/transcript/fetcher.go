package transcript

import (
	"context"
	"strings"
)

// Fetch extracts the video id from videoURL, asks the transcript service for
// its entries and joins their text with single spaces. Every failure comes
// back as a *FetchError.
func (f *implFetcher) Fetch(ctx context.Context, videoURL string) (string, error) {
	videoID, err := ExtractVideoID(videoURL)
	if err != nil {
		return "", &FetchError{URL: videoURL, Err: err}
	}

	f.logger.Debug(ctx, "Fetching transcript for video %s", videoID)

	entries, err := f.client.Entries(ctx, videoID)
	if err != nil {
		return "", &FetchError{URL: videoURL, VideoID: videoID, Err: err}
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}

	f.logger.Debug(ctx, "Transcript for %s has %d entries", videoID, len(entries))
	return strings.Join(texts, " "), nil
}
