package transcript

import "strings"

// ExtractVideoID returns the text after the first "v=" in rawURL, up to the
// next "&".
func ExtractVideoID(rawURL string) (string, error) {
	idx := strings.Index(rawURL, "v=")
	if idx < 0 {
		return "", ErrNoVideoID
	}

	id := rawURL[idx+len("v="):]
	if amp := strings.IndexByte(id, '&'); amp >= 0 {
		id = id[:amp]
	}
	if id == "" {
		return "", ErrEmptyVideoID
	}
	return id, nil
}
