package transcript

import "errors"

var (
	ErrNoVideoID    = errors.New("no v= parameter in URL")
	ErrEmptyVideoID = errors.New("empty video id")
	ErrNoCaptions   = errors.New("no captions available")
)

// FetchErrorPrefix starts every FetchError message.
const FetchErrorPrefix = "Error fetching transcript: "

// FetchError reports any failure to produce a transcript: a malformed URL, an
// unknown video or a transcript service error. A FetchError aborts the digest.
type FetchError struct {
	URL     string
	VideoID string
	Err     error
}

func (e *FetchError) Error() string {
	return FetchErrorPrefix + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
