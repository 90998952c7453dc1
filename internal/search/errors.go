package search

import "errors"

var (
	ErrUnsafePattern  = errors.New("star depth limited to 1")
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrNoResults      = errors.New("no results found")
)

// SearchError is an expected, user-facing failure. Message is safe to show in a channel.
type SearchError struct {
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	return e.Message
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

func noResultsError() error {
	return &SearchError{Message: "No results found", Err: ErrNoResults}
}

func patternError(err error) error {
	if errors.Is(err, ErrUnsafePattern) {
		return &SearchError{Message: "Unsafe/too complex regex: " + ErrUnsafePattern.Error(), Err: err}
	}
	return &SearchError{Message: "Invalid regex: " + err.Error(), Err: err}
}
