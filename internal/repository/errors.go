package repository

import "errors"

var (
	// ErrCacheMiss is returned when a key is absent or its entry expired.
	ErrCacheMiss = errors.New("cache miss")

	// ErrFetchTimeout is returned when a fetch exceeds its time budget.
	ErrFetchTimeout = errors.New("fetch timed out")

	// ErrFetchFailed is returned for transport-level fetch failures.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrUnexpectedStatus is returned when the terminal status is not accepted.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrTooManyRedirects is returned when the redirect budget is exhausted.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrCompletionFailed is returned when the completion service call fails.
	ErrCompletionFailed = errors.New("completion request failed")

	// ErrEmptyCompletion is returned when the completion service answers with no text.
	ErrEmptyCompletion = errors.New("completion returned no content")
)
