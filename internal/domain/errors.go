package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every failing step returns a *StepError whose Kind is one of these.
var (
	ErrFetchFailure      = errors.New("fetch failure")
	ErrNotFoundPage      = errors.New("page not found")
	ErrExtractionFailure = errors.New("extraction failure")
	ErrCacheReadFailure  = errors.New("cache read failure")
	ErrConfiguration     = errors.New("configuration error")
)

type StepError struct {
	Kind error
	Op   string
	URL  string
	Err  error
}

func Fail(kind error, op, url string, err error) *StepError {
	return &StepError{Kind: kind, Op: op, URL: url, Err: err}
}

func (e *StepError) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.URL != "" {
		msg += fmt.Sprintf(" url=%q", e.URL)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *StepError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the enumerated kind of err, or nil if err carries none.
func KindOf(err error) error {
	for _, k := range []error{ErrConfiguration, ErrCacheReadFailure, ErrNotFoundPage, ErrExtractionFailure, ErrFetchFailure} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
