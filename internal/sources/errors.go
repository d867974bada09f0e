package sources

import "fmt"

// UpstreamError marks a provider call that failed outright or returned a
// non-success status. Parse-level degradation is never an UpstreamError;
// it silently yields empty fields instead.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstreamErr(source string, err error) error {
	return &UpstreamError{Source: source, Err: err}
}
