package smutbase

import "fmt"

// NetworkError reports a transport-level failure: connection errors, timeouts,
// or an unexpected HTTP status from the site.
type NetworkError struct {
	URL    string
	Status int // 0 when the request never completed
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("smutbase: HTTP %d from %s", e.Status, e.URL)
	}
	return fmt.Sprintf("smutbase: request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a response body that could not be decoded.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("smutbase: malformed response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NotFoundError reports a well-formed request for which the site has no
// matching resource.
type NotFoundError struct {
	Resource string // model ID, category name, or URL
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("smutbase: %s not found", e.Resource)
}

// InvalidIDError reports input that is not a model UUID (or a project URL
// containing one). Raised before any network call is made.
type InvalidIDError struct {
	Input string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("smutbase: invalid model ID %q", e.Input)
}
