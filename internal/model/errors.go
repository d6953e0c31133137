package model

import "fmt"

// InvalidRequestError terminates a request before any upstream call is made:
// empty search text, or a missing operational credential.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return e.Reason
}

// UpstreamError carries a non-success response from the video platform API.
// The status code and body are surfaced verbatim as diagnostic detail; a
// single upstream failure aborts the whole pipeline.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream API returned %d: %s", e.StatusCode, e.Body)
}
