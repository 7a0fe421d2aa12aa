package upstream

import "fmt"

// FetchError describes a failed attempt to retrieve request data from
// the upstream service. A non-2xx response sets StatusCode; a transport
// or timeout failure wraps the cause in Err.
type FetchError struct {
	RequestID  string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching request data for %s: %v", e.RequestID, e.Err)
	}
	return fmt.Sprintf("fetching request data for %s: unexpected status %d", e.RequestID, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ReportError describes a failed attempt to deliver a calculation
// outcome to the upstream service. Delivery is best-effort and never
// retried, so callers log this error and drop it.
type ReportError struct {
	RequestID  string
	StatusCode int
	Err        error
}

func (e *ReportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reporting result for %s: %v", e.RequestID, e.Err)
	}
	return fmt.Sprintf("reporting result for %s: unexpected status %d", e.RequestID, e.StatusCode)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}
