// internal/api/errors.go
package api

import "fmt"

// ErrorKind classifies a fetch failure.
type ErrorKind string

const (
	// KindNetwork means no response at all (dial failure, timeout, reset).
	KindNetwork ErrorKind = "network"

	// KindAuth means the backend answered 401 or 403.
	// The budget treats it like any other failure; hosts may redirect to login.
	KindAuth ErrorKind = "auth"

	// KindHTTP means any other non-2xx status.
	KindHTTP ErrorKind = "http"

	// KindMalformed means the body was not the expected JSON
	// (typically an HTML error page from a proxy or the framework).
	KindMalformed ErrorKind = "malformed"
)

// FetchError is the single failure type the fetcher returns.
// Exactly one fetch attempt produces either a payload or one of these.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int // 0 unless Kind is auth or http
	URL        string
	RequestID  string // X-Request-ID sent with the request, for log correlation
	Err        error  // underlying cause, may be nil
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %s (HTTP %d)", e.URL, e.Kind, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

func (e *FetchError) Unwrap() error { return e.Err }
