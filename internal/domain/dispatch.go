package domain

import (
	"context"
	"net/http"
)

// DispatchResult is the outcome of one send. Message is non-empty whenever
// OK is false.
type DispatchResult struct {
	OK         bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

// Success returns a successful result
func Success(statusCode int) DispatchResult {
	return DispatchResult{OK: true, StatusCode: statusCode}
}

// Failure returns an error result
func Failure(message string) DispatchResult {
	if message == "" {
		message = "Unknown error"
	}
	return DispatchResult{Message: message}
}

// HTTPDoer is the transport the adapters and the router send through
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// BackendAdapter builds the wire request for one back-end variant
type BackendAdapter interface {
	// Backend returns the key this adapter serves
	Backend() BackendKey

	// BuildRequest builds the request that hands link to the profile's back-end
	BuildRequest(ctx context.Context, profile *ServerProfile, link string) (*http.Request, error)
}

// Authenticator is implemented by adapters that must log in before sending
type Authenticator interface {
	Authenticate(ctx context.Context, client HTTPDoer, profile *ServerProfile) error
}

// SessionNegotiator is implemented by adapters whose back-end may reject the
// first request with a session challenge. Renegotiate inspects the response
// and reports whether the request should be rebuilt and sent once more.
type SessionNegotiator interface {
	Renegotiate(profile *ServerProfile, resp *http.Response) bool
}
