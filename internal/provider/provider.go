// Package provider defines the upstream client used by the relay.
package provider

import (
	"context"
	"errors"
	"net/http"

	"github.com/mandalnilabja/msgrelay/internal/types"
)

// ErrUpstreamUnreachable is returned when the upstream call fails at the
// transport level (DNS, connection refused, timeout, cancelled context).
var ErrUpstreamUnreachable = errors.New("upstream unreachable")

// ErrInvalidCredential is returned when the API key cannot be sent as an
// HTTP header value (e.g. it contains CR or LF). No connection is attempted.
var ErrInvalidCredential = errors.New("api key is not a valid header value")

// ErrUpstreamRead is returned when the upstream answered but its body could
// not be read in full.
var ErrUpstreamRead = errors.New("failed to read upstream response")

// Provider sends one outbound request to an LLM API and buffers the response.
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// BaseURL returns the provider's API endpoint
	BaseURL() string

	// PrepareRequest adds provider-specific headers
	PrepareRequest(ctx context.Context, req *http.Request, apiKey string) error

	// Forward posts body upstream and returns the status code and raw body.
	// Non-2xx responses are returned as-is with a nil error.
	Forward(ctx context.Context, apiKey string, body []byte) (*types.UpstreamResponse, error)
}
