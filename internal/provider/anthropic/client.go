// Package anthropic implements the Anthropic Messages API upstream.
package anthropic

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/http/httpguts"

	"github.com/mandalnilabja/msgrelay/internal/provider"
	"github.com/mandalnilabja/msgrelay/internal/types"
)

const (
	// DefaultURL is the Messages API endpoint.
	DefaultURL = "https://api.anthropic.com/v1/messages"

	// DefaultVersion is the protocol version sent in the anthropic-version header.
	DefaultVersion = "2023-06-01"

	// HeaderAPIKey carries the caller's credential.
	HeaderAPIKey = "X-API-Key"

	// HeaderVersion carries the protocol version.
	HeaderVersion = "anthropic-version"
)

// Options configures a Provider. Zero values fall back to the defaults.
type Options struct {
	URL     string
	Version string

	// Timeout bounds the whole upstream call. Zero means no timeout.
	Timeout time.Duration

	// HTTPClient overrides the client built from Timeout (used in tests).
	HTTPClient *http.Client
}

// Provider forwards requests to the Anthropic Messages API.
// The API key is supplied per request by the caller, never stored here.
type Provider struct {
	url     string
	version string
	client  *http.Client
}

// New creates a Provider from opts.
func New(opts Options) *Provider {
	p := &Provider{
		url:     opts.URL,
		version: opts.Version,
		client:  opts.HTTPClient,
	}
	if p.url == "" {
		p.url = DefaultURL
	}
	if p.version == "" {
		p.version = DefaultVersion
	}
	if p.client == nil {
		p.client = &http.Client{Timeout: opts.Timeout}
	}
	return p
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "anthropic"
}

// BaseURL returns the Messages API endpoint
func (p *Provider) BaseURL() string {
	return p.url
}

// PrepareRequest sets the content type, credential and version headers.
func (p *Provider) PrepareRequest(ctx context.Context, req *http.Request, apiKey string) error {
	if !httpguts.ValidHeaderFieldValue(apiKey) {
		return provider.ErrInvalidCredential
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderAPIKey, apiKey)
	req.Header.Set(HeaderVersion, p.version)
	return nil
}

// Forward posts body to the Messages API and buffers the full response.
func (p *Provider) Forward(ctx context.Context, apiKey string, body []byte) (*types.UpstreamResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}

	if err := p.PrepareRequest(ctx, req, apiKey); err != nil {
		return nil, fmt.Errorf("prepare upstream request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrUpstreamRead, err)
	}

	return &types.UpstreamResponse{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}
