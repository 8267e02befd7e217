package anthropic

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/mandalnilabja/msgrelay/internal/provider"
)

func TestForward_SendsHeadersAndBody(t *testing.T) {
	var (
		gotMethod  string
		gotHeaders http.Header
		gotBody    []byte
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeaders = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"msg_1"}`))
	}))
	defer upstream.Close()

	p := New(Options{URL: upstream.URL})
	body := []byte(`{"model":"m","messages":[],"max_tokens":1024}`)

	resp, err := p.Forward(context.Background(), "sk-test", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if got := gotHeaders.Get("x-api-key"); got != "sk-test" {
		t.Errorf("x-api-key = %q, want %q", got, "sk-test")
	}
	if got := gotHeaders.Get("anthropic-version"); got != DefaultVersion {
		t.Errorf("anthropic-version = %q, want %q", got, DefaultVersion)
	}
	if got := gotHeaders.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %s, want %s", gotBody, body)
	}
	if resp.StatusCode != http.StatusOK || string(resp.Body) != `{"id":"msg_1"}` {
		t.Errorf("unexpected response: %d %s", resp.StatusCode, resp.Body)
	}
}

func TestForward_RelaysErrorStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusTooManyRequests, 529} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"type":"error"}`))
			}))
			defer upstream.Close()

			resp, err := New(Options{URL: upstream.URL}).Forward(context.Background(), "k", []byte(`{}`))
			if err != nil {
				t.Fatalf("non-2xx must not be an error, got %v", err)
			}
			if resp.StatusCode != status {
				t.Errorf("status = %d, want %d", resp.StatusCode, status)
			}
		})
	}
}

func TestForward_Unreachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := upstream.URL
	upstream.Close()

	_, err := New(Options{URL: url}).Forward(context.Background(), "k", []byte(`{}`))
	if !errors.Is(err, provider.ErrUpstreamUnreachable) {
		t.Errorf("expected ErrUpstreamUnreachable, got %v", err)
	}
}

func TestForward_Timeout(t *testing.T) {
	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer upstream.Close()
	defer close(release)

	p := New(Options{URL: upstream.URL, Timeout: 50 * time.Millisecond})
	_, err := p.Forward(context.Background(), "k", []byte(`{}`))
	if !errors.Is(err, provider.ErrUpstreamUnreachable) {
		t.Errorf("expected ErrUpstreamUnreachable on timeout, got %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	p := New(Options{})
	if p.BaseURL() != DefaultURL {
		t.Errorf("BaseURL() = %q, want %q", p.BaseURL(), DefaultURL)
	}
	if p.Name() != "anthropic" {
		t.Errorf("Name() = %q, want anthropic", p.Name())
	}
}

func TestForward_InvalidCredential(t *testing.T) {
	called := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer upstream.Close()

	for _, key := range []string{"sk-ant\r\nX-Injected: 1", "line\nbreak", "nul\x00byte"} {
		t.Run(strconv.Quote(key), func(t *testing.T) {
			_, err := New(Options{URL: upstream.URL}).Forward(context.Background(), key, []byte(`{}`))
			if !errors.Is(err, provider.ErrInvalidCredential) {
				t.Errorf("expected ErrInvalidCredential, got %v", err)
			}
			if errors.Is(err, provider.ErrUpstreamUnreachable) {
				t.Error("invalid credential must not be reported as unreachable")
			}
		})
	}

	if called {
		t.Error("upstream must not be contacted with an invalid credential")
	}
}
