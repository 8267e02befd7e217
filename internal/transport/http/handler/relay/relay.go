// Package relay implements the browser-facing Messages relay endpoint.
package relay

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mandalnilabja/msgrelay/internal/provider"
	"github.com/mandalnilabja/msgrelay/internal/transport/http/middleware"
	"github.com/mandalnilabja/msgrelay/internal/types"
)

// Options tunes request handling.
type Options struct {
	// DefaultMaxTokens is sent upstream when the caller omits max_tokens.
	DefaultMaxTokens int

	// MaxBodyBytes caps the inbound body; zero means unlimited.
	MaxBodyBytes int64
}

// Handlers holds the dependencies for the relay endpoint.
type Handlers struct {
	Provider provider.Provider
	Logger   *slog.Logger
	Options  Options
}

// New creates relay handlers. A nil logger discards output.
func New(prov provider.Provider, logger *slog.Logger, opts Options) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.DefaultMaxTokens <= 0 {
		opts.DefaultMaxTokens = 1024
	}
	return &Handlers{
		Provider: prov,
		Logger:   logger,
		Options:  opts,
	}
}

// Messages validates the caller's body, forwards it upstream and writes the
// upstream status and body back unchanged.
func (h *Handlers) Messages(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		types.WriteError(w, http.StatusMethodNotAllowed, types.MsgMethodNotAllowed)
		return
	}

	requestID := middleware.GetRequestID(r.Context())

	body := r.Body
	if h.Options.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.Options.MaxBodyBytes)
	}
	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			types.WriteError(w, http.StatusRequestEntityTooLarge, types.MsgBodyTooLarge)
			return
		}
		types.WriteError(w, http.StatusBadRequest, types.MsgInvalidJSON)
		return
	}
	r.Body.Close()

	req, err := types.ParseInbound(bodyBytes)
	if err != nil {
		types.WriteError(w, http.StatusBadRequest, types.MsgInvalidJSON)
		return
	}
	if !req.HasRequired() {
		types.WriteError(w, http.StatusBadRequest, types.MsgMissingFields)
		return
	}

	payload, err := req.Outbound(h.Options.DefaultMaxTokens).Encode()
	if err != nil {
		h.Logger.Error("encode outbound request", "error", err, "request_id", requestID)
		types.WriteError(w, http.StatusInternalServerError, types.MsgInternal)
		return
	}

	start := time.Now()
	resp, err := h.Provider.Forward(r.Context(), req.Credential(), payload)
	if err != nil {
		h.Logger.Warn("upstream request failed",
			"provider", h.Provider.Name(),
			"error", err,
			"request_id", requestID,
		)
		switch {
		case errors.Is(err, provider.ErrInvalidCredential):
			types.WriteError(w, http.StatusBadRequest, types.MsgInvalidCredential)
		case errors.Is(err, provider.ErrUpstreamUnreachable):
			types.WriteError(w, http.StatusBadGateway, types.MsgUpstreamUnreachable)
		case errors.Is(err, provider.ErrUpstreamRead):
			types.WriteError(w, http.StatusBadGateway, types.MsgUpstreamRead)
		default:
			types.WriteError(w, http.StatusInternalServerError, types.MsgInternal)
		}
		return
	}

	h.Logger.Debug("upstream response",
		"provider", h.Provider.Name(),
		"status", resp.StatusCode,
		"bytes", len(resp.Body),
		"upstream_ms", time.Since(start).Milliseconds(),
		"request_id", requestID,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}
