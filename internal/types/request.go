package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ErrNotObject is returned when the inbound body is valid JSON but not an object.
var ErrNotObject = errors.New("request body is not a JSON object")

// InboundRequest is the body a browser client posts to the relay.
// Fields are kept as raw JSON so they are forwarded without reinterpretation.
// A nil field means the key was absent or explicitly null.
type InboundRequest struct {
	APIKey    json.RawMessage
	Model     json.RawMessage
	Messages  json.RawMessage
	MaxTokens json.RawMessage
}

// OutboundRequest is the body sent to the upstream Messages API.
// The API key travels as a header, never in the body.
type OutboundRequest struct {
	Model     json.RawMessage `json:"model"`
	Messages  json.RawMessage `json:"messages"`
	MaxTokens json.RawMessage `json:"max_tokens"`
}

// ParseInbound decodes a relay request body. Only the top-level shape is
// checked; nested values are left untouched.
func ParseInbound(data []byte) (*InboundRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	// "null" decodes into a nil map without error.
	if fields == nil {
		return nil, ErrNotObject
	}

	return &InboundRequest{
		APIKey:    present(fields["apiKey"]),
		Model:     present(fields["model"]),
		Messages:  present(fields["messages"]),
		MaxTokens: present(fields["max_tokens"]),
	}, nil
}

// present treats JSON null the same as a missing key.
func present(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return raw
}

// HasRequired reports whether apiKey, messages and model are all present.
func (r *InboundRequest) HasRequired() bool {
	return r.APIKey != nil && r.Messages != nil && r.Model != nil
}

// Credential returns the API key as the header value to send upstream.
// JSON strings are unquoted; any other JSON value is forwarded as its literal text.
func (r *InboundRequest) Credential() string {
	var s string
	if err := json.Unmarshal(r.APIKey, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(r.APIKey))
}

// Outbound builds the upstream body, applying defaultMaxTokens when the
// caller did not supply max_tokens.
func (r *InboundRequest) Outbound(defaultMaxTokens int) *OutboundRequest {
	maxTokens := r.MaxTokens
	if maxTokens == nil {
		maxTokens = json.RawMessage(strconv.Itoa(defaultMaxTokens))
	}
	return &OutboundRequest{
		Model:     r.Model,
		Messages:  r.Messages,
		MaxTokens: maxTokens,
	}
}

// Encode serializes the outbound body without HTML escaping so message
// content reaches the upstream unchanged.
func (o *OutboundRequest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UpstreamResponse is the buffered result of the upstream call.
type UpstreamResponse struct {
	StatusCode int
	Body       []byte
}
