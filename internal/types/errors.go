package types

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON error payload returned for locally detected failures.
type ErrorBody struct {
	Error string `json:"error"`
}

// Error messages returned to callers.
const (
	MsgMethodNotAllowed    = "Method Not Allowed"
	MsgMissingFields       = "Missing required fields (apiKey, messages, model)"
	MsgInvalidJSON         = "Invalid JSON body"
	MsgBodyTooLarge        = "Request body too large"
	MsgUpstreamUnreachable = "Upstream unreachable"
	MsgUpstreamRead        = "Failed to read upstream response"
	MsgInvalidCredential   = "Invalid apiKey"
	MsgInternal            = "Internal Server Error"
)

// WriteError writes {"error": message} with the given status code.
// The body has no trailing newline.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	body, _ := json.Marshal(ErrorBody{Error: message})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}
