package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSOptions lists what the relay advertises to browsers.
type CORSOptions struct {
	AllowOrigin  string
	AllowMethods []string
	AllowHeaders []string
	// MaxAge is the preflight cache lifetime in seconds; zero omits the header.
	MaxAge int
}

// RelayCORSOptions returns the permissive policy the browser relay needs.
func RelayCORSOptions(maxAge int) CORSOptions {
	return CORSOptions{
		AllowOrigin:  "*",
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "X-API-Key", "anthropic-version"},
		MaxAge:       maxAge,
	}
}

// CORS adds Cross-Origin Resource Sharing headers and answers preflight
// requests with 204 and no body.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	methods := strings.Join(opts.AllowMethods, ", ")
	headers := strings.Join(opts.AllowHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", opts.AllowOrigin)
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			if opts.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(opts.MaxAge))
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
