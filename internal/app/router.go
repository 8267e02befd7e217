package app

import (
	"log/slog"
	"net/http"

	"github.com/mandalnilabja/msgrelay/internal/transport/http/handler"
	"github.com/mandalnilabja/msgrelay/internal/transport/http/middleware"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	Logger     *slog.Logger
	CORSMaxAge int
}

// NewRouter creates the HTTP router with all application routes and
// middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", repo.Infra.HealthCheck)
	mux.HandleFunc("GET /api/status", repo.Infra.Status)

	// Relay routes accept every method so the handler can answer 405 itself.
	mux.HandleFunc("/v1/messages", repo.Relay.Messages)
	mux.HandleFunc("/", repo.Relay.Messages)

	// Middleware chain (order: outer to inner)
	middlewares := []func(http.Handler) http.Handler{
		middleware.CORS(middleware.RelayCORSOptions(opts.CORSMaxAge)),
		middleware.RequestID,
	}
	if opts.Logger != nil {
		middlewares = append(middlewares, middleware.RequestLogger(opts.Logger))
	}

	return middleware.Chain(mux, middlewares...)
}
