package infra

import "time"

// Handlers holds the dependencies for infrastructure HTTP handlers.
type Handlers struct {
	StartTime   time.Time
	UpstreamURL string
}

// New creates a new instance of infrastructure handlers.
func New(startTime time.Time, upstreamURL string) *Handlers {
	return &Handlers{
		StartTime:   startTime,
		UpstreamURL: upstreamURL,
	}
}
