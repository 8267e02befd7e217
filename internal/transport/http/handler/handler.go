package handler

import (
	"log/slog"
	"time"

	"github.com/mandalnilabja/msgrelay/internal/provider"
	"github.com/mandalnilabja/msgrelay/internal/transport/http/handler/infra"
	"github.com/mandalnilabja/msgrelay/internal/transport/http/handler/relay"
)

// Repo composes all domain-specific handlers.
type Repo struct {
	Relay *relay.Handlers
	Infra *infra.Handlers
}

// NewRepo creates a new instance of the composed handler repository.
func NewRepo(prov provider.Provider, logger *slog.Logger, opts relay.Options) *Repo {
	return &Repo{
		Relay: relay.New(prov, logger, opts),
		Infra: infra.New(time.Now(), prov.BaseURL()),
	}
}
