package app

import (
	"github.com/finsight/finsight/internal/config"
	"github.com/finsight/finsight/pkg/api"
	"github.com/finsight/finsight/pkg/format"
	"github.com/finsight/finsight/pkg/store"
)

// Dependencies holds every constructed collaborator. It is built once at
// startup and passed down explicitly; nothing in the module relies on a
// package-level instance, so tests can build as many as they need.
type Dependencies struct {
	Config    config.Application
	Client    api.Client
	Store     *store.Store
	Formatter *format.Formatter
}

// BuildDependencies initializes and wires all collaborators from the
// resolved configuration.
func BuildDependencies(cfg config.Application) *Dependencies {
	deps := &Dependencies{Config: cfg}

	deps.Client = api.NewClient(cfg.BaseURL())
	deps.Store = store.New(deps.Client)
	deps.Formatter = format.NewFormatter(cfg.Locale)

	return deps
}
