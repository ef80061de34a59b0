package api

import (
	"github.com/pupperworks/pupper/internal/config"
	"github.com/pupperworks/pupper/internal/infrastructure"
	"github.com/pupperworks/pupper/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Model:     infra.Model,
			Vision:    infra.Vision,
			Validator: infra.Validator,
			Events:    infra.Events,
			Auth:      infra.Auth,
			Cipher:    infra.Cipher,
		},
		Pagination: cfg.API.Pagination,
	}
}
