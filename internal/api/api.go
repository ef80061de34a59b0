// Package api assembles the API module with all domain systems and
// route registration.
package api

import (
	"net/http"

	"github.com/pupperworks/pupper/internal/auth"
	"github.com/pupperworks/pupper/internal/config"
	"github.com/pupperworks/pupper/internal/infrastructure"
	"github.com/pupperworks/pupper/pkg/middleware"
	"github.com/pupperworks/pupper/pkg/module"
)

// NewModule creates the API module with all domain handlers and
// middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.LimitBody(runtime.Logger, cfg.API.MaxUploadSizeBytes()))
	m.Use(auth.OptionalMiddleware(runtime.Auth, runtime.Logger))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
