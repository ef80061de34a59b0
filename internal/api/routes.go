package api

import (
	"net/http"

	"github.com/pupperworks/pupper/internal/validation"
	"github.com/pupperworks/pupper/internal/vision"
	"github.com/pupperworks/pupper/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Breeds.Handler().Routes(),
		domain.Dogs.Handler().Routes(),
		domain.Engagement.Handler(domain.Dogs).Routes(),
		validation.NewHandler(runtime.Validator, runtime.Logger).Routes(),
		vision.NewHandler(runtime.Vision, runtime.Logger).Routes(),
	)
}
