package engagement

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/pupperworks/pupper/internal/auth"
	"github.com/pupperworks/pupper/pkg/handlers"
	"github.com/pupperworks/pupper/pkg/routes"
)

// Handler provides HTTP endpoints for casting, retracting, and listing
// reactions. It mounts under the dogs prefix.
type Handler struct {
	sys    System
	source DogSource
	logger *slog.Logger
}

func NewHandler(sys System, source DogSource, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		source: source,
		logger: logger.With("handler", "engagement"),
	}
}

// Routes returns the route group definition for engagement endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/dogs",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{id}/wag", Handler: h.cast(ActionWag)},
			{Method: "DELETE", Pattern: "/{id}/wag", Handler: h.retract(ActionWag)},
			{Method: "POST", Pattern: "/{id}/growl", Handler: h.cast(ActionGrowl)},
			{Method: "DELETE", Pattern: "/{id}/growl", Handler: h.retract(ActionGrowl)},
			{Method: "GET", Pattern: "/wagged", Handler: h.list(ActionWag)},
			{Method: "GET", Pattern: "/growled", Handler: h.list(ActionGrowl)},
		},
	}
}

func (h *Handler) cast(action Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFrom(r.Context())
		if !ok {
			handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrMissingToken)
			return
		}

		dogID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrDogNotFound)
			return
		}

		if err := h.sys.Cast(r.Context(), identity.Subject, dogID, action); err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}

		handlers.RespondJSON(w, http.StatusOK, map[string]string{
			"dog_id": dogID.String(),
			"action": string(action),
		})
	}
}

func (h *Handler) retract(action Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFrom(r.Context())
		if !ok {
			handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrMissingToken)
			return
		}

		dogID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrDogNotFound)
			return
		}

		if err := h.sys.Retract(r.Context(), identity.Subject, dogID, action); err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}

		handlers.RespondJSON(w, http.StatusNoContent, nil)
	}
}

func (h *Handler) list(action Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFrom(r.Context())
		if !ok {
			handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrMissingToken)
			return
		}

		ids, err := h.sys.ListDogIDs(r.Context(), identity.Subject, action)
		if err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}

		views, err := h.source.FindMany(r.Context(), ids)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
			return
		}

		handlers.RespondJSON(w, http.StatusOK, map[string]any{"data": views})
	}
}
