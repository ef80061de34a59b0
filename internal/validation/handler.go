package validation

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pupperworks/pupper/pkg/handlers"
	"github.com/pupperworks/pupper/pkg/routes"
)

// Handler provides HTTP endpoints for validating raw field data without
// persistence.
type Handler struct {
	validator *Validator
	logger    *slog.Logger
}

// NewHandler creates a Handler bound to the given validator.
func NewHandler(validator *Validator, logger *slog.Logger) *Handler {
	return &Handler{
		validator: validator,
		logger:    logger.With("handler", "validation"),
	}
}

// Routes returns the route group definition for validation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/validation",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/record", Handler: h.ValidateRecord},
			{Method: "POST", Pattern: "/field", Handler: h.ValidateField},
		},
	}
}

// RecordResponse pairs per-field results with the derived cleaned record.
type RecordResponse struct {
	Results map[string]Result `json:"results"`
	Cleaned map[string]any    `json:"cleaned"`
}

// ValidateRecord batch-validates a full candidate record in one model
// call and returns both the per-field results and the cleaned record.
func (h *Handler) ValidateRecord(w http.ResponseWriter, r *http.Request) {
	var record RawRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	results := h.validator.ValidateRecord(r.Context(), &record)

	handlers.RespondJSON(w, http.StatusOK, RecordResponse{
		Results: results,
		Cleaned: CleanedData(results),
	})
}

// FieldRequest names a single value to clean and the kind of cleaning to
// apply.
type FieldRequest struct {
	Kind      string  `json:"kind"`
	Field     string  `json:"field,omitempty"`
	MaxLength int     `json:"max_length,omitempty"`
	Value     *string `json:"value"`
}

// ValidateField cleans one raw value according to the requested field
// kind.
func (h *Handler) ValidateField(w http.ResponseWriter, r *http.Request) {
	var req FieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	kind, err := ParseFieldKind(req.Kind)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	var result Result
	switch kind {
	case KindWeight:
		result = h.validator.CleanWeight(r.Context(), req.Value)
	case KindDate:
		result = h.validator.CleanDate(r.Context(), req.Value)
	case KindState:
		result = h.validator.CleanState(r.Context(), req.Value)
	case KindColor:
		result = h.validator.CleanColor(r.Context(), req.Value)
	case KindBreed:
		result = h.validator.ValidateBreed(r.Context(), req.Value)
	default:
		field := req.Field
		if field == "" {
			field = "text"
		}
		result = h.validator.CleanText(r.Context(), req.Value, field, req.MaxLength)
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
