package vision

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/pupperworks/pupper/pkg/handlers"
	"github.com/pupperworks/pupper/pkg/routes"
)

// Handler provides HTTP endpoints for image classification, sentiment,
// and generation.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler bound to the given vision system.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "vision"),
	}
}

// Routes returns the route group definition for vision endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/vision",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/classify", Handler: h.Classify},
			{Method: "POST", Pattern: "/sentiment", Handler: h.Sentiment},
			{Method: "POST", Pattern: "/generate", Handler: h.Generate},
		},
	}
}

// Classify accepts an image upload and reports whether it shows a
// Labrador.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	image, mediaType, err := readImage(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Classify(r.Context(), image, mediaType)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadGateway, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Sentiment accepts an image upload and returns mood tags.
func (h *Handler) Sentiment(w http.ResponseWriter, r *http.Request) {
	image, mediaType, err := readImage(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	tags, err := h.sys.Sentiment(r.Context(), image, mediaType)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadGateway, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string][]string{"tags": tags})
}

// GenerateRequest describes the dog to render.
type GenerateRequest struct {
	Description string `json:"description"`
}

// Generate renders a Labrador photo from a description and returns the
// PNG bytes.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if req.Description == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("description required"))
		return
	}

	image, err := h.sys.Generate(r.Context(), req.Description)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadGateway, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(image)
}

// readImage pulls the uploaded file from a multipart form, falling back
// to the raw body for direct uploads.
func readImage(r *http.Request) ([]byte, string, error) {
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, "", fmt.Errorf("read upload: %w", err)
		}

		mediaType := header.Header.Get("Content-Type")
		if mediaType == "" {
			mediaType = "image/jpeg"
		}
		return data, mediaType, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil || len(data) == 0 {
		return nil, "", fmt.Errorf("image upload required")
	}

	mediaType := r.Header.Get("Content-Type")
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = "image/jpeg"
	}
	return data, mediaType, nil
}
