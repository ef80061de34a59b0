package dogs

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/pupperworks/pupper/internal/auth"
	"github.com/pupperworks/pupper/internal/validation"
	"github.com/pupperworks/pupper/pkg/handlers"
	"github.com/pupperworks/pupper/pkg/pagination"
	"github.com/pupperworks/pupper/pkg/routes"
)

const maxUploadMemory = 32 << 20

// Handler provides HTTP endpoints for dog records.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "dogs"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for dog endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/dogs",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/filter", Handler: h.Filter},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "POST", Pattern: "/generated", Handler: h.CreateGenerated},
			{Method: "POST", Pattern: "/match", Handler: h.Match},
			{Method: "POST", Pattern: "/extract", Handler: h.Extract},
			{Method: "PUT", Pattern: "/{id}/image", Handler: h.ReplaceImage},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns a paginated list of dogs with presigned photo URLs.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Filter returns dogs narrowed by state, color, weight range, and age
// range query parameters.
func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.Filter(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single dog record.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	view, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}

// requireIdentity rejects requests without an authenticated caller.
func (h *Handler) requireIdentity(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := auth.IdentityFrom(r.Context()); !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, auth.ErrMissingToken)
		return false
	}
	return true
}

// Create admits a new dog from a multipart form carrying the record
// fields and the photo under "image".
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.requireIdentity(w, r) {
		return
	}

	record, image, mediaType, err := parseSubmission(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Create(r.Context(), record, image, mediaType)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// CreateGenerated admits a new dog from a JSON record, generating the
// photo from the validated description.
func (h *Handler) CreateGenerated(w http.ResponseWriter, r *http.Request) {
	if !h.requireIdentity(w, r) {
		return
	}

	var record validation.RawRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.CreateGenerated(r.Context(), &record)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

// ReplaceImage swaps all photo renditions for an existing record.
func (h *Handler) ReplaceImage(w http.ResponseWriter, r *http.Request) {
	if !h.requireIdentity(w, r) {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	image, mediaType, err := readImage(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	view, err := h.sys.ReplaceImage(r.Context(), id, image, mediaType)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}

// Delete removes a dog record and its stored photos.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.requireIdentity(w, r) {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// Match scores available dogs against the caller's free-text
// preferences.
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	if !h.requireIdentity(w, r) {
		return
	}

	var req struct {
		Preferences string `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Match(r.Context(), req.Preferences)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Extract pulls a candidate record out of raw intake text. Nothing is
// persisted; the reply feeds the normal create flow.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	if !h.requireIdentity(w, r) {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	record, err := h.sys.Extract(r.Context(), req.Text)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, record)
}

// parseSubmission reads the multipart create form: text fields become
// the raw record, the "image" part becomes the photo.
func parseSubmission(r *http.Request) (*validation.RawRecord, []byte, string, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, nil, "", err
	}

	record := &validation.RawRecord{
		Name:             formValue(r, "name"),
		ShelterName:      formValue(r, "shelter_name"),
		City:             formValue(r, "city"),
		State:            formValue(r, "state"),
		Species:          formValue(r, "species"),
		Description:      formValue(r, "description"),
		Color:            formValue(r, "color"),
		Weight:           formValue(r, "weight"),
		Birthday:         formValue(r, "birthday"),
		ShelterEntryDate: formValue(r, "shelter_entry_date"),
	}

	image, mediaType, err := readImage(r)
	if err != nil {
		return nil, nil, "", err
	}

	return record, image, mediaType, nil
}

// formValue returns a pointer to the form field value, or nil when the
// field was not supplied.
func formValue(r *http.Request, field string) *string {
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// readImage pulls photo bytes from the "image" multipart part, falling
// back to the raw request body for direct uploads.
func readImage(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, "", err
		}

		mediaType := header.Header.Get("Content-Type")
		if mediaType == "" {
			mediaType = "image/jpeg"
		}
		return data, mediaType, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil || len(data) == 0 {
		return nil, "", ErrImageMissing
	}

	mediaType := r.Header.Get("Content-Type")
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = "image/jpeg"
	}
	return data, mediaType, nil
}
