package breeds_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/pupperworks/pupper/internal/breeds"
	"github.com/pupperworks/pupper/pkg/pagination"
	"github.com/pupperworks/pupper/pkg/routes"
)

type stubSystem struct {
	findErr   error
	createErr error

	created breeds.CreateCommand
	updated breeds.UpdateCommand
	deleted uuid.UUID
}

func (s *stubSystem) Handler() *breeds.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return breeds.NewHandler(s, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func (s *stubSystem) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[breeds.Breed], error) {
	result := pagination.NewPageResult([]breeds.Breed{{Name: "Labrador Retriever"}}, 1, page.Page, page.PageSize)
	return &result, nil
}

func (s *stubSystem) Find(ctx context.Context, id uuid.UUID) (*breeds.Breed, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return &breeds.Breed{ID: id, Name: "Labrador Retriever"}, nil
}

func (s *stubSystem) Create(ctx context.Context, cmd breeds.CreateCommand) (*breeds.Breed, error) {
	s.created = cmd
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &breeds.Breed{ID: uuid.New(), Name: cmd.Name, Description: cmd.Description}, nil
}

func (s *stubSystem) Update(ctx context.Context, id uuid.UUID, cmd breeds.UpdateCommand) (*breeds.Breed, error) {
	s.updated = cmd
	return &breeds.Breed{ID: id, Name: cmd.Name, Description: cmd.Description}, nil
}

func (s *stubSystem) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = id
	return nil
}

func newMux(sys *stubSystem) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

func TestList(t *testing.T) {
	mux := newMux(&stubSystem{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/breeds", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result pagination.PageResult[breeds.Breed]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.Total != 1 || len(result.Data) != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestFind(t *testing.T) {
	mux := newMux(&stubSystem{})
	id := uuid.New()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/breeds/"+id.String(), nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var b breeds.Breed
	if err := json.NewDecoder(rec.Body).Decode(&b); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if b.ID != id {
		t.Errorf("ID = %v, want %v", b.ID, id)
	}
}

func TestFindErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		sys  *stubSystem
		want int
	}{
		{"invalid id", "/breeds/not-a-uuid", &stubSystem{}, http.StatusBadRequest},
		{"not found", "/breeds/" + uuid.NewString(), &stubSystem{findErr: breeds.ErrNotFound}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newMux(tt.sys).ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	sys := &stubSystem{}
	mux := newMux(sys)

	payload := `{"name": "Labrador Retriever Mix", "description": "lab crossed with anything"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/breeds", strings.NewReader(payload)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if sys.created.Name != "Labrador Retriever Mix" {
		t.Errorf("created = %+v", sys.created)
	}
}

func TestCreateErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		sys     *stubSystem
		want    int
	}{
		{"malformed json", "{", &stubSystem{}, http.StatusBadRequest},
		{"missing name", `{"description": "x"}`, &stubSystem{createErr: breeds.ErrNameMissing}, http.StatusBadRequest},
		{"duplicate", `{"name": "Labrador Retriever"}`, &stubSystem{createErr: breeds.ErrDuplicate}, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newMux(tt.sys).ServeHTTP(rec, httptest.NewRequest("POST", "/breeds", strings.NewReader(tt.payload)))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	sys := &stubSystem{}
	mux := newMux(sys)

	payload := `{"name": "Labrador Retriever"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("PUT", "/breeds/"+uuid.NewString(), strings.NewReader(payload)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if sys.updated.Name != "Labrador Retriever" {
		t.Errorf("updated = %+v", sys.updated)
	}
}

func TestDelete(t *testing.T) {
	sys := &stubSystem{}
	mux := newMux(sys)
	id := uuid.New()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/breeds/"+id.String(), nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if sys.deleted != id {
		t.Errorf("deleted = %v, want %v", sys.deleted, id)
	}
}
