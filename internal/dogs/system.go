package dogs

import (
	"context"

	"github.com/google/uuid"

	"github.com/pupperworks/pupper/internal/validation"
	"github.com/pupperworks/pupper/pkg/pagination"
)

// System defines the public contract for dog record operations, from
// plain CRUD through the full validated-create pipeline.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[View], error)
	Filter(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[View], error)
	Find(ctx context.Context, id uuid.UUID) (*View, error)
	FindMany(ctx context.Context, ids []uuid.UUID) ([]View, error)

	// Create runs the full admission pipeline: batch validation, species
	// gate, photo breed check, rendition uploads, sentiment tagging, and
	// persistence of the cleaned record.
	Create(ctx context.Context, record *validation.RawRecord, image []byte, mediaType string) (*CreateResult, error)
	// CreateGenerated admits a record without an uploaded photo by
	// generating one from the validated description.
	CreateGenerated(ctx context.Context, record *validation.RawRecord) (*CreateResult, error)
	// ReplaceImage re-runs the photo admission check and replaces all
	// stored renditions for an existing record.
	ReplaceImage(ctx context.Context, id uuid.UUID, image []byte, mediaType string) (*View, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Match scores the available dogs against free-text adopter
	// preferences.
	Match(ctx context.Context, preferences string) (*MatchResult, error)
	// Extract pulls a candidate record out of raw intake text without
	// persisting anything.
	Extract(ctx context.Context, text string) (*validation.RawRecord, error)
}
