package engagement

import (
	"context"

	"github.com/google/uuid"

	"github.com/pupperworks/pupper/internal/dogs"
)

// DogSource hydrates dog records for engagement listings.
type DogSource interface {
	FindMany(ctx context.Context, ids []uuid.UUID) ([]dogs.View, error)
}

// System defines the public contract for engagement operations.
type System interface {
	Handler(source DogSource) *Handler

	Cast(ctx context.Context, userID string, dogID uuid.UUID, action Action) error
	Retract(ctx context.Context, userID string, dogID uuid.UUID, action Action) error
	ListDogIDs(ctx context.Context, userID string, action Action) ([]uuid.UUID, error)
}
