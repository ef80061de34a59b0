package breeds

import (
	"context"

	"github.com/google/uuid"

	"github.com/pupperworks/pupper/pkg/pagination"
)

// System defines the public contract for breed domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Breed], error)
	Find(ctx context.Context, id uuid.UUID) (*Breed, error)
	Create(ctx context.Context, cmd CreateCommand) (*Breed, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Breed, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
