// Package breeds implements the breed lookup domain: an independent
// catalog of breed records optionally referenced by dogs.
package breeds

import (
	"time"

	"github.com/google/uuid"
)

// Breed is a catalog entry. Dogs reference breeds by ID; deleting a
// breed never deletes dogs (the reference is cleared instead).
type Breed struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCommand carries the data needed to create a breed.
type CreateCommand struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateCommand carries the data needed to update a breed.
type UpdateCommand struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
