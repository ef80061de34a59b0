package dogs

import (
	"time"

	"github.com/google/uuid"

	"github.com/pupperworks/pupper/internal/validation"
)

// Dog is the persisted adoption record. Name is stored encrypted; the
// three photo keys reference renditions in object storage.
type Dog struct {
	ID               uuid.UUID
	BreedID          *uuid.UUID
	Breed            *string
	Name             *string
	ShelterName      *string
	City             *string
	State            *string
	ShelterEntryDate *time.Time
	Description      *string
	Birthday         *time.Time
	Weight           *float64
	Color            *string
	SentimentTags    []string
	PhotoKey         *string
	Photo400Key      *string
	Photo50Key       *string
	Wags             int
	Growls           int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// View is the outward shape of a dog record: name decrypted, storage
// keys replaced by presigned URLs.
type View struct {
	ID               uuid.UUID  `json:"id"`
	BreedID          *uuid.UUID `json:"breed_id,omitempty"`
	Breed            *string    `json:"breed,omitempty"`
	Name             *string    `json:"name,omitempty"`
	ShelterName      *string    `json:"shelter_name,omitempty"`
	City             *string    `json:"city,omitempty"`
	State            *string    `json:"state,omitempty"`
	ShelterEntryDate *time.Time `json:"shelter_entry_date,omitempty"`
	Description      *string    `json:"description,omitempty"`
	Birthday         *time.Time `json:"birthday,omitempty"`
	Weight           *float64   `json:"weight,omitempty"`
	Color            *string    `json:"color,omitempty"`
	SentimentTags    []string   `json:"sentiment_tags,omitempty"`
	PhotoURL         *string    `json:"photo_url,omitempty"`
	Photo400URL      *string    `json:"photo_400_url,omitempty"`
	Photo50URL       *string    `json:"photo_50_url,omitempty"`
	Wags             int        `json:"wags"`
	Growls           int        `json:"growls"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CreateResult pairs the created record with the per-field validation
// outcome so clients see what was cleaned or dropped.
type CreateResult struct {
	Dog     View                         `json:"dog"`
	Results map[string]validation.Result `json:"validation_results"`
}

// Match is one entry in a preference matching reply.
type Match struct {
	Dog    View    `json:"dog"`
	Reason string  `json:"reason"`
	Score  float64 `json:"score"`
}

// MatchResult is the reply to a preference matching request.
type MatchResult struct {
	Matches []Match `json:"matches"`
}
