package api

import (
	"github.com/pupperworks/pupper/internal/breeds"
	"github.com/pupperworks/pupper/internal/dogs"
	"github.com/pupperworks/pupper/internal/engagement"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Breeds     breeds.System
	Dogs       dogs.System
	Engagement engagement.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	breedsSystem := breeds.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	dogsSystem := dogs.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Vision,
		runtime.Validator,
		runtime.Model,
		runtime.Events,
		runtime.Cipher,
		runtime.Logger,
		runtime.Pagination,
	)

	engagementSystem := engagement.New(
		runtime.Database.Connection(),
		runtime.Events,
		runtime.Logger,
	)

	return &Domain{
		Breeds:     breedsSystem,
		Dogs:       dogsSystem,
		Engagement: engagementSystem,
	}
}
