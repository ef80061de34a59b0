package breeds

import (
	"github.com/pupperworks/pupper/pkg/query"
	"github.com/pupperworks/pupper/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "breeds", "b").
	Project("id", "ID").
	Project("name", "Name").
	Project("description", "Description").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

func scanBreed(s repository.Scanner) (Breed, error) {
	var b Breed

	err := s.Scan(
		&b.ID,
		&b.Name,
		&b.Description,
		&b.CreatedAt,
	)

	return b, err
}
