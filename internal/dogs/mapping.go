package dogs

import (
	"database/sql"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pupperworks/pupper/pkg/query"
	"github.com/pupperworks/pupper/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "dogs", "d").
	Project("id", "ID").
	Project("breed_id", "BreedID").
	Project("breed", "Breed").
	Project("name", "Name").
	Project("shelter_name", "ShelterName").
	Project("city", "City").
	Project("state", "State").
	Project("shelter_entry_date", "ShelterEntryDate").
	Project("description", "Description").
	Project("birthday", "Birthday").
	Project("weight", "Weight").
	Project("color", "Color").
	Project("sentiment_tags", "SentimentTags").
	Project("photo_key", "PhotoKey").
	Project("photo_400_key", "Photo400Key").
	Project("photo_50_key", "Photo50Key").
	Project("wags", "Wags").
	Project("growls", "Growls").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanDog(s repository.Scanner) (Dog, error) {
	var (
		d    Dog
		tags sql.NullString
	)

	err := s.Scan(
		&d.ID,
		&d.BreedID,
		&d.Breed,
		&d.Name,
		&d.ShelterName,
		&d.City,
		&d.State,
		&d.ShelterEntryDate,
		&d.Description,
		&d.Birthday,
		&d.Weight,
		&d.Color,
		&tags,
		&d.PhotoKey,
		&d.Photo400Key,
		&d.Photo50Key,
		&d.Wags,
		&d.Growls,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return d, err
	}

	d.SentimentTags = splitTags(tags.String)
	return d, nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

func joinTags(tags []string) *string {
	if len(tags) == 0 {
		return nil
	}
	joined := strings.Join(tags, ",")
	return &joined
}

// Filters narrow the dog list by shelter state, color, weight range, and
// age range in years.
type Filters struct {
	State     *string
	Color     *string
	MinWeight *float64
	MaxWeight *float64
	MinAge    *int
	MaxAge    *int
}

// Apply adds the filter conditions to the query builder. Age bounds are
// translated to birthday cutoffs against the current date.
func (f Filters) Apply(b *query.Builder, now time.Time) {
	if f.State != nil {
		b.WhereEquals("State", strings.ToUpper(*f.State))
	}
	if f.Color != nil {
		b.WhereEquals("Color", *f.Color)
	}
	if f.MinWeight != nil {
		b.WhereAtLeast("Weight", *f.MinWeight)
	}
	if f.MaxWeight != nil {
		b.WhereAtMost("Weight", *f.MaxWeight)
	}
	if f.MinAge != nil {
		b.WhereAtMost("Birthday", now.AddDate(-*f.MinAge, 0, 0))
	}
	if f.MaxAge != nil {
		b.WhereAtLeast("Birthday", now.AddDate(-*f.MaxAge-1, 0, 0))
	}
}

// FiltersFromQuery parses filter parameters from URL query values.
// Supported parameters: state, color, min_weight, max_weight, min_age,
// max_age.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("state"); s != "" {
		f.State = &s
	}
	if s := values.Get("color"); s != "" {
		f.Color = &s
	}
	if v, err := strconv.ParseFloat(values.Get("min_weight"), 64); err == nil {
		f.MinWeight = &v
	}
	if v, err := strconv.ParseFloat(values.Get("max_weight"), 64); err == nil {
		f.MaxWeight = &v
	}
	if v, err := strconv.Atoi(values.Get("min_age")); err == nil {
		f.MinAge = &v
	}
	if v, err := strconv.Atoi(values.Get("max_age")); err == nil {
		f.MaxAge = &v
	}

	return f
}
