package dogs

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pupperworks/pupper/internal/events"
	"github.com/pupperworks/pupper/internal/model"
	"github.com/pupperworks/pupper/internal/validation"
	"github.com/pupperworks/pupper/internal/vision"
	"github.com/pupperworks/pupper/pkg/formatting"
	"github.com/pupperworks/pupper/pkg/pagination"
	"github.com/pupperworks/pupper/pkg/query"
	"github.com/pupperworks/pupper/pkg/repository"
	"github.com/pupperworks/pupper/pkg/secrets"
	"github.com/pupperworks/pupper/pkg/storage"
)

const matchCandidateLimit = 100

type repo struct {
	db         *sql.DB
	store      storage.System
	vision     vision.System
	validator  *validation.Validator
	model      model.System
	publisher  events.Publisher
	cipher     *secrets.Cipher
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a dog repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	vis vision.System,
	validator *validation.Validator,
	m model.System,
	publisher events.Publisher,
	cipher *secrets.Cipher,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		store:      store,
		vision:     vis,
		validator:  validator,
		model:      m,
		publisher:  publisher,
		cipher:     cipher,
		logger:     logger.With("system", "dogs"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[View], error) {
	return r.Filter(ctx, page, Filters{})
}

func (r *repo) Filter(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[View], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Breed", "ShelterName", "City", "Description")

	filters.Apply(qb, time.Now().UTC())

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count dogs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDog)
	if err != nil {
		return nil, fmt.Errorf("query dogs: %w", err)
	}

	views, err := r.presentMany(ctx, items)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(views, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*View, error) {
	d, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}

	view, err := r.present(ctx, *d)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *repo) FindMany(ctx context.Context, ids []uuid.UUID) ([]View, error) {
	if len(ids) == 0 {
		return []View{}, nil
	}

	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}

	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereIn("ID", values).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanDog)
	if err != nil {
		return nil, fmt.Errorf("query dogs: %w", err)
	}

	return r.presentMany(ctx, items)
}

func (r *repo) Create(ctx context.Context, record *validation.RawRecord, image []byte, mediaType string) (*CreateResult, error) {
	if len(image) == 0 {
		return nil, ErrImageMissing
	}

	results := r.validator.ValidateRecord(ctx, record)
	validation.LogResults(r.logger, results, "create")

	if err := validation.AdmitSpecies(results); err != nil {
		return nil, err
	}

	cls, err := r.vision.Classify(ctx, image, mediaType)
	if err != nil {
		return nil, fmt.Errorf("classify photo: %w", err)
	}
	if !cls.IsLabrador {
		r.logger.Warn("photo rejected", "reason", cls.Explanation, "confidence", cls.Confidence)
		return nil, ErrImageRejected
	}

	return r.admit(ctx, results, image, mediaType)
}

func (r *repo) CreateGenerated(ctx context.Context, record *validation.RawRecord) (*CreateResult, error) {
	results := r.validator.ValidateRecord(ctx, record)
	validation.LogResults(r.logger, results, "create-generated")

	if err := validation.AdmitSpecies(results); err != nil {
		return nil, err
	}

	cleaned := validation.CleanedData(results)
	description := cleanedString(cleaned, "description")
	if description == nil {
		return nil, ErrNoDescription
	}

	image, err := r.vision.Generate(ctx, *description)
	if err != nil {
		return nil, fmt.Errorf("generate photo: %w", err)
	}

	return r.admit(ctx, results, image, "image/png")
}

// admit performs the shared tail of both create paths: render and upload
// the photo variants, derive sentiment tags, encrypt the name, persist
// the cleaned record, and announce it.
func (r *repo) admit(ctx context.Context, results map[string]validation.Result, image []byte, mediaType string) (*CreateResult, error) {
	rends, err := render(image)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	if err := r.uploadRenditions(ctx, id, rends); err != nil {
		if cleanupErr := r.store.DeletePrefix(ctx, id.String()+"/"); cleanupErr != nil {
			r.logger.Warn("partial upload cleanup failed", "dog_id", id, "error", cleanupErr)
		}
		return nil, err
	}

	cleaned := validation.CleanedData(results)

	tags := r.sentimentTags(ctx, image, mediaType, cleanedString(cleaned, "description"))

	d, err := r.insert(ctx, id, cleaned, tags)
	if err != nil {
		if cleanupErr := r.store.DeletePrefix(ctx, id.String()+"/"); cleanupErr != nil {
			r.logger.Warn("orphaned photo cleanup failed", "dog_id", id, "error", cleanupErr)
		}
		return nil, err
	}

	r.announce(ctx, events.DogCreated, map[string]any{
		"dog_id": d.ID.String(),
		"breed":  d.Breed,
	})

	view, err := r.present(ctx, *d)
	if err != nil {
		return nil, err
	}

	r.logger.Info("dog admitted", "dog_id", d.ID)
	return &CreateResult{Dog: view, Results: results}, nil
}

func (r *repo) ReplaceImage(ctx context.Context, id uuid.UUID, image []byte, mediaType string) (*View, error) {
	if len(image) == 0 {
		return nil, ErrImageMissing
	}

	d, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}

	cls, err := r.vision.Classify(ctx, image, mediaType)
	if err != nil {
		return nil, fmt.Errorf("classify photo: %w", err)
	}
	if !cls.IsLabrador {
		return nil, ErrImageRejected
	}

	rends, err := render(image)
	if err != nil {
		return nil, err
	}

	if err := r.uploadRenditions(ctx, d.ID, rends); err != nil {
		return nil, err
	}

	tags := r.sentimentTags(ctx, image, mediaType, d.Description)

	original, resized, thumbnail := photoKeys(d.ID.String())
	q := `
		UPDATE dogs
		SET photo_key = $2, photo_400_key = $3, photo_50_key = $4,
			sentiment_tags = $5, updated_at = now()
		WHERE id = $1
		RETURNING ` + dogColumns

	updated, err := repository.QueryOne(ctx, r.db, q,
		[]any{d.ID, original, resized, thumbnail, joinTags(tags)}, scanDog)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	view, err := r.present(ctx, updated)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	d, err := r.find(ctx, id)
	if err != nil {
		return err
	}

	if err := r.store.DeletePrefix(ctx, d.ID.String()+"/"); err != nil {
		r.logger.Warn("photo deletion failed", "dog_id", d.ID, "error", err)
	}

	if err := repository.ExecExpectOne(ctx, r.db, `DELETE FROM dogs WHERE id = $1`, d.ID); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("dog deleted", "dog_id", d.ID)
	return nil
}

const matchInstruction = `You are an adoption counselor matching adopters to Labrador Retrievers. Given the adopter's preferences and the available dogs, pick up to 3 dogs that fit best. Respond with ONLY a JSON object: {"matches": [{"dog_id": "uuid", "reason": "why this dog fits", "score": float (0.0-1.0)}]}. Only reference dog_id values that appear in the list.`

type matchEntry struct {
	DogID  string  `json:"dog_id"`
	Reason string  `json:"reason"`
	Score  float64 `json:"score"`
}

type matchReply struct {
	Matches []matchEntry `json:"matches"`
}

func (r *repo) Match(ctx context.Context, preferences string) (*MatchResult, error) {
	preferences = strings.TrimSpace(preferences)
	if preferences == "" {
		return nil, ErrNoPreferences
	}

	q, args := query.
		NewBuilder(projection, defaultSort).
		BuildPage(1, matchCandidateLimit)

	items, err := repository.QueryMany(ctx, r.db, q, args, scanDog)
	if err != nil {
		return nil, fmt.Errorf("query dogs: %w", err)
	}

	views, err := r.presentMany(ctx, items)
	if err != nil {
		return nil, err
	}

	if len(views) == 0 {
		return &MatchResult{Matches: []Match{}}, nil
	}

	candidates, err := json.Marshal(matchCandidates(views))
	if err != nil {
		return nil, fmt.Errorf("encode candidates: %w", err)
	}

	prompt := fmt.Sprintf("Adopter preferences: %s\n\nAvailable dogs: %s", preferences, candidates)
	reply, err := r.model.Complete(ctx, matchInstruction, prompt)
	if err != nil {
		return nil, fmt.Errorf("match preferences: %w", err)
	}

	parsed, err := formatting.Parse[matchReply](reply)
	if err != nil {
		return nil, fmt.Errorf("parse match reply: %w", err)
	}

	byID := make(map[string]View, len(views))
	for _, v := range views {
		byID[v.ID.String()] = v
	}

	matches := make([]Match, 0, len(parsed.Matches))
	matchedIDs := make([]string, 0, len(parsed.Matches))
	for _, entry := range parsed.Matches {
		view, ok := byID[entry.DogID]
		if !ok {
			r.logger.Warn("match referenced unknown dog", "dog_id", entry.DogID)
			continue
		}
		matches = append(matches, Match{Dog: view, Reason: entry.Reason, Score: entry.Score})
		matchedIDs = append(matchedIDs, entry.DogID)
	}

	r.announce(ctx, events.DogMatched, map[string]any{
		"dog_ids":     matchedIDs,
		"preferences": preferences,
	})

	return &MatchResult{Matches: matches}, nil
}

func (r *repo) Extract(ctx context.Context, text string) (*validation.RawRecord, error) {
	return r.validator.ExtractRecord(ctx, text)
}

// candidate is the compact dog description handed to the model for
// matching; keys stay small to leave room for large shelters.
type candidate struct {
	DogID       string   `json:"dog_id"`
	Name        *string  `json:"name,omitempty"`
	Breed       *string  `json:"breed,omitempty"`
	Color       *string  `json:"color,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	AgeYears    *int     `json:"age_years,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Description *string  `json:"description,omitempty"`
}

func matchCandidates(views []View) []candidate {
	candidates := make([]candidate, 0, len(views))
	for _, v := range views {
		c := candidate{
			DogID:       v.ID.String(),
			Name:        v.Name,
			Breed:       v.Breed,
			Color:       v.Color,
			Weight:      v.Weight,
			Tags:        v.SentimentTags,
			Description: v.Description,
		}
		if v.Birthday != nil {
			years := int(time.Since(*v.Birthday).Hours() / 24 / 365.25)
			c.AgeYears = &years
		}
		candidates = append(candidates, c)
	}
	return candidates
}

func (r *repo) uploadRenditions(ctx context.Context, id uuid.UUID, rends *renditions) error {
	original, resized, thumbnail := photoKeys(id.String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.store.Upload(gctx, original, bytes.NewReader(rends.Original), "image/jpeg")
	})
	g.Go(func() error {
		return r.store.Upload(gctx, resized, bytes.NewReader(rends.Resized), "image/png")
	})
	g.Go(func() error {
		return r.store.Upload(gctx, thumbnail, bytes.NewReader(rends.Thumbnail), "image/png")
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("upload photos: %w", err)
	}

	return nil
}

// sentimentTags derives mood tags from the photo, falling back to the
// description. Tagging is best-effort and never fails an admission.
func (r *repo) sentimentTags(ctx context.Context, image []byte, mediaType string, description *string) []string {
	tags, err := r.vision.Sentiment(ctx, image, mediaType)
	if err == nil {
		return tags
	}

	r.logger.Warn("photo sentiment failed", "error", err)

	if description != nil {
		tags, err = r.vision.SentimentFromText(ctx, *description)
		if err == nil {
			return tags
		}
		r.logger.Warn("text sentiment failed", "error", err)
	}

	return nil
}

const dogColumns = `id, breed_id, breed, name, shelter_name, city, state,
		shelter_entry_date, description, birthday, weight, color, sentiment_tags,
		photo_key, photo_400_key, photo_50_key, wags, growls, created_at, updated_at`

func (r *repo) insert(ctx context.Context, id uuid.UUID, cleaned map[string]any, tags []string) (*Dog, error) {
	name, err := r.encryptName(cleanedString(cleaned, "name"))
	if err != nil {
		return nil, err
	}

	breed := cleanedString(cleaned, "species")
	breedID, err := r.breedIDByName(ctx, breed)
	if err != nil {
		return nil, err
	}

	original, resized, thumbnail := photoKeys(id.String())

	q := `
		INSERT INTO dogs(
			id, breed_id, breed, name, shelter_name, city, state,
			shelter_entry_date, description, birthday, weight, color,
			sentiment_tags, photo_key, photo_400_key, photo_50_key
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + dogColumns

	args := []any{
		id,
		breedID,
		breed,
		name,
		cleanedString(cleaned, "shelter_name"),
		cleanedString(cleaned, "city"),
		cleanedString(cleaned, "state"),
		cleanedString(cleaned, "shelter_entry_date"),
		cleanedString(cleaned, "description"),
		cleanedString(cleaned, "birthday"),
		cleanedFloat(cleaned, "weight"),
		cleanedString(cleaned, "color"),
		joinTags(tags),
	}
	args = append(args, original, resized, thumbnail)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDog)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &d, nil
}

func (r *repo) find(ctx context.Context, id uuid.UUID) (*Dog, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDog)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

// breedIDByName links the denormalized breed text back to the catalog
// when a matching breed row exists. No match is not an error.
func (r *repo) breedIDByName(ctx context.Context, name *string) (*uuid.UUID, error) {
	if name == nil {
		return nil, nil
	}

	var id uuid.UUID
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM breeds WHERE name = $1`, *name,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup breed: %w", err)
	}

	return &id, nil
}

func (r *repo) encryptName(name *string) (*string, error) {
	if name == nil {
		return nil, nil
	}

	encrypted, err := r.cipher.Encrypt(*name)
	if err != nil {
		return nil, fmt.Errorf("encrypt name: %w", err)
	}
	return &encrypted, nil
}

// present converts a stored record to its outward view: decrypted name,
// presigned photo URLs.
func (r *repo) present(ctx context.Context, d Dog) (View, error) {
	view := View{
		ID:               d.ID,
		BreedID:          d.BreedID,
		Breed:            d.Breed,
		ShelterName:      d.ShelterName,
		City:             d.City,
		State:            d.State,
		ShelterEntryDate: d.ShelterEntryDate,
		Description:      d.Description,
		Birthday:         d.Birthday,
		Weight:           d.Weight,
		Color:            d.Color,
		SentimentTags:    d.SentimentTags,
		Wags:             d.Wags,
		Growls:           d.Growls,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}

	if d.Name != nil {
		name, err := r.cipher.Decrypt(*d.Name)
		if err != nil {
			return View{}, fmt.Errorf("decrypt name: %w", err)
		}
		view.Name = &name
	}

	for _, link := range []struct {
		key  *string
		dest **string
	}{
		{d.PhotoKey, &view.PhotoURL},
		{d.Photo400Key, &view.Photo400URL},
		{d.Photo50Key, &view.Photo50URL},
	} {
		if link.key == nil {
			continue
		}
		url, err := r.store.PresignGet(ctx, *link.key, 0)
		if err != nil {
			return View{}, fmt.Errorf("presign %s: %w", *link.key, err)
		}
		*link.dest = &url
	}

	return view, nil
}

func (r *repo) presentMany(ctx context.Context, items []Dog) ([]View, error) {
	views := make([]View, 0, len(items))
	for _, d := range items {
		view, err := r.present(ctx, d)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// announce publishes a domain event without letting failures surface to
// the request.
func (r *repo) announce(ctx context.Context, eventType string, data map[string]any) {
	if err := r.publisher.Publish(ctx, eventType, data); err != nil {
		r.logger.Warn("event publish failed", "event", eventType, "error", err)
	}
}

func cleanedString(cleaned map[string]any, field string) *string {
	if v, ok := cleaned[field].(string); ok {
		return &v
	}
	return nil
}

func cleanedFloat(cleaned map[string]any, field string) *float64 {
	if v, ok := cleaned[field].(float64); ok {
		return &v
	}
	return nil
}
