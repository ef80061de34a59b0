package breeds

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pupperworks/pupper/pkg/pagination"
	"github.com/pupperworks/pupper/pkg/query"
	"github.com/pupperworks/pupper/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a breed repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "breeds"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Breed], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Description")

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count breeds: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanBreed)
	if err != nil {
		return nil, fmt.Errorf("query breeds: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Breed, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	b, err := repository.QueryOne(ctx, r.db, q, args, scanBreed)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &b, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Breed, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, ErrNameMissing
	}

	q := `
		INSERT INTO breeds(name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at`

	b, err := repository.QueryOne(ctx, r.db, q, []any{name, cmd.Description}, scanBreed)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("breed created", "id", b.ID, "name", b.Name)
	return &b, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Breed, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, ErrNameMissing
	}

	q := `
		UPDATE breeds
		SET name = $2, description = $3
		WHERE id = $1
		RETURNING id, name, description, created_at`

	b, err := repository.QueryOne(ctx, r.db, q, []any{id, name, cmd.Description}, scanBreed)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &b, nil
}

// Delete removes a breed. Dogs referencing it keep their denormalized
// breed text; the foreign key clears to NULL via the schema.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db, `DELETE FROM breeds WHERE id = $1`, id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("breed deleted", "id", id)
	return nil
}
