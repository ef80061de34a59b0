package engagement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pupperworks/pupper/internal/events"
	"github.com/pupperworks/pupper/pkg/repository"
)

type repo struct {
	db        *sql.DB
	publisher events.Publisher
	logger    *slog.Logger
}

// New creates an engagement repository implementing the System interface.
func New(db *sql.DB, publisher events.Publisher, logger *slog.Logger) System {
	return &repo{
		db:        db,
		publisher: publisher,
		logger:    logger.With("system", "engagement"),
	}
}

func (r *repo) Handler(source DogSource) *Handler {
	return NewHandler(r, source, r.logger)
}

// Cast records a reaction and bumps the matching counter on the dog, all
// in one transaction. The unique constraint on (user_id, dog_id) guards
// concurrent casts for the same pair.
func (r *repo) Cast(ctx context.Context, userID string, dogID uuid.UUID, action Action) error {
	if action != ActionWag && action != ActionGrowl {
		return ErrUnknownAction
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		var zero struct{}

		current, err := currentAction(ctx, tx, userID, dogID)
		if err != nil {
			return zero, err
		}

		if err := decide(current, action); err != nil {
			return zero, err
		}

		bump := fmt.Sprintf(
			`UPDATE dogs SET %s = %s + 1, updated_at = now() WHERE id = $1`,
			counterColumn(action), counterColumn(action),
		)
		if err := repository.ExecExpectOne(ctx, tx, bump, dogID); err != nil {
			return zero, repository.MapError(err, ErrDogNotFound, ErrDuplicate)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO engagements(user_id, dog_id, action) VALUES ($1, $2, $3)`,
			userID, dogID, string(action),
		)
		if err != nil {
			return zero, repository.MapError(err, ErrDogNotFound, ErrDuplicate)
		}

		return zero, nil
	})
	if err != nil {
		return err
	}

	if action == ActionWag {
		r.announce(ctx, events.DogWagged, map[string]any{
			"dog_id":  dogID.String(),
			"user_id": userID,
		})
	}

	r.logger.Info("reaction cast", "dog_id", dogID, "action", action)
	return nil
}

// announce publishes a domain event without letting failures surface to
// the request.
func (r *repo) announce(ctx context.Context, eventType string, data map[string]any) {
	if err := r.publisher.Publish(ctx, eventType, data); err != nil {
		r.logger.Warn("event publish failed", "event", eventType, "error", err)
	}
}

// Retract removes a reaction and decrements the matching counter, floored
// at zero so replayed retractions never drive a counter negative.
func (r *repo) Retract(ctx context.Context, userID string, dogID uuid.UUID, action Action) error {
	if action != ActionWag && action != ActionGrowl {
		return ErrUnknownAction
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		var zero struct{}

		err := repository.ExecExpectOne(ctx, tx,
			`DELETE FROM engagements WHERE user_id = $1 AND dog_id = $2 AND action = $3`,
			userID, dogID, string(action),
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return zero, ErrNotEngaged
			}
			return zero, err
		}

		drop := fmt.Sprintf(
			`UPDATE dogs SET %s = GREATEST(%s - 1, 0), updated_at = now() WHERE id = $1`,
			counterColumn(action), counterColumn(action),
		)
		if err := repository.ExecExpectOne(ctx, tx, drop, dogID); err != nil {
			return zero, repository.MapError(err, ErrDogNotFound, ErrDuplicate)
		}

		return zero, nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("reaction retracted", "dog_id", dogID, "action", action)
	return nil
}

// ListDogIDs returns the dogs the user currently holds the given action
// on, most recent first.
func (r *repo) ListDogIDs(ctx context.Context, userID string, action Action) ([]uuid.UUID, error) {
	if action != ActionWag && action != ActionGrowl {
		return nil, ErrUnknownAction
	}

	return repository.QueryMany(ctx, r.db,
		`SELECT dog_id FROM engagements
		 WHERE user_id = $1 AND action = $2
		 ORDER BY created_at DESC`,
		[]any{userID, string(action)},
		func(s repository.Scanner) (uuid.UUID, error) {
			var id uuid.UUID
			err := s.Scan(&id)
			return id, err
		},
	)
}

func currentAction(ctx context.Context, q repository.Querier, userID string, dogID uuid.UUID) (Action, error) {
	var action string
	err := q.QueryRowContext(ctx,
		`SELECT action FROM engagements WHERE user_id = $1 AND dog_id = $2`,
		userID, dogID,
	).Scan(&action)

	if errors.Is(err, sql.ErrNoRows) {
		return ActionNone, nil
	}
	if err != nil {
		return ActionNone, err
	}

	return Action(action), nil
}

func counterColumn(action Action) string {
	if action == ActionGrowl {
		return "growls"
	}
	return "wags"
}
