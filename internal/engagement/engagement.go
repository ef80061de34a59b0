package engagement

import (
	"time"

	"github.com/google/uuid"
)

// Action identifies a reaction a user can hold on a dog. A user holds at
// most one action per dog at a time.
type Action string

const (
	ActionNone  Action = ""
	ActionWag   Action = "wag"
	ActionGrowl Action = "growl"
)

// ParseAction validates an action string from the wire.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionWag, ActionGrowl:
		return Action(s), nil
	default:
		return ActionNone, ErrUnknownAction
	}
}

// Engagement is a single user's current reaction to a dog.
type Engagement struct {
	UserID    string    `json:"user_id"`
	DogID     uuid.UUID `json:"dog_id"`
	Action    Action    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// decide evaluates a requested transition against the current action.
// Requesting ActionNone retracts; anything else casts. Casting over an
// existing reaction is rejected rather than silently replaced.
func decide(current, requested Action) error {
	if requested == ActionNone {
		if current == ActionNone {
			return ErrNotEngaged
		}
		return nil
	}

	switch current {
	case ActionNone:
		return nil
	case requested:
		return ErrDuplicate
	default:
		return ErrConflict
	}
}
