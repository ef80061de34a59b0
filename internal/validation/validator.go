// Package validation cleans shelter-supplied record fields by delegating
// normalization decisions to the hosted model and folding its structured
// replies into per-field results.
package validation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pupperworks/pupper/internal/model"
	"github.com/pupperworks/pupper/pkg/formatting"
)

// fieldReply is the structured reply contract every field instruction
// asks the model to produce.
type fieldReply struct {
	Value       any     `json:"value"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
	IsValid     bool    `json:"is_valid"`
}

// Validator cleans raw field values through the model client.
type Validator struct {
	model  model.System
	logger *slog.Logger
}

// New creates a Validator bound to the given model client.
func New(m model.System, logger *slog.Logger) *Validator {
	return &Validator{
		model:  m,
		logger: logger.With("system", "validation"),
	}
}

// CleanWeight parses a raw weight value into pounds.
func (v *Validator) CleanWeight(ctx context.Context, raw *string) Result {
	return v.cleanField(ctx, KindWeight, "weight", 0, raw)
}

// CleanDate parses a raw date value into ISO format.
func (v *Validator) CleanDate(ctx context.Context, raw *string) Result {
	return v.cleanField(ctx, KindDate, "date", 0, raw)
}

// CleanState normalizes a raw state value to a 2-letter USPS code.
func (v *Validator) CleanState(ctx context.Context, raw *string) Result {
	return v.cleanField(ctx, KindState, "state", 0, raw)
}

// CleanColor normalizes a raw color value to a standard coat color.
func (v *Validator) CleanColor(ctx context.Context, raw *string) Result {
	return v.cleanField(ctx, KindColor, "color", 0, raw)
}

// ValidateBreed checks a raw breed or species value against the admitted
// breed set.
func (v *Validator) ValidateBreed(ctx context.Context, raw *string) Result {
	return v.cleanField(ctx, KindBreed, "breed", 0, raw)
}

// CleanText normalizes a free-text field, truncated to maxLength.
func (v *Validator) CleanText(ctx context.Context, raw *string, field string, maxLength int) Result {
	if maxLength <= 0 {
		maxLength = 255
	}
	return v.cleanField(ctx, KindText, field, maxLength, raw)
}

// cleanField runs one field through the model. Null input short-circuits
// without a network call; call and parse failures come back as invalid
// results, never as errors.
func (v *Validator) cleanField(ctx context.Context, kind FieldKind, field string, maxLength int, raw *string) Result {
	if raw == nil {
		return NullResult()
	}

	original := strings.TrimSpace(*raw)

	reply, err := v.model.Complete(
		ctx,
		kind.instruction(field, maxLength),
		kind.userMessage(field, original),
	)
	if err != nil {
		return FailedResult(original, err.Error(), v.model.Name())
	}

	parsed, err := formatting.Parse[fieldReply](reply)
	if err != nil {
		return FailedResult(original, fmt.Sprintf("unparseable reply: %v", err), v.model.Name())
	}

	return v.materialize(kind, field, original, parsed)
}

// materialize converts a decoded reply into a Result, enforcing the
// kind's type contract on the returned value.
func (v *Validator) materialize(kind FieldKind, field, original string, parsed fieldReply) Result {
	result := Result{
		IsValid:       parsed.IsValid,
		OriginalValue: &original,
		Confidence:    parsed.Confidence,
		ModelUsed:     v.model.Name(),
	}

	if parsed.Explanation != "" {
		result.Warnings = append(result.Warnings, parsed.Explanation)
	}

	value, err := kind.coerce(parsed.Value)
	if err != nil {
		result.IsValid = false
		result.Value = nil
		result.ErrorMessage = err.Error()
		return result
	}

	result.Value = value
	if value == nil && result.IsValid {
		// model declined to produce a value; keep the record sparse
		result.IsValid = false
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("could not determine %s", field)
		}
	}

	return result
}
