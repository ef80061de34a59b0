package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pupperworks/pupper/pkg/formatting"
)

// RawRecord is a full candidate dog record as received from the client.
// Nil fields were not supplied.
type RawRecord struct {
	Name             *string `json:"name"`
	ShelterName      *string `json:"shelter_name"`
	City             *string `json:"city"`
	State            *string `json:"state"`
	Species          *string `json:"species"`
	Description      *string `json:"description"`
	Color            *string `json:"color"`
	Weight           *string `json:"weight"`
	Birthday         *string `json:"birthday"`
	ShelterEntryDate *string `json:"shelter_entry_date"`
}

// batchField binds a record field name to its cleaning kind.
type batchField struct {
	name      string
	kind      FieldKind
	maxLength int
	value     func(*RawRecord) *string
}

var batchFields = []batchField{
	{"name", KindText, 100, func(r *RawRecord) *string { return r.Name }},
	{"shelter_name", KindText, 100, func(r *RawRecord) *string { return r.ShelterName }},
	{"city", KindText, 50, func(r *RawRecord) *string { return r.City }},
	{"state", KindState, 0, func(r *RawRecord) *string { return r.State }},
	{"species", KindBreed, 0, func(r *RawRecord) *string { return r.Species }},
	{"description", KindText, 500, func(r *RawRecord) *string { return r.Description }},
	{"color", KindColor, 0, func(r *RawRecord) *string { return r.Color }},
	{"weight", KindWeight, 0, func(r *RawRecord) *string { return r.Weight }},
	{"birthday", KindDate, 0, func(r *RawRecord) *string { return r.Birthday }},
	{"shelter_entry_date", KindDate, 0, func(r *RawRecord) *string { return r.ShelterEntryDate }},
}

const batchPreamble = `You are a data cleaning and validation expert for a dog adoption database. Given a JSON object with dog data fields, clean and validate each field as described below. Return a single JSON object keyed by field name, where each entry carries the cleaned value, confidence (0.0-1.0), explanation, and is_valid. If a field cannot be cleaned, set its value to null and is_valid to false.

Field rules:
- name: clean the dog's name (no profanity, max 100 chars)
- shelter_name: clean the shelter name (max 100 chars)
- city: clean the city (max 50 chars)
- state: normalize to the 2-letter US state abbreviation
- species: admit only "Labrador Retriever" or "Labrador Retriever Mix"; anything else is null and invalid
- description: clean the description (max 500 chars)
- color: normalize to a standard Labrador color (Black, Yellow, Chocolate, Golden, Cream, Red, Silver, Charcoal)
- weight: parse to pounds as a float (1 kg = 2.20462 lbs; average ranges; plausible range 5-150)
- birthday: parse to YYYY-MM-DD (reject future dates and dates more than 50 years past)
- shelter_entry_date: parse to YYYY-MM-DD

Respond with ONLY a JSON object in this format:
{
  "name": {"value": ..., "confidence": ..., "explanation": ..., "is_valid": ...},
  "shelter_name": {...},
  ...
}`

// ValidateRecord cleans every supplied field of a record with exactly one
// model call. Absent fields short-circuit to valid-null locally. If the
// call or its parse fails, every supplied field is marked invalid with a
// shared message: the batch never yields a partial result.
func (v *Validator) ValidateRecord(ctx context.Context, record *RawRecord) map[string]Result {
	results := make(map[string]Result, len(batchFields))
	supplied := make(map[string]string)

	for _, field := range batchFields {
		raw := field.value(record)
		if raw == nil {
			results[field.name] = NullResult()
			continue
		}
		supplied[field.name] = strings.TrimSpace(*raw)
	}

	if len(supplied) == 0 {
		return results
	}

	payload, err := json.Marshal(supplied)
	if err != nil {
		return v.failBatch(results, supplied, fmt.Sprintf("encode record: %v", err))
	}

	reply, err := v.model.Complete(
		ctx,
		batchPreamble,
		fmt.Sprintf("Clean and validate this dog data: %s", payload),
	)
	if err != nil {
		return v.failBatch(results, supplied, err.Error())
	}

	parsed, err := formatting.Parse[map[string]fieldReply](reply)
	if err != nil {
		return v.failBatch(results, supplied, fmt.Sprintf("unparseable reply: %v", err))
	}

	for _, field := range batchFields {
		original, ok := supplied[field.name]
		if !ok {
			continue
		}

		sub, ok := parsed[field.name]
		if !ok {
			results[field.name] = FailedResult(original, "missing from batch reply", v.model.Name())
			continue
		}

		results[field.name] = v.materialize(field.kind, field.name, original, sub)
	}

	return results
}

func (v *Validator) failBatch(results map[string]Result, supplied map[string]string, message string) map[string]Result {
	v.logger.Error("batch validation failed", "error", message)

	for name, original := range supplied {
		results[name] = FailedResult(original, message, v.model.Name())
	}
	return results
}
