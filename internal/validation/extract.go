package validation

import (
	"context"
	"fmt"

	"github.com/pupperworks/pupper/pkg/formatting"
)

const extractPreamble = `You are a data extraction expert for a dog adoption database. Given the raw text of an intake document, extract the dog's details into a JSON object with these fields (use null for anything the text does not state):

name, shelter_name, city, state, species, description, color, weight, birthday, shelter_entry_date

Copy values as they appear in the text; do not normalize or invent data. Respond with ONLY the JSON object.`

// ExtractRecord pulls a candidate record out of free-form intake text.
// The extracted values are raw: callers run them through ValidateRecord
// before any use.
func (v *Validator) ExtractRecord(ctx context.Context, text string) (*RawRecord, error) {
	reply, err := v.model.Complete(
		ctx,
		extractPreamble,
		fmt.Sprintf("Extract the dog record from this document:\n\n%s", text),
	)
	if err != nil {
		return nil, fmt.Errorf("extract record: %w", err)
	}

	record, err := formatting.Parse[RawRecord](reply)
	if err != nil {
		return nil, fmt.Errorf("extract record: %w", err)
	}

	return &record, nil
}
