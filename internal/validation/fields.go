package validation

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// FieldKind is the closed set of cleanable field kinds. Each kind carries
// its own instruction template and reply coercion, selected by explicit
// match rather than free-form dispatch on field names.
type FieldKind int

const (
	KindText FieldKind = iota
	KindWeight
	KindDate
	KindState
	KindColor
	KindBreed
)

var kindNames = map[string]FieldKind{
	"text":   KindText,
	"weight": KindWeight,
	"date":   KindDate,
	"state":  KindState,
	"color":  KindColor,
	"breed":  KindBreed,
}

// ParseFieldKind resolves a kind name from an API request.
func ParseFieldKind(s string) (FieldKind, error) {
	kind, ok := kindNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return kind, nil
}

func (k FieldKind) String() string {
	switch k {
	case KindWeight:
		return "weight"
	case KindDate:
		return "date"
	case KindState:
		return "state"
	case KindColor:
		return "color"
	case KindBreed:
		return "breed"
	default:
		return "text"
	}
}

// standardColors is the closed Labrador coat palette.
var standardColors = []string{
	"Black", "Yellow", "Chocolate", "Golden",
	"Cream", "Red", "Silver", "Charcoal",
}

// admittedBreeds are the only breed values the adoption database accepts.
var admittedBreeds = []string{
	"Labrador Retriever",
	"Labrador Retriever Mix",
}

const replySchema = `Respond with ONLY a JSON object:
{
  "value": <cleaned value or null>,
  "confidence": float (0.0-1.0),
  "explanation": "brief explanation",
  "is_valid": boolean
}`

// instruction builds the cleaning task for this kind. field and maxLength
// only apply to KindText.
func (k FieldKind) instruction(field string, maxLength int) string {
	var rules string

	switch k {
	case KindWeight:
		rules = `You are a data cleaning expert for a dog adoption database. Parse weight values from arbitrary formats and convert them to pounds (float).

Examples:
- "32 pounds" -> 32.0
- "32.5 lbs" -> 32.5
- "thirty two pounds" -> 32.0
- "15 kg" -> 33.1 (convert kilograms)
- "about 30 pounds" -> 30.0
- "30-35 pounds" -> 32.5 (average of the range)
- "medium weight" -> null (cannot determine)

Rules:
1. Always convert to pounds
2. Convert kg to lbs (1 kg = 2.20462 lbs)
3. Handle spelled-out numbers (thirty two -> 32)
4. For ranges, use the average
5. If uncertain, return null
6. Reasonable weight range: 5-150 pounds`

	case KindDate:
		rules = `You are a data cleaning expert for a dog adoption database. Parse date values from arbitrary formats and convert them to ISO format (YYYY-MM-DD).

Examples:
- "12/25/2023" -> "2023-12-25"
- "December 25, 2023" -> "2023-12-25"
- "25-12-2023" -> "2023-12-25"
- "yesterday" -> null (no specific date)

Rules:
1. Always return ISO format (YYYY-MM-DD)
2. Handle both MM/DD and DD/MM forms intelligently
3. If the date is ambiguous, return null
4. If the date is in the future, return null
5. If the date is more than 50 years in the past, return null`

	case KindState:
		rules = `You are a data cleaning expert for a dog adoption database. Normalize US state names to their standard 2-letter USPS abbreviations.

Examples:
- "California" -> "CA"
- "ca" -> "CA"
- "new york" -> "NY"
- "North Carolina" -> "NC"

Rules:
1. Always return the 2-letter uppercase abbreviation
2. Handle full names, abbreviations, and common misspellings
3. If not a valid US state, return null`

	case KindColor:
		rules = fmt.Sprintf(`You are a data cleaning expert for a dog adoption database. Normalize dog color descriptions to standard Labrador Retriever colors.

Standard colors: %s.

Examples:
- "dark black" -> "Black"
- "golden yellow" -> "Golden"
- "chocolate brown" -> "Chocolate"
- "light yellow" -> "Cream"
- "silver gray" -> "Silver"

Rules:
1. Normalize to one of the standard colors, title case
2. Handle variations and descriptions
3. If the color is unclear, return null`, strings.Join(standardColors, ", "))

	case KindBreed:
		rules = `You are a dog breed validation expert for a Labrador Retriever adoption database. Determine whether a breed or species description matches a Labrador Retriever.

Common variations: Labrador Retriever, Lab, Labrador, Yellow Lab, Black Lab, Chocolate Lab.

Rules:
1. If clearly a Labrador Retriever, return "Labrador Retriever"
2. If a mixed breed including Lab, return "Labrador Retriever Mix"
3. Anything else, return null with is_valid false`

	default:
		rules = fmt.Sprintf(`You are a data cleaning expert for a dog adoption database. Clean and validate the '%s' field.

Rules:
1. Remove excessive whitespace and normalize spacing
2. Remove inappropriate content or profanity
3. Truncate to %d characters if needed
4. Preserve meaningful content
5. If the content is completely inappropriate, return null`, field, maxLength)
	}

	return rules + "\n\n" + replySchema
}

// userMessage builds the per-call user content for this kind.
func (k FieldKind) userMessage(field, value string) string {
	switch k {
	case KindWeight:
		return fmt.Sprintf("Parse this weight value: '%s'", value)
	case KindDate:
		return fmt.Sprintf("Parse this date value: '%s'", value)
	case KindState:
		return fmt.Sprintf("Normalize this state value: '%s'", value)
	case KindColor:
		return fmt.Sprintf("Normalize this color value: '%s'", value)
	case KindBreed:
		return fmt.Sprintf("Validate if this is a Labrador Retriever: '%s'", value)
	default:
		return fmt.Sprintf("Clean this %s value: '%s'", field, value)
	}
}

// coerce checks a decoded reply value against the kind's type contract.
// Returns the typed value, or an error when the model's reply violates
// the contract it was instructed to follow.
func (k FieldKind) coerce(value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	switch k {
	case KindWeight:
		weight, ok := value.(float64)
		if !ok {
			return nil, fmt.Errorf("weight must be a number, got %T", value)
		}
		if weight < 5 || weight > 150 {
			return nil, fmt.Errorf("weight %.1f outside plausible range", weight)
		}
		return weight, nil

	case KindDate:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("date must be a string, got %T", value)
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return nil, fmt.Errorf("date %q is not ISO format", s)
		}
		return s, nil

	case KindState:
		s, ok := value.(string)
		if !ok || len(s) != 2 {
			return nil, fmt.Errorf("state must be a 2-letter code, got %v", value)
		}
		return strings.ToUpper(s), nil

	case KindColor:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("color must be a string, got %T", value)
		}
		if !slices.Contains(standardColors, s) {
			return nil, fmt.Errorf("color %q is not a standard color", s)
		}
		return s, nil

	case KindBreed:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("breed must be a string, got %T", value)
		}
		if !slices.Contains(admittedBreeds, s) {
			return nil, fmt.Errorf("breed %q is not admitted", s)
		}
		return s, nil

	default:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("text must be a string, got %T", value)
		}
		return s, nil
	}
}
