package validation

// LowConfidenceThreshold marks results worth flagging during review.
const LowConfidenceThreshold = 0.7

// Result captures one field's validation outcome. A failed call or parse
// becomes an invalid Result, never an error: one field's failure must not
// abort processing of the others.
type Result struct {
	Value         any      `json:"value"`
	IsValid       bool     `json:"is_valid"`
	OriginalValue *string  `json:"original_value"`
	Confidence    float64  `json:"confidence"`
	Warnings      []string `json:"warnings,omitempty"`
	ErrorMessage  string   `json:"error_message,omitempty"`
	ModelUsed     string   `json:"model_used,omitempty"`
}

// NullResult is the short-circuit outcome for absent input: absence is
// never an error, so no model call is made.
func NullResult() Result {
	return Result{
		Value:      nil,
		IsValid:    true,
		Confidence: 1.0,
	}
}

// FailedResult captures a call or parse failure for a single field.
func FailedResult(original, message, modelUsed string) Result {
	return Result{
		Value:         nil,
		IsValid:       false,
		OriginalValue: &original,
		ErrorMessage:  message,
		ModelUsed:     modelUsed,
	}
}
