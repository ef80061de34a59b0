package validation

import "log/slog"

// CleanedData folds per-field results into the cleaned record: only
// fields that are valid with a non-null value appear. Absent keys mean
// "no opinion", never a placeholder.
func CleanedData(results map[string]Result) map[string]any {
	cleaned := make(map[string]any)
	for field, result := range results {
		if result.IsValid && result.Value != nil {
			cleaned[field] = result.Value
		}
	}
	return cleaned
}

// LogResults summarizes a record's validation outcome: every warning at
// info, invalid fields at warning, and a low-confidence flag below the
// threshold.
func LogResults(logger *slog.Logger, results map[string]Result, recordID string) {
	for field, result := range results {
		for _, warning := range result.Warnings {
			logger.Info("validation note",
				"record", recordID,
				"field", field,
				"note", warning,
			)
		}

		if !result.IsValid {
			logger.Warn("validation failed",
				"record", recordID,
				"field", field,
				"error", result.ErrorMessage,
			)
		}

		if result.Confidence < LowConfidenceThreshold {
			logger.Warn("low confidence",
				"record", recordID,
				"field", field,
				"confidence", result.Confidence,
			)
		}
	}
}

// AdmitSpecies applies the admission policy: the species field's validity
// gates the whole submission before any persistence or storage side
// effect.
func AdmitSpecies(results map[string]Result) error {
	species, ok := results["species"]
	if !ok || !species.IsValid || species.Value == nil {
		return ErrSpeciesRejected
	}
	return nil
}
