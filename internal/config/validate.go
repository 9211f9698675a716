package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a specific validation failure in a config file.
type ValidationError struct {
	// Field is the config key that failed validation (e.g., "outputDir").
	Field string

	// Message describes what's wrong with the value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// Validate checks a parsed config file and returns every problem found
// (empty list = valid configuration).
//
// Checks performed:
//   - source, when present, must not be blank
//   - outputDir, when present, must not be blank
//   - outputDir must not point at the source image itself
func Validate(cfg *File) []ValidationError {
	var errs []ValidationError

	if cfg.Source != nil && strings.TrimSpace(*cfg.Source) == "" {
		errs = append(errs, ValidationError{
			Field:   "source",
			Message: "must not be empty when set",
		})
	}

	if cfg.OutputDir != nil && strings.TrimSpace(*cfg.OutputDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "outputDir",
			Message: "must not be empty when set",
		})
	}

	if cfg.Source != nil && cfg.OutputDir != nil &&
		strings.TrimSpace(*cfg.Source) != "" && *cfg.Source == *cfg.OutputDir {
		errs = append(errs, ValidationError{
			Field:   "outputDir",
			Message: fmt.Sprintf("must be a directory, not the source image %q", *cfg.Source),
		})
	}

	return errs
}
