package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/levdist/internal/segment"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "pool.max_workers")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// maxPoolWorkers bounds any configured pool size.
const maxPoolWorkers = 1 << 16

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateSegmentation()...)
	errors = append(errors, c.validatePool()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateSegmentation validates the SegmentationConfig
func (c *Config) validateSegmentation() []ValidationError {
	if _, err := segment.ParseMode(c.Segmentation.Mode); err != nil {
		return []ValidationError{{
			Field:   "segmentation.mode",
			Value:   c.Segmentation.Mode,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(segment.ValidModes(), ", ")),
		}}
	}
	return nil
}

// validatePool validates the PoolConfig
func (c *Config) validatePool() []ValidationError {
	var errors []ValidationError

	// 0 means one worker per CPU
	if c.Pool.DefaultWorkers < 0 {
		errors = append(errors, ValidationError{
			Field:   "pool.default_workers",
			Value:   c.Pool.DefaultWorkers,
			Message: "must be non-negative",
		})
	}

	// 0 means no limit
	if c.Pool.MaxWorkers < 0 {
		errors = append(errors, ValidationError{
			Field:   "pool.max_workers",
			Value:   c.Pool.MaxWorkers,
			Message: "must be non-negative",
		})
	}

	if c.Pool.MaxWorkers > maxPoolWorkers {
		errors = append(errors, ValidationError{
			Field:   "pool.max_workers",
			Value:   c.Pool.MaxWorkers,
			Message: fmt.Sprintf("exceeds maximum of %d", maxPoolWorkers),
		})
	}

	if c.Pool.MaxWorkers > 0 && c.Pool.DefaultWorkers > c.Pool.MaxWorkers {
		errors = append(errors, ValidationError{
			Field:   "pool.default_workers",
			Value:   c.Pool.DefaultWorkers,
			Message: fmt.Sprintf("exceeds pool.max_workers (%d)", c.Pool.MaxWorkers),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if strings.ContainsRune(c.Logging.Dir, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "logging.dir",
			Value:   c.Logging.Dir,
			Message: "path contains invalid null character",
		})
	}

	return errors
}
