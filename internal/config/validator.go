package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/prodpath/internal/errors"
)

// ValidationErrors is a collection of validation errors
type ValidationErrors []*errors.ValidationError

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

// Is lets errors.Is(err, errors.ErrInvalidConfig) match a failed Load.
func (e ValidationErrors) Is(target error) bool {
	return target == errors.ErrInvalidConfig
}

// Unwrap exposes the individual failures to errors.As.
func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}

func invalid(field string, value any, message string) *errors.ValidationError {
	return errors.NewValidationError(message).WithField(field).WithValue(value)
}

// ValidArithmetic returns the list of valid tree.arithmetic values
func ValidArithmetic() []string {
	return []string{ArithmeticChecked, ArithmeticBig}
}

// ValidOutputFormats returns the list of valid output.format values
func ValidOutputFormats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors

	errs = append(errs, c.validateTree()...)
	errs = append(errs, c.validateWords()...)
	errs = append(errs, c.validateOutput()...)
	errs = append(errs, c.validateLogging()...)

	return errs
}

func (c *Config) validateTree() ValidationErrors {
	if slices.Contains(ValidArithmetic(), c.Tree.Arithmetic) {
		return nil
	}
	return ValidationErrors{invalid("tree.arithmetic", c.Tree.Arithmetic,
		"must be one of: "+strings.Join(ValidArithmetic(), ", "))}
}

func (c *Config) validateWords() ValidationErrors {
	var errs ValidationErrors

	if c.Words.Top < 0 {
		errs = append(errs, invalid("words.top", c.Words.Top, "must be non-negative"))
	}

	for i, w := range c.Words.Banned {
		if strings.TrimSpace(w) == "" {
			errs = append(errs, invalid(fmt.Sprintf("words.banned[%d]", i), w, "cannot be empty"))
		}
	}

	return errs
}

func (c *Config) validateOutput() ValidationErrors {
	if slices.Contains(ValidOutputFormats(), c.Output.Format) {
		return nil
	}
	return ValidationErrors{invalid("output.format", c.Output.Format,
		"must be one of: "+strings.Join(ValidOutputFormats(), ", "))}
}

func (c *Config) validateLogging() ValidationErrors {
	level := strings.ToLower(c.Logging.Level)
	if level == "" || slices.Contains(ValidLogLevels(), level) {
		return nil
	}
	return ValidationErrors{invalid("logging.level", c.Logging.Level,
		"must be one of: "+strings.Join(ValidLogLevels(), ", "))}
}
