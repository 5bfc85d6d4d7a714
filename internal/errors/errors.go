// Package errors provides centralized error definitions and error handling utilities
// for prodpath. It defines sentinel errors, typed errors carrying context,
// and classification helpers used by the command layer to decide what to show.
//
// # Error Types
//
// Domain-specific errors:
//   - TreeError: errors raised while analyzing a tree (empty tree, overflow)
//   - InputError: errors raised while decoding user input (trees, text)
//
// Semantic errors:
//   - ValidationError: invalid configuration or flag values
//
// # Usage
//
//	if _, err := tree.MaxProduct(root); errors.Is(err, errors.ErrEmptyTree) {
//	    fmt.Println("n/a")
//	}
//
//	var inputErr *errors.InputError
//	if errors.As(err, &inputErr) {
//	    fmt.Println(inputErr.Source)
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for conditions that are reported but expected, such as an empty tree.
	SeverityInfo
	// SeverityWarning is for bad user input.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Tree-related sentinel errors
var (
	// ErrEmptyTree indicates that no downward path exists because the tree has no nodes.
	ErrEmptyTree = New("empty tree")
	// ErrOverflow indicates that a path product exceeds the int64 range.
	ErrOverflow = New("product overflows int64")
	// ErrInvalidTree indicates that a tree description could not be decoded.
	ErrInvalidTree = New("invalid tree")
)

// Word-frequency sentinel errors
var (
	// ErrNoWords indicates that the text contains no word outside the banned list.
	ErrNoWords = New("no eligible words")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrInvalidConfig indicates that the configuration failed validation.
	ErrInvalidConfig = New("invalid configuration")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// ProdpathError is the base interface for typed errors in this module.
type ProdpathError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// format renders "<kind> [k=v, ...]: message: cause".
func (e *baseError) format(kind string, parts []string) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// TreeError represents a failure while analyzing a tree.
//
// Example:
//
//	err := errors.NewTreeError("multiply path product", errors.ErrOverflow).WithNodeValue(-7)
//	fmt.Println(err) // "tree error [node=-7]: multiply path product: product overflows int64"
type TreeError struct {
	baseError
	NodeValue *int64
}

// NewTreeError creates a new TreeError.
func NewTreeError(message string, cause error) *TreeError {
	sev := SeverityError
	if errors.Is(cause, ErrEmptyTree) {
		sev = SeverityInfo
	}
	return &TreeError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   sev,
			userFacing: true,
		},
	}
}

// WithNodeValue records the value of the node being processed when the error occurred.
func (e *TreeError) WithNodeValue(v int64) *TreeError {
	e.NodeValue = &v
	return e
}

// Error returns the formatted error message.
func (e *TreeError) Error() string {
	var parts []string
	if e.NodeValue != nil {
		parts = append(parts, fmt.Sprintf("node=%d", *e.NodeValue))
	}
	return e.format("tree error", parts)
}

// InputError represents input that could not be decoded.
//
// Example:
//
//	err := errors.NewInputError("expected integer", errors.ErrInvalidTree).
//		WithSource("tree.yaml").WithPosition(3)
type InputError struct {
	baseError
	Source   string
	Position int
}

// NewInputError creates a new InputError.
func NewInputError(message string, cause error) *InputError {
	return &InputError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Position: -1,
	}
}

// WithSource names the input (file path, "stdin", "flag").
func (e *InputError) WithSource(source string) *InputError {
	e.Source = source
	return e
}

// WithPosition records the element index or line where decoding failed.
func (e *InputError) WithPosition(pos int) *InputError {
	e.Position = pos
	return e
}

// Error returns the formatted error message.
func (e *InputError) Error() string {
	var parts []string
	if e.Source != "" {
		parts = append(parts, fmt.Sprintf("source=%s", e.Source))
	}
	if e.Position >= 0 {
		parts = append(parts, fmt.Sprintf("pos=%d", e.Position))
	}
	return e.format("input error", parts)
}

// Is matches ErrInvalidInput in addition to the wrapped cause.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("unknown arithmetic mode")
//	err = err.WithField("tree.arithmetic").WithValue("float")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return e.format("validation error", parts)
}

// Is matches ErrInvalidInput in addition to the wrapped cause.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var perr ProdpathError
	if As(err, &perr) {
		return perr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement ProdpathError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var perr ProdpathError
	if As(err, &perr) {
		return perr.Severity()
	}
	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
