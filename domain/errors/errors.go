// Package errors provides domain-specific error types for smithybuild.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/sdkgen-dev/smithybuild/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is an interface for custom error types that can convert themselves
// to a structured ErrorDetail. New error types only need to implement this
// interface without modifying ToErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
// This function recognizes custom error types and categorizes them appropriately.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	// If the error is already a *ErrorDetail (entity), use it directly.
	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	var pe *fs.PathError
	if stdErrors.As(err, &pe) {
		return &entities.ErrorDetail{
			Message:    err.Error(),
			Type:       "io",
			Code:       pe.Op,
			File:       pe.Path,
			IsNotFound: stdErrors.Is(err, fs.ErrNotExist),
		}
	}

	// Generic error - categorize as internal
	return entities.NewErrorDetail("internal", err.Error())
}

// ParseError reports a model document that is not well-formed JSON.
type ParseError struct {
	Err    error
	File   string
	Offset int64 // Byte offset of the syntax error, 0 if unknown
}

func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("%s: invalid JSON at offset %d: %v", e.File, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s: invalid JSON: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ParseError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "validation", Code: "parse", File: e.File}
}

// CardinalityError reports a model document that does not declare exactly one service.
type CardinalityError struct {
	File     string
	Services []string // Service shape ids found, sorted
	Count    int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("%s: there must be exactly one service in each model file, but found %d: [%s]",
		e.File, e.Count, strings.Join(e.Services, ", "))
}

// ToErrorDetail implements DetailedError.
func (e *CardinalityError) ToErrorDetail() *entities.ErrorDetail {
	detail := entities.NewErrorDetail("validation", e.Error()).
		WithCode("cardinality").
		WithDetails(map[string]any{"count": e.Count, "services": e.Services})
	detail.File = e.File
	return detail
}

// MalformedNameError reports a file name a projection key cannot be derived from.
type MalformedNameError struct {
	File     string
	Segments int
}

func (e *MalformedNameError) Error() string {
	return fmt.Sprintf("%s: file name must have the form <sdkId>.<version>.<ext>, found %d segment(s)",
		e.File, e.Segments)
}

// ToErrorDetail implements DetailedError.
func (e *MalformedNameError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "validation", Code: "malformed_name", File: e.File}
}

// DuplicateKeyError reports two model documents deriving the same projection key.
type DuplicateKeyError struct {
	Key    string
	First  string // File that registered the key
	Second string // File that tried to register it again
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: projection %q is already defined by %s", e.Second, e.Key, e.First)
}

// ToErrorDetail implements DetailedError.
func (e *DuplicateKeyError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message: e.Error(),
		Type:    "validation",
		Code:    "duplicate_key",
		File:    e.Second,
		Details: map[string]any{"key": e.Key, "first": e.First},
	}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// SchemaError represents a schema generation or validation error.
type SchemaError struct {
	Err  error
	Type string
}

func (e *SchemaError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("schema error for type %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("schema error: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *SchemaError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "validation", Code: "schema"}
}

// ManifestValidationError reports a serialized manifest that does not satisfy
// the manifest schema.
type ManifestValidationError struct {
	Violations []entities.ValidationError
}

func (e *ManifestValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return fmt.Sprintf("manifest does not match its schema: %s", strings.Join(msgs, "; "))
}

// ToErrorDetail implements DetailedError.
func (e *ManifestValidationError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "validation", Code: "manifest_schema"}
}
