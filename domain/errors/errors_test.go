package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/sdkgen-dev/smithybuild/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	baseErr := fmt.Errorf("unexpected end of JSON input")
	err := &ParseError{
		File:   "mq.v1.json",
		Offset: 42,
		Err:    baseErr,
	}

	assert.Equal(t, "mq.v1.json: invalid JSON at offset 42: unexpected end of JSON input", err.Error())
	assert.True(t, errors.Is(err, baseErr))

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "mq.v1.json", parseErr.File)
}

func TestParseError_NoOffset(t *testing.T) {
	err := &ParseError{File: "mq.v1.json", Err: fmt.Errorf("document root must be an object")}

	assert.Equal(t, "mq.v1.json: invalid JSON: document root must be an object", err.Error())
}

func TestCardinalityError(t *testing.T) {
	err := &CardinalityError{
		File:     "mq.v1.json",
		Count:    2,
		Services: []string{"com.example#A", "com.example#B"},
	}

	assert.Equal(t,
		"mq.v1.json: there must be exactly one service in each model file, but found 2: [com.example#A, com.example#B]",
		err.Error())

	detail := err.ToErrorDetail()
	assert.Equal(t, "cardinality", detail.Code)
	assert.Equal(t, "mq.v1.json", detail.File)
	assert.Equal(t, 2, detail.Details["count"])
}

func TestCardinalityError_NoServices(t *testing.T) {
	err := &CardinalityError{File: "empty.v1.json"}

	assert.Equal(t, "empty.v1.json: there must be exactly one service in each model file, but found 0: []", err.Error())
}

func TestMalformedNameError(t *testing.T) {
	err := &MalformedNameError{File: "mq.json", Segments: 2}

	assert.Equal(t, "mq.json: file name must have the form <sdkId>.<version>.<ext>, found 2 segment(s)", err.Error())
	assert.Equal(t, "malformed_name", err.ToErrorDetail().Code)
}

func TestDuplicateKeyError(t *testing.T) {
	err := &DuplicateKeyError{
		Key:    "foobar.v1",
		First:  "foo-bar.v1.json",
		Second: "FooBar.V1.json",
	}

	assert.Equal(t, `FooBar.V1.json: projection "foobar.v1" is already defined by foo-bar.v1.json`, err.Error())

	detail := err.ToErrorDetail()
	assert.Equal(t, "duplicate_key", detail.Code)
	assert.Equal(t, "foo-bar.v1.json", detail.Details["first"])
}

func TestConfigError(t *testing.T) {
	baseErr := fmt.Errorf("invalid format")
	err := &ConfigError{
		Field: "modelsDir",
		Err:   baseErr,
	}

	assert.Equal(t, "config validation failed for field 'modelsDir': invalid format", err.Error())
	assert.True(t, errors.Is(err, baseErr))

	var confErr *ConfigError
	require.True(t, errors.As(err, &confErr))
	assert.Equal(t, "modelsDir", confErr.Field)
}

func TestConfigError_NoField(t *testing.T) {
	baseErr := fmt.Errorf("missing required fields")
	err := &ConfigError{
		Err: baseErr,
	}

	assert.Equal(t, "config validation failed: missing required fields", err.Error())
}

func TestSchemaError(t *testing.T) {
	baseErr := fmt.Errorf("unsupported type")
	err := &SchemaError{
		Type: "ProjectionEntry",
		Err:  baseErr,
	}

	assert.Equal(t, "schema error for type ProjectionEntry: unsupported type", err.Error())
	assert.True(t, errors.Is(err, baseErr))

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "ProjectionEntry", schemaErr.Type)
}

func TestSchemaError_NoType(t *testing.T) {
	baseErr := fmt.Errorf("invalid schema")
	err := &SchemaError{
		Err: baseErr,
	}

	assert.Equal(t, "schema error: invalid schema", err.Error())
}

func TestManifestValidationError(t *testing.T) {
	err := &ManifestValidationError{Violations: []entities.ValidationError{
		{Field: "/projections/mq.v1", Message: "missing properties: 'imports'"},
		{Field: "/version", Message: "expected string"},
	}}

	assert.Equal(t,
		"manifest does not match its schema: /projections/mq.v1: missing properties: 'imports'; /version: expected string",
		err.Error())
}

func TestToErrorDetail(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ToErrorDetail(nil))
	})

	t.Run("detailed error through wrapping", func(t *testing.T) {
		err := fmt.Errorf("run aborted: %w", &MalformedNameError{File: "x.json", Segments: 2})
		detail := ToErrorDetail(err)
		assert.Equal(t, "validation", detail.Type)
		assert.Equal(t, "x.json", detail.File)
	})

	t.Run("entity passes through", func(t *testing.T) {
		entity := entities.NewErrorDetail("config", "bad").WithCode("output")
		assert.Same(t, entity, ToErrorDetail(entity))
	})

	t.Run("path error", func(t *testing.T) {
		_, err := os.ReadFile("/definitely/not/here.json")
		require.Error(t, err)
		detail := ToErrorDetail(fmt.Errorf("failed to read model: %w", err))
		assert.Equal(t, "io", detail.Type)
		assert.Equal(t, "/definitely/not/here.json", detail.File)
		assert.True(t, detail.IsNotFound)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("generic", func(t *testing.T) {
		detail := ToErrorDetail(fmt.Errorf("boom"))
		assert.Equal(t, "internal", detail.Type)
		assert.Equal(t, "boom", detail.Message)
	})
}

func TestErrorUnwrapping(t *testing.T) {
	baseErr := fmt.Errorf("base error")

	tests := []struct {
		name string
		err  error
	}{
		{"ParseError", &ParseError{File: "test", Err: baseErr}},
		{"ConfigError", &ConfigError{Field: "test", Err: baseErr}},
		{"SchemaError", &SchemaError{Type: "test", Err: baseErr}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, baseErr), "errors.Is should find base error")
			unwrapped := errors.Unwrap(tt.err)
			assert.Equal(t, baseErr, unwrapped, "errors.Unwrap should return base error")
		})
	}
}
