package validation

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sdkgen-dev/smithybuild/application/schema"
	"github.com/sdkgen-dev/smithybuild/domain/entities"
	"github.com/sdkgen-dev/smithybuild/domain/errors"
)

// ManifestValidator validates serialized manifests against a JSON schema.
type ManifestValidator struct {
	schema *jsonschema.Schema
}

// NewManifestValidator creates a validator for the schema generated from
// the manifest entities.
func NewManifestValidator() (*ManifestValidator, error) {
	raw, err := schema.ManifestSchema()
	if err != nil {
		return nil, err
	}
	return NewManifestValidatorFromSchema(schema.ManifestSchemaID, raw)
}

// NewManifestValidatorFromSchema compiles raw as the schema identified by url.
func NewManifestValidatorFromSchema(url string, raw []byte) (*ManifestValidator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, &errors.SchemaError{Type: "Manifest", Err: fmt.Errorf("failed to add schema resource: %w", err)}
	}

	sch, err := compiler.Compile(url)
	if err != nil {
		return nil, &errors.SchemaError{Type: "Manifest", Err: fmt.Errorf("invalid schema: %w", err)}
	}
	return &ManifestValidator{schema: sch}, nil
}

// Validate checks data against the schema. A document that does not match is
// reported through the result; only malformed JSON is returned as an error.
func (v *ManifestValidator) Validate(data []byte) (*entities.ValidationResult, error) {
	result := &entities.ValidationResult{Valid: true}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj interface{}
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("failed to prepare validation object: %w", err)
	}

	if err := v.schema.Validate(obj); err != nil {
		result.Valid = false
		var ve *jsonschema.ValidationError
		if stdErrors.As(err, &ve) {
			result.Errors = appendLeaves(result.Errors, ve)
		} else {
			result.Errors = append(result.Errors, entities.ValidationError{
				Field:   "/",
				Message: err.Error(),
			})
		}
	}

	return result, nil
}

// appendLeaves flattens the cause tree of ve into its most specific errors.
func appendLeaves(dst []entities.ValidationError, ve *jsonschema.ValidationError) []entities.ValidationError {
	if len(ve.Causes) == 0 {
		field := ve.InstanceLocation
		if field == "" {
			field = "/"
		}
		return append(dst, entities.ValidationError{Field: field, Message: ve.Message})
	}
	for _, cause := range ve.Causes {
		dst = appendLeaves(dst, cause)
	}
	return dst
}
