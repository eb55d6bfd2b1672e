// Package schema provides JSON schema generation for smithy-build.json manifests.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/sdkgen-dev/smithybuild/domain/entities"
	"github.com/sdkgen-dev/smithybuild/domain/errors"
)

// ManifestSchemaID is the $id of the manifest schema.
const ManifestSchemaID = "https://sdkgen.dev/schemas/smithy-build.json"

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	return marshal(reflector.Reflect(v))
}

// ManifestSchema returns the JSON schema of the manifest written by the
// generator. Every definition is inlined so the schema is a single resource.
func ManifestSchema() ([]byte, error) {
	entryReflector := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
		Anonymous:      true,
	}
	entry := entryReflector.Reflect(&entities.ProjectionEntry{})
	entry.Version = ""

	projectionSet := reflect.TypeOf(entities.ProjectionSet{})
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
		Anonymous:      true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.Kind() == reflect.Ptr {
				t = t.Elem()
			}
			if t != projectionSet {
				return nil
			}
			// ProjectionSet has no exported fields; it marshals as an object
			// keyed by projection name.
			return &jsonschema.Schema{
				Type:                 "object",
				Description:          "Projections keyed by <sdkId>.<version>.",
				AdditionalProperties: entry,
			}
		},
	}

	s := reflector.Reflect(&entities.Manifest{})
	s.ID = jsonschema.ID(ManifestSchemaID)
	s.Title = "smithy-build.json"

	version, ok := s.Properties.Get("version")
	if !ok {
		return nil, &errors.SchemaError{Type: "Manifest", Err: fmt.Errorf("missing version property")}
	}
	version.Const = entities.ManifestVersion

	return marshal(s)
}

func marshal(s *jsonschema.Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return buf.Bytes(), nil
}
