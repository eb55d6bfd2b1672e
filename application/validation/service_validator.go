// Package validation checks model documents and generated manifests.
package validation

import (
	"fmt"
	"sort"

	"github.com/sdkgen-dev/smithybuild/domain/entities"
	"github.com/sdkgen-dev/smithybuild/domain/errors"
)

// ServiceModelValidator checks that a Smithy JSON AST document declares
// exactly one service shape.
type ServiceModelValidator struct{}

// NewServiceModelValidator creates a new ServiceModelValidator.
func NewServiceModelValidator() *ServiceModelValidator {
	return &ServiceModelValidator{}
}

// Validate returns the shape id of the only service declared by doc.
func (v *ServiceModelValidator) Validate(doc *entities.ServiceDocument) (string, error) {
	root, ok := doc.Root.(*entities.Object)
	if !ok {
		return "", &errors.ParseError{
			File: doc.Name,
			Err:  fmt.Errorf("document root must be an object, got %s", kindOf(doc.Root)),
		}
	}

	services := ServiceIDs(root)
	if len(services) != 1 {
		return "", &errors.CardinalityError{
			File:     doc.Name,
			Count:    len(services),
			Services: services,
		}
	}
	return services[0], nil
}

// ServiceIDs returns the sorted ids of the members of the top-level "shapes"
// object whose "type" is "service".
func ServiceIDs(root *entities.Object) []string {
	node, _ := root.Get("shapes")
	shapes, ok := node.(*entities.Object)
	if !ok {
		return nil
	}

	var ids []string
	for pair := shapes.Oldest(); pair != nil; pair = pair.Next() {
		shape, ok := pair.Value.(*entities.Object)
		if !ok {
			continue
		}
		if typ, _ := shape.Get("type"); typ == "service" {
			ids = append(ids, pair.Key)
		}
	}
	sort.Strings(ids)
	return ids
}

func kindOf(node any) string {
	switch node.(type) {
	case *entities.Object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "number"
	}
}
