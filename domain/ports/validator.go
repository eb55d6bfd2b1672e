package ports

import "github.com/sdkgen-dev/smithybuild/domain/entities"

// ServiceValidator checks that a model document declares exactly one service.
type ServiceValidator interface {
	// Validate returns the shape id of the single service of doc.
	Validate(doc *entities.ServiceDocument) (string, error)
}

// ManifestValidator validates serialized manifests against their schema.
type ManifestValidator interface {
	// Validate checks data against the manifest schema.
	Validate(data []byte) (*entities.ValidationResult, error)
}
