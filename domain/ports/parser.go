package ports

import "github.com/sdkgen-dev/smithybuild/domain/entities"

// DocumentCodec converts between JSON bytes and ordered document trees.
type DocumentCodec interface {
	// Decode parses data into a document tree. name is used in errors.
	Decode(name string, data []byte) (any, error)

	// Encode pretty prints a document tree.
	Encode(node any) ([]byte, error)
}

// ConfigParser parses raw configuration bytes.
type ConfigParser interface {
	// Parse unmarshals data over cfg, leaving unset fields untouched.
	Parse(data []byte, cfg *entities.GeneratorConfig) error
}
