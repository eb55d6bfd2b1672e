// Package manifest assembles smithy-build.json manifests from validated
// model documents.
package manifest

import (
	"path/filepath"
	"strings"

	"github.com/sdkgen-dev/smithybuild/domain/entities"
	"github.com/sdkgen-dev/smithybuild/domain/errors"
)

// DeriveProjectionKey derives the projection key from a model file name of
// the form <sdkId>.<version>.<ext>. Segments past the third are ignored.
func DeriveProjectionKey(fileName string) (entities.ProjectionKey, error) {
	name := filepath.Base(fileName)
	segments := strings.Split(name, ".")
	if len(segments) < 3 {
		return entities.ProjectionKey{}, &errors.MalformedNameError{File: name, Segments: len(segments)}
	}

	key := entities.ProjectionKey{
		SdkID:   strings.ToLower(strings.ReplaceAll(segments[0], "-", "")),
		Version: strings.ToLower(segments[1]),
	}
	if key.SdkID == "" || key.Version == "" {
		return entities.ProjectionKey{}, &errors.MalformedNameError{File: name, Segments: len(segments)}
	}
	return key, nil
}
