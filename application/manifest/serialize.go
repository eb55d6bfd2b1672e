package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sdkgen-dev/smithybuild/domain/entities"
)

type serializeConfig struct {
	indent int
}

// SerializeOption configures Serialize.
type SerializeOption func(*serializeConfig)

// WithIndent sets the number of spaces per nesting level. Zero produces
// compact output.
func WithIndent(n int) SerializeOption {
	return func(c *serializeConfig) {
		if n >= 0 {
			c.indent = n
		}
	}
}

// Serialize renders m as smithy-build.json. Equal manifests always produce
// identical bytes: members keep a fixed order, projections their insertion
// order and plugins are sorted by name. HTML characters are not escaped and
// the output ends with a newline.
func Serialize(m *entities.Manifest, opts ...SerializeOption) ([]byte, error) {
	cfg := serializeConfig{indent: entities.DefaultIndent}
	for _, opt := range opts {
		opt(&cfg)
	}

	doc := *m
	if doc.Projections == nil {
		doc.Projections = entities.NewProjectionSet()
	}

	var compact bytes.Buffer
	enc := json.NewEncoder(&compact)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if cfg.indent == 0 {
		return compact.Bytes(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(compact.Bytes()), "", strings.Repeat(" ", cfg.indent)); err != nil {
		return nil, fmt.Errorf("failed to indent manifest: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Parse decodes a serialized manifest, keeping the projection order.
func Parse(data []byte) (*entities.Manifest, error) {
	var m entities.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if m.Projections == nil {
		m.Projections = entities.NewProjectionSet()
	}
	return &m, nil
}
