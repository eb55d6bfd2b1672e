package entities

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ManifestVersion is the only smithy-build.json format version produced.
const ManifestVersion = "1.0"

// Manifest is the root of a smithy-build.json document.
type Manifest struct {
	Version     string         `json:"version"`
	Projections *ProjectionSet `json:"projections"`
}

// NewManifest returns an empty manifest of the current version.
func NewManifest() *Manifest {
	return &Manifest{
		Version:     ManifestVersion,
		Projections: NewProjectionSet(),
	}
}

// ProjectionSet maps projection keys to entries, in insertion order.
type ProjectionSet struct {
	entries *orderedmap.OrderedMap[string, ProjectionEntry]
}

// NewProjectionSet returns an empty ProjectionSet.
func NewProjectionSet() *ProjectionSet {
	return &ProjectionSet{entries: orderedmap.New[string, ProjectionEntry]()}
}

func (s *ProjectionSet) init() {
	if s.entries == nil {
		s.entries = orderedmap.New[string, ProjectionEntry]()
	}
}

// Len returns the number of projections.
func (s *ProjectionSet) Len() int {
	if s == nil || s.entries == nil {
		return 0
	}
	return s.entries.Len()
}

// Get returns the entry stored under key.
func (s *ProjectionSet) Get(key string) (ProjectionEntry, bool) {
	if s == nil || s.entries == nil {
		return ProjectionEntry{}, false
	}
	return s.entries.Get(key)
}

// Set stores entry under key. An existing key keeps its position.
func (s *ProjectionSet) Set(key string, entry ProjectionEntry) {
	s.init()
	s.entries.Set(key, entry)
}

// Keys returns the projection keys in insertion order.
func (s *ProjectionSet) Keys() []string {
	if s == nil || s.entries == nil {
		return nil
	}
	keys := make([]string, 0, s.entries.Len())
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// MarshalJSON writes the projections as a JSON object in insertion order.
// HTML characters are left unescaped.
func (s *ProjectionSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		entry, _ := s.Get(key)
		if err := WriteJSON(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := WriteJSON(&buf, entry); err != nil {
			return nil, fmt.Errorf("failed to encode projection %q: %w", key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the member order.
func (s *ProjectionSet) UnmarshalJSON(data []byte) error {
	s.entries = orderedmap.New[string, ProjectionEntry]()
	return jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		// ObjectEach hands over keys already unescaped.
		name := string(key)
		if dataType != jsonparser.Object {
			return fmt.Errorf("projection %q must be an object, got %v", name, dataType)
		}
		var entry ProjectionEntry
		if err := json.Unmarshal(value, &entry); err != nil {
			return fmt.Errorf("failed to decode projection %q: %w", name, err)
		}
		s.entries.Set(name, entry)
		return nil
	})
}
