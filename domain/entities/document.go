package entities

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a JSON object whose members keep the order they were decoded in.
//
// A decoded document is a tree of values, each being one of *Object, []any,
// string, json.Number, bool or nil.
type Object = orderedmap.OrderedMap[string, any]

// NewObject returns an empty Object with room for n members.
func NewObject(n int) *Object {
	if n > 0 {
		return orderedmap.New[string, any](orderedmap.WithCapacity[string, any](n))
	}
	return orderedmap.New[string, any]()
}

// ServiceDocument is one model file, decoded.
type ServiceDocument struct {
	// Name is the base file name, e.g. "mq.v1.json".
	Name string

	// Path is the absolute path of the file.
	Path string

	// Root is the decoded document tree.
	Root any
}

// WriteJSON appends the JSON encoding of v to buf. HTML characters are left
// unescaped and no newline is added.
func WriteJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
