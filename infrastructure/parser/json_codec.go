// Package parser provides the JSON document codec and the configuration parser.
package parser

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/buger/jsonparser"
	"github.com/sdkgen-dev/smithybuild/domain/entities"
	"github.com/sdkgen-dev/smithybuild/domain/errors"
)

// codecConfig holds configuration for the JSONCodec.
type codecConfig struct {
	indent int // Spaces per nesting level, 0 for compact output
}

func defaultCodecConfig() codecConfig {
	return codecConfig{
		indent: entities.DefaultIndent,
	}
}

// CodecOption configures a JSONCodec.
type CodecOption func(*codecConfig)

// WithIndent sets the number of spaces per nesting level used by Encode.
func WithIndent(n int) CodecOption {
	return func(c *codecConfig) {
		if n >= 0 {
			c.indent = n
		}
	}
}

// JSONCodec decodes JSON into ordered document trees and pretty prints them back.
type JSONCodec struct {
	config codecConfig
}

// NewJSONCodec creates a new JSONCodec.
func NewJSONCodec(opts ...CodecOption) *JSONCodec {
	cfg := defaultCodecConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &JSONCodec{config: cfg}
}

// Decode parses data into a tree of *entities.Object, []any, string,
// json.Number, bool and nil. Object member order and number literals are
// preserved as written. Documents that could not be written back unchanged
// are rejected: invalid UTF-8, escapes that do not decode to text, and
// objects with duplicate members.
func (c *JSONCodec) Decode(name string, data []byte) (any, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		parseErr := &errors.ParseError{File: name, Err: err}
		var syntaxErr *json.SyntaxError
		if stdErrors.As(err, &syntaxErr) {
			parseErr.Offset = syntaxErr.Offset
		}
		return nil, parseErr
	}
	if offset := invalidUTF8(data); offset > 0 {
		return nil, &errors.ParseError{File: name, Offset: offset, Err: stdErrors.New("invalid UTF-8 encoding")}
	}

	value, dataType, _, err := jsonparser.Get(raw)
	if err != nil {
		return nil, &errors.ParseError{File: name, Err: err}
	}
	node, err := decodeValue(value, dataType)
	if err != nil {
		return nil, &errors.ParseError{File: name, Err: err}
	}
	return node, nil
}

// invalidUTF8 returns the 1-based offset of the first byte that is not valid
// UTF-8, or 0.
func invalidUTF8(data []byte) int64 {
	if utf8.Valid(data) {
		return 0
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return int64(i) + 1
		}
		i += size
	}
	return 0
}

func decodeValue(value []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.Object:
		obj := entities.NewObject(0)
		var memberErr error
		err := jsonparser.ObjectEach(value, func(key, member []byte, memberType jsonparser.ValueType, _ int) error {
			name := string(key)
			if _, dup := obj.Get(name); dup {
				memberErr = fmt.Errorf("duplicate member %q", name)
				return memberErr
			}
			child, err := decodeValue(member, memberType)
			if err != nil {
				memberErr = fmt.Errorf("%s: %w", name, err)
				return memberErr
			}
			obj.Set(name, child)
			return nil
		})
		if memberErr != nil {
			return nil, memberErr
		}
		if stdErrors.Is(err, jsonparser.MalformedStringEscapeError) {
			return nil, stdErrors.New("object key holds an escape sequence that is not valid text, such as a lone surrogate")
		}
		if err != nil {
			return nil, err
		}
		return obj, nil

	case jsonparser.Array:
		arr := []any{}
		var elemErr error
		_, err := jsonparser.ArrayEach(value, func(elem []byte, elemType jsonparser.ValueType, _ int, err error) {
			if elemErr != nil {
				return
			}
			if err != nil {
				elemErr = err
				return
			}
			child, err := decodeValue(elem, elemType)
			if err != nil {
				elemErr = fmt.Errorf("[%d]: %w", len(arr), err)
				return
			}
			arr = append(arr, child)
		})
		if err != nil {
			return nil, err
		}
		if elemErr != nil {
			return nil, elemErr
		}
		return arr, nil

	case jsonparser.String:
		str, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, fmt.Errorf("string \"%s\" holds an escape sequence that is not valid text, such as a lone surrogate", value)
		}
		return str, nil

	case jsonparser.Number:
		return json.Number(string(value)), nil

	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)

	case jsonparser.Null:
		return nil, nil

	default:
		return nil, fmt.Errorf("unexpected JSON value %q", value)
	}
}

// Encode pretty prints node with the configured indentation. The output ends
// with a newline and does not escape HTML characters.
func (c *JSONCodec) Encode(node any) ([]byte, error) {
	var compact bytes.Buffer
	if err := writeValue(&compact, node); err != nil {
		return nil, err
	}

	if c.config.indent == 0 {
		compact.WriteByte('\n')
		return compact.Bytes(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", strings.Repeat(" ", c.config.indent)); err != nil {
		return nil, fmt.Errorf("failed to indent document: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, node any) error {
	switch v := node.(type) {
	case *entities.Object:
		buf.WriteByte('{')
		first := true
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := entities.WriteJSON(buf, pair.Key); err != nil {
				return fmt.Errorf("failed to encode key %q: %w", pair.Key, err)
			}
			buf.WriteByte(':')
			if err := writeValue(buf, pair.Value); err != nil {
				return fmt.Errorf("%s: %w", pair.Key, err)
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case json.Number:
		if !json.Valid([]byte(v)) {
			return fmt.Errorf("invalid number literal %q", string(v))
		}
		buf.WriteString(string(v))
	case nil:
		buf.WriteString("null")
	default:
		if err := entities.WriteJSON(buf, v); err != nil {
			return fmt.Errorf("failed to encode %T: %w", v, err)
		}
	}
	return nil
}
