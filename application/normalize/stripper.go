// Package normalize rewrites model documents before they are committed.
package normalize

import (
	"github.com/sdkgen-dev/smithybuild/domain/entities"
)

// DefaultTraitKey is the member removed by StripDefaults.
const DefaultTraitKey = "smithy.api#default"

// StripDefaults removes every "smithy.api#default" member whose value is not
// the empty string. See Strip.
func StripDefaults(node any) any {
	return Strip(node, DefaultTraitKey)
}

// Strip returns a copy of node without the object members named key, at any
// depth, including objects nested in arrays. A member whose value is exactly
// "" is kept.
//
// node is never modified. Subtrees that need no change are shared between
// the input and the result; when nothing changes node itself is returned.
func Strip(node any, key string) any {
	out, _ := strip(node, key)
	return out
}

func strip(node any, key string) (any, bool) {
	switch v := node.(type) {
	case *entities.Object:
		return stripObject(v, key)
	case []any:
		return stripArray(v, key)
	default:
		return node, false
	}
}

type member struct {
	key   string
	value any
}

func stripObject(obj *entities.Object, key string) (any, bool) {
	changed := false
	members := make([]member, 0, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == key && !isEmptyString(pair.Value) {
			changed = true
			continue
		}
		value, childChanged := strip(pair.Value, key)
		changed = changed || childChanged
		members = append(members, member{key: pair.Key, value: value})
	}
	if !changed {
		return obj, false
	}

	out := entities.NewObject(len(members))
	for _, m := range members {
		out.Set(m.key, m.value)
	}
	return out, true
}

func stripArray(arr []any, key string) (any, bool) {
	var out []any
	for i, elem := range arr {
		value, changed := strip(elem, key)
		if changed && out == nil {
			out = make([]any, len(arr))
			copy(out, arr[:i])
		}
		if out != nil {
			out[i] = value
		}
	}
	if out == nil {
		return arr, false
	}
	return out, true
}

func isEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s == ""
}
