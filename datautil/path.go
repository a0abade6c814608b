package datautil

import (
	"fmt"
	"strings"
)

// SplitPath turns a dotted path such as "a.b.c" into its keys. An empty
// string is the empty path.
func SplitPath(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ".")
}

// walk follows every key of path through nested maps and returns the last
// map reached. It fails when a key is missing or holds something other than
// a map.
func walk(path []string, data map[string]any) (map[string]any, bool) {
	cur := data
	for _, key := range path {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, cur != nil
}

// forceWalk is walk that creates, or replaces with, an empty map every key
// along path that does not already hold a map.
func forceWalk(path []string, data map[string]any) map[string]any {
	cur := data
	for _, key := range path {
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[key] = next
		}
		cur = next
	}
	return cur
}

// Path returns the value at path in data.
//
// Example:
//
//	data := map[string]any{"a": map[string]any{"b": 1}}
//	Path([]string{"a", "b"}, data) //=> 1, nil
//	Path([]string{"a", "c"}, data) //=> nil, ErrPathNotFound
func Path(path []string, data map[string]any) (any, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}
	parent, ok := walk(path[:len(path)-1], data)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound,
			strings.Join(path, "."))
	}
	v, ok := parent[path[len(path)-1]]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound,
			strings.Join(path, "."))
	}
	return v, nil
}

// PathOr returns the value at path in data, or def when the path does not
// exist.
func PathOr(def any, path []string, data map[string]any) any {
	v, err := Path(path, data)
	if err != nil {
		return def
	}
	return v
}

// HasPath reports whether path exists in data.
func HasPath(path []string, data map[string]any) bool {
	_, err := Path(path, data)
	return err == nil
}

// AssocPath sets the value at path in data, creating intermediate maps as
// needed, and returns data. Intermediate values that are not maps are
// replaced. data is modified in place.
//
// Example:
//
//	data := map[string]any{"a": map[string]any{"b": 1}}
//	AssocPath([]string{"a", "c", "d"}, 2, data)
//	//=> {"a": {"b": 1, "c": {"d": 2}}}
func AssocPath(path []string, value any,
	data map[string]any) (map[string]any, error) {

	return AssocPathComplex(nil, func(any) any { return value }, path, data)
}

// AssocPathComplex sets the value at path to fn applied to the current
// value there, or to def when there is none. data is modified in place.
//
// Example:
//
//	appendOne := func(v any) any { return append(v.([]any), 1) }
//	AssocPathComplex([]any{}, appendOne, []string{"a"}, data)
func AssocPathComplex(def any, fn func(any) any, path []string,
	data map[string]any) (map[string]any, error) {

	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: nil default function", ErrNotCallable)
	}
	if data == nil {
		data = make(map[string]any)
	}

	parent := forceWalk(path[:len(path)-1], data)
	key := path[len(path)-1]

	cur, ok := parent[key]
	if !ok {
		cur = def
	}
	parent[key] = fn(cur)

	return data, nil
}

// DissocPath removes the value at path from data and returns data. It fails
// with ErrPathNotFound if the path does not exist.
func DissocPath(path []string, data map[string]any) (map[string]any, error) {
	if !HasPath(path, data) {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound,
			strings.Join(path, "."))
	}
	parent, _ := walk(path[:len(path)-1], data)
	delete(parent, path[len(path)-1])

	return data, nil
}

// DissocPathWarn is DissocPath that logs a warning instead of failing when
// the path does not exist.
func DissocPathWarn(path []string, data map[string]any) map[string]any {
	out, err := DissocPath(path, data)
	if err != nil {
		log.Warnf("DissocPath: %v", err)
		return data
	}
	return out
}
