package datautil

import (
	"fmt"
	"reflect"

	"golang.org/x/exp/slices"
)

// Record is one row of tabular data: a map of column name to value.
type Record = map[string]any

// Records converts decoded JSON, a []any of objects, into records.
func Records(data any) ([]Record, error) {
	switch d := data.(type) {
	case []Record:
		return d, nil

	case []any:
		out := make([]Record, len(d))
		for i, item := range d {
			rec, ok := item.(Record)
			if !ok {
				return nil, fmt.Errorf("%w: item %d is %T, not an "+
					"object", ErrInvalidArgument, i, item)
			}
			out[i] = rec
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: %T is not a list of objects",
		ErrInvalidArgument, data)
}

// GroupBy groups data by the key fn returns for each element. Elements keep
// their relative order within a group.
//
// Example:
//
//	grade := func(score int) string {
//	    if score >= 90 {
//	        return "A"
//	    }
//	    return "B"
//	}
//	GroupBy(grade, []int{95, 80, 91}) //=> {"A": [95 91], "B": [80]}
func GroupBy[T any](fn func(T) string, data []T) map[string][]T {
	out := make(map[string][]T)
	for _, item := range data {
		key := fn(item)
		out[key] = append(out[key], item)
	}
	return out
}

// GroupWith splits data into runs of consecutive elements. fn is called with
// each element and the one before it; a new run starts whenever it returns
// false.
//
// Example:
//
//	sameParity := func(a, b int) bool { return a%2 == b%2 }
//	GroupWith(sameParity, []int{1, 3, 2, 4, 5}) //=> [[1 3] [2 4] [5]]
func GroupWith[T any](fn func(cur, prev T) bool, data []T) [][]T {
	if len(data) == 0 {
		return nil
	}

	var (
		out [][]T
		run = []T{data[0]}
	)
	for i := 1; i < len(data); i++ {
		if fn(data[i], data[i-1]) {
			run = append(run, data[i])
			continue
		}
		out = append(out, run)
		run = []T{data[i]}
	}
	return append(out, run)
}

// GroupKeys groups records that share the same values for every key in keys.
// Groups are ordered by the first appearance of each key's value, key by
// key.
func GroupKeys(keys []string, data []Record) ([][]Record, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: groupKeys needs at least one key",
			ErrInvalidArgument)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: groupKeys", ErrEmptyData)
	}
	for i, rec := range data {
		for _, k := range keys {
			if _, ok := rec[k]; !ok {
				return nil, fmt.Errorf("%w: record %d has no key %q",
					ErrInvalidArgument, i, k)
			}
		}
	}
	return groupLevel(keys, data), nil
}

func groupLevel(keys []string, data []Record) [][]Record {
	if len(keys) == 0 {
		return [][]Record{data}
	}

	var (
		order  []string
		groups = make(map[string][]Record)
	)
	for _, rec := range data {
		k := fmt.Sprint(rec[keys[0]])
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], rec)
	}

	var out [][]Record
	for _, k := range order {
		out = append(out, groupLevel(keys[1:], groups[k])...)
	}
	return out
}

// Nest builds a nested map from data. Each record's values for pathKeys form
// the path, and its value for valueKey is appended to the list at the end of
// that path.
//
// Example:
//
//	data := []Record{
//	    {"x_1": "a", "x_2": "b", "output": "c"},
//	    {"x_1": "a", "x_2": "b", "output": "d"},
//	    {"x_1": "a", "x_2": "e", "output": "f"},
//	}
//	Nest([]string{"x_1", "x_2"}, "output", data)
//	//=> {"a": {"b": ["c", "d"], "e": ["f"]}}, nil
func Nest(pathKeys []string, valueKey string, data []Record) (Record, error) {
	return nestWith(pathKeys, data, func(rec Record) (any, error) {
		v, ok := rec[valueKey]
		if !ok {
			return nil, fmt.Errorf("%w: record has no key %q",
				ErrInvalidArgument, valueKey)
		}
		return v, nil
	})
}

// NestItem is Nest that appends the whole record instead of a single value.
func NestItem(pathKeys []string, data []Record) (Record, error) {
	return nestWith(pathKeys, data, func(rec Record) (any, error) {
		return rec, nil
	})
}

func nestWith(pathKeys []string, data []Record,
	leaf func(Record) (any, error)) (Record, error) {

	if len(pathKeys) == 0 {
		return nil, fmt.Errorf("%w: nest needs at least one path key",
			ErrInvalidArgument)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: nest", ErrEmptyData)
	}

	out := make(Record)
	for i, rec := range data {
		path := make([]string, len(pathKeys))
		for j, k := range pathKeys {
			v, ok := rec[k]
			if !ok {
				return nil, fmt.Errorf("%w: record %d has no key %q",
					ErrInvalidArgument, i, k)
			}
			path[j] = fmt.Sprint(v)
		}

		v, err := leaf(rec)
		if err != nil {
			return nil, err
		}

		_, err = AssocPathComplex([]any{}, func(cur any) any {
			list, _ := cur.([]any)
			return append(list, v)
		}, path, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Pluck returns the value at path for every record. Records without the
// path contribute nil.
func Pluck(path []string, data []Record) ([]any, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: pluck", ErrEmptyData)
	}
	out := make([]any, len(data))
	for i, rec := range data {
		out[i] = PathOr(nil, path, rec)
	}
	return out, nil
}

// PluckIf is Pluck restricted to the records whose value at ifPath is one of
// ifVals. Numbers compare by value regardless of their Go type.
//
// Example:
//
//	data := []Record{
//	    {"a": map[string]any{"b": 1, "c": "d"}},
//	    {"a": map[string]any{"b": 2, "c": "e"}},
//	}
//	PluckIf([]string{"a", "c"}, []any{"d"}, []string{"a", "b"}, data)
//	//=> [1], nil
func PluckIf(ifPath []string, ifVals []any, path []string,
	data []Record) ([]any, error) {

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: pluckIf", ErrEmptyData)
	}
	out := make([]any, 0, len(data))
	for _, rec := range data {
		v := PathOr(nil, ifPath, rec)
		match := slices.IndexFunc(ifVals, func(want any) bool {
			return looseEqual(v, want)
		})
		if match >= 0 {
			out = append(out, PathOr(nil, path, rec))
		}
	}
	return out, nil
}

// looseEqual is reflect.DeepEqual that also treats numbers of different
// types as equal when their values are.
func looseEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	fa, ok := toFloat(a)
	if !ok {
		return false
	}
	fb, ok := toFloat(b)
	return ok && fa == fb
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
