package datautil

import (
	"fmt"
	"reflect"

	"golang.org/x/exp/slices"
)

// Flatten concatenates the inner slices of data.
func Flatten[T any](data [][]T) []T {
	var n int
	for _, sub := range data {
		n += len(sub)
	}
	out := make([]T, 0, n)
	for _, sub := range data {
		out = append(out, sub...)
	}
	return out
}

// Unnest flattens one level of data: elements that are []any are spliced in,
// all others are kept as they are.
//
// Example:
//
//	Unnest([]any{1, []any{2, 3}, []any{[]any{4}}}) //=> [1 2 3 [4]], nil
func Unnest(data []any) ([]any, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: unnest", ErrEmptyData)
	}
	out := make([]any, 0, len(data))
	for _, item := range data {
		if sub, ok := item.([]any); ok {
			out = append(out, sub...)
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// Head returns the first element of data.
func Head[T any](data []T) (T, error) {
	if len(data) == 0 {
		var zero T
		return zero, fmt.Errorf("%w: head", ErrEmptyData)
	}
	return data[0], nil
}

// Tail returns the last element of data.
func Tail[T any](data []T) (T, error) {
	if len(data) == 0 {
		var zero T
		return zero, fmt.Errorf("%w: tail", ErrEmptyData)
	}
	return data[len(data)-1], nil
}

// Zip pairs up the elements of a and b. The result is as long as the
// shorter input.
func Zip[T any](a, b []T) [][]T {
	n := min(len(a), len(b))
	out := make([][]T, n)
	for i := 0; i < n; i++ {
		out[i] = []T{a[i], b[i]}
	}
	return out
}

// ZipObj builds a map from keys to the value at the same index. Extra keys or
// values are ignored; a repeated key keeps its last value.
func ZipObj[K comparable, V any](keys []K, values []V) map[K]V {
	n := min(len(keys), len(values))
	out := make(map[K]V, n)
	for i := 0; i < n; i++ {
		out[keys[i]] = values[i]
	}
	return out
}

// uniq returns the distinct elements of data in first-seen order.
func uniq[T comparable](data []T) []T {
	seen := make(map[T]struct{}, len(data))
	out := make([]T, 0, len(data))
	for _, v := range data {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// checkComparable fails when an element of data cannot be compared with ==,
// such as a map or slice held in an interface.
func checkComparable[T comparable](op string, data ...[]T) error {
	for _, list := range data {
		for i, v := range list {
			rv := reflect.ValueOf(v)
			if rv.IsValid() && !rv.Comparable() {
				return fmt.Errorf("%w: %s: element %d is %T, which "+
					"cannot be compared", ErrInvalidArgument, op, i,
					v)
			}
		}
	}
	return nil
}

// Difference returns the distinct elements of a that are not in b, in the
// order they appear in a. Elements that cannot be compared, such as records,
// fail with ErrInvalidArgument.
func Difference[T comparable](a, b []T) ([]T, error) {
	if err := checkComparable("difference", a, b); err != nil {
		return nil, err
	}
	return difference(a, b), nil
}

func difference[T comparable](a, b []T) []T {
	out := make([]T, 0, len(a))
	for _, v := range uniq(a) {
		if !slices.Contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}

// Intersection returns the distinct elements of a that are also in b, in
// the order they appear in a. Elements that cannot be compared fail with
// ErrInvalidArgument.
func Intersection[T comparable](a, b []T) ([]T, error) {
	if err := checkComparable("intersection", a, b); err != nil {
		return nil, err
	}
	out := make([]T, 0, min(len(a), len(b)))
	for _, v := range uniq(a) {
		if slices.Contains(b, v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// SymmetricDifference returns the elements of a not in b followed by the
// elements of b not in a. Elements that cannot be compared fail with
// ErrInvalidArgument.
func SymmetricDifference[T comparable](a, b []T) ([]T, error) {
	if err := checkComparable("symmetricDifference", a, b); err != nil {
		return nil, err
	}
	return append(difference(a, b), difference(b, a)...), nil
}

// Adjust returns a copy of data with fn applied to the element at index.
// A negative index counts from the end. Indexes past either end are clamped
// to the first or last element.
//
// Example:
//
//	Adjust(-1, func(n int) int { return n * 10 }, []int{1, 2, 3})
//	//=> [1 2 30], nil
func Adjust[T any](index int, fn func(T) T, data []T) ([]T, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: adjust", ErrEmptyData)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: adjust", ErrNotCallable)
	}

	index = Clamp(-len(data), len(data)-1, index)
	if index < 0 {
		index += len(data)
	}

	out := slices.Clone(data)
	out[index] = fn(out[index])

	return out, nil
}
