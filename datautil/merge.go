package datautil

import "golang.org/x/exp/maps"

// MergeDeep merges update into data and returns the result. Keys present in
// both are merged recursively when both values are maps; otherwise the
// value from update wins. Neither input is modified.
//
// Example:
//
//	data := map[string]any{"a": map[string]any{"b": 1, "c": 2}}
//	update := map[string]any{"a": map[string]any{"c": 3}, "d": 4}
//	MergeDeep(update, data) //=> {"a": {"b": 1, "c": 3}, "d": 4}
func MergeDeep(update, data map[string]any) map[string]any {
	out := maps.Clone(data)
	if out == nil {
		out = make(map[string]any, len(update))
	}
	for k, uv := range update {
		dv, ok := out[k]
		if !ok {
			out[k] = uv
			continue
		}
		um, uok := uv.(map[string]any)
		dm, dok := dv.(map[string]any)
		if uok && dok {
			out[k] = MergeDeep(um, dm)
			continue
		}
		out[k] = uv
	}
	return out
}
