package datafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// infLiteral stands in for an infinite number. It is valid JSON syntax and
// overflows to infinity when parsed as a float.
const infLiteral = "1e999"

// JSONOptions controls WriteJSON.
type JSONOptions struct {
	// Pretty indents nested values by four spaces.
	Pretty bool
}

// ReadJSON decodes one JSON value from r. Besides standard JSON it accepts
// the bare constants NaN, decoded as nil, and Infinity and -Infinity,
// decoded as infinite float64 values. Numbers without a fraction or
// exponent that fit an int decode as int, all others as float64.
func ReadJSON(r io.Reader) (any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(replaceConstants(raw)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode json: %w: trailing data",
			ErrUnsupportedData)
	}

	return convertNumbers(v)
}

// ReadJSONFile is ReadJSON on the named file.
func ReadJSONFile(name string) (any, error) {
	return readFile(name, ReadJSON)
}

// replaceConstants rewrites the non-standard constants outside of strings:
// NaN becomes null and Infinity becomes infLiteral.
func replaceConstants(raw []byte) []byte {
	var (
		out      = make([]byte, 0, len(raw))
		inString bool
		escaped  bool
	)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			out = append(out, c)
			continue
		}

		switch {
		case c == '"':
			inString = true
		case bytes.HasPrefix(raw[i:], []byte("NaN")):
			out = append(out, "null"...)
			i += len("NaN") - 1
			continue
		case bytes.HasPrefix(raw[i:], []byte("Infinity")):
			out = append(out, infLiteral...)
			i += len("Infinity") - 1
			continue
		}
		out = append(out, c)
	}
	return out
}

func convertNumbers(v any) (any, error) {
	switch t := v.(type) {
	case json.Number:
		return parseNumber(t.String())

	case map[string]any:
		for k, item := range t {
			c, err := convertNumbers(item)
			if err != nil {
				return nil, err
			}
			t[k] = c
		}
		return t, nil

	case []any:
		for i, item := range t {
			c, err := convertNumbers(item)
			if err != nil {
				return nil, err
			}
			t[i] = c
		}
		return t, nil
	}
	return v, nil
}

func parseNumber(s string) (any, error) {
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Overflow is how infLiteral decodes.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange &&
			math.IsInf(f, 0) {

			return f, nil
		}
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return f, nil
}

// WriteJSON encodes data as JSON followed by a newline. NaN values are
// written as null and infinite values as 1e999 or -1e999, which JSON
// readers parse back as infinity.
func WriteJSON(w io.Writer, data any, opts JSONOptions) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if opts.Pretty {
		enc.SetIndent("", "    ")
	}
	if err := enc.Encode(encodable(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedData, err)
	}
	return nil
}

// WriteJSONFile is WriteJSON to the named file.
func WriteJSONFile(name string, data any, opts JSONOptions) error {
	return writeFile(name, func(w io.Writer) error {
		return WriteJSON(w, data, opts)
	})
}

// encodable copies the maps and slices of data, replacing non-finite floats
// with values encoding/json accepts.
func encodable(v any) any {
	switch t := v.(type) {
	case float64:
		return finite(t)

	case float32:
		return finite(float64(t))

	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = encodable(item)
		}
		return out

	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = encodable(item)
		}
		return out

	case []map[string]any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = encodable(item)
		}
		return out

	case map[string][]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = encodable(item)
		}
		return out

	case [][]any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = encodable(item)
		}
		return out
	}
	return v
}

func finite(f float64) any {
	switch {
	case math.IsNaN(f):
		return nil
	case math.IsInf(f, 1):
		return json.Number(infLiteral)
	case math.IsInf(f, -1):
		return json.Number("-" + infLiteral)
	}
	return f
}
