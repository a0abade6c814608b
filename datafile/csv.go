package datafile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ReturnType selects the shape ReadCSV returns.
type ReturnType int

const (
	// ListOfDicts returns []map[string]any, one map per row keyed by
	// header.
	ListOfDicts ReturnType = iota

	// DictOfLists returns map[string][]any, one list of values per column.
	DictOfLists

	// ListOfRowLists returns [][]any, one list per row. The header row,
	// if any, comes first.
	ListOfRowLists

	// ListOfColLists returns [][]any, one list per column, each starting
	// with its header if there is one.
	ListOfColLists
)

var returnTypeNames = map[string]ReturnType{
	"list_of_dicts":     ListOfDicts,
	"dict_of_lists":     DictOfLists,
	"list_of_row_lists": ListOfRowLists,
	"list_of_col_lists": ListOfColLists,
}

// ParseReturnType parses the snake_case name of a return type.
func ParseReturnType(s string) (ReturnType, error) {
	rt, ok := returnTypeNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown return type %q", s)
	}
	return rt, nil
}

func (r ReturnType) String() string {
	for name, rt := range returnTypeNames {
		if rt == r {
			return name
		}
	}
	return fmt.Sprintf("ReturnType(%d)", int(r))
}

// Cast converts the text of a CSV cell.
type Cast int

const (
	// CastAuto tries int, then bool, then float, and keeps the string if
	// none of them fit.
	CastAuto Cast = iota
	CastString
	CastInt
	CastFloat
	CastBool
)

var castNames = map[string]Cast{
	"auto":   CastAuto,
	"string": CastString,
	"int":    CastInt,
	"float":  CastFloat,
	"bool":   CastBool,
}

// ParseCast parses a cast name: auto, string, int, float or bool.
func ParseCast(s string) (Cast, error) {
	c, ok := castNames[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("%w: unknown cast %q", ErrCast, s)
	}
	return c, nil
}

// Apply converts the cell text s. Only CastAuto never fails.
func (c Cast) Apply(s string) (any, error) {
	switch c {
	case CastString:
		return s, nil

	case CastInt:
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an int", ErrCast, s)
		}
		return n, nil

	case CastFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a float", ErrCast, s)
		}
		return f, nil

	case CastBool:
		b, ok := parseBool(s)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a bool", ErrCast, s)
		}
		return b, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if b, ok := parseBool(s); ok {
		return b, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	return s, nil
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// CSVOptions controls ReadCSV. The zero value reads a comma separated file
// with a header row, detects cell types and returns ListOfDicts.
type CSVOptions struct {
	// NoHeader treats the first row as data. Only ListOfRowLists and
	// ListOfColLists can be returned without a header.
	NoHeader bool

	// KeepStrings disables type detection: cells stay strings unless
	// CastMap names their column.
	KeepStrings bool

	// CastMap sets the cast for a column by header name. Without a header
	// columns are named by their zero based index, "0", "1" and so on.
	CastMap map[string]Cast

	// ReturnType selects the returned shape.
	ReturnType ReturnType

	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

func (o CSVOptions) castFor(column string) Cast {
	if c, ok := o.CastMap[column]; ok {
		return c
	}
	if o.KeepStrings {
		return CastString
	}
	return CastAuto
}

// ReadCSV reads CSV data from r.
//
// Example:
//
//	// a,b,c,d
//	// 1,true,1.5,abc
//	rows, _ := ReadCSV(f, CSVOptions{})
//	//=> []map[string]any{{"a": 1, "b": true, "c": 1.5, "d": "abc"}}
func ReadCSV(r io.Reader, opts CSVOptions) (any, error) {
	if opts.NoHeader && (opts.ReturnType == ListOfDicts ||
		opts.ReturnType == DictOfLists) {

		return nil, fmt.Errorf("%w: %v needs a header row",
			ErrHeaderRequired, opts.ReturnType)
	}

	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	var header []string
	if !opts.NoHeader && len(records) > 0 {
		header, records = records[0], records[1:]
	}
	if header == nil && len(records) > 0 {
		header = make([]string, len(records[0]))
		for i := range header {
			header[i] = strconv.Itoa(i)
		}
	}

	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(rec))
		for j, cell := range rec {
			v, err := opts.castFor(header[j]).Apply(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w",
					i+1, header[j], err)
			}
			row[j] = v
		}
		rows[i] = row
	}

	log.Debugf("Parsed %d CSV rows of %d columns as %v", len(rows),
		len(header), opts.ReturnType)

	return shapeRows(opts, header, rows), nil
}

func shapeRows(opts CSVOptions, header []string, rows [][]any) any {
	switch opts.ReturnType {
	case DictOfLists:
		out := make(map[string][]any, len(header))
		for _, h := range header {
			out[h] = make([]any, 0, len(rows))
		}
		for _, row := range rows {
			for j, v := range row {
				out[header[j]] = append(out[header[j]], v)
			}
		}
		return out

	case ListOfRowLists:
		out := make([][]any, 0, len(rows)+1)
		if !opts.NoHeader {
			out = append(out, stringsToAny(header))
		}
		return append(out, rows...)

	case ListOfColLists:
		out := make([][]any, len(header))
		for j, h := range header {
			col := make([]any, 0, len(rows)+1)
			if !opts.NoHeader {
				col = append(col, h)
			}
			for _, row := range rows {
				col = append(col, row[j])
			}
			out[j] = col
		}
		return out
	}

	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		rec := make(map[string]any, len(row))
		for j, v := range row {
			rec[header[j]] = v
		}
		out[i] = rec
	}
	return out
}

func stringsToAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

// ReadCSVFile is ReadCSV on the named file.
func ReadCSVFile(name string, opts CSVOptions) (any, error) {
	return readFile(name, func(r io.Reader) (any, error) {
		return ReadCSV(r, opts)
	})
}

// WriteCSV writes data as CSV. data is either a list of records
// ([]map[string]any, or []any of them, as decoded from JSON), written with
// a header row of the sorted union of their keys, or a list of rows
// ([][]any, [][]string, or []any of []any), written as is.
func WriteCSV(w io.Writer, data any) error {
	rows, err := csvRows(data)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteCSVFile is WriteCSV to the named file.
func WriteCSVFile(name string, data any) error {
	return writeFile(name, func(w io.Writer) error {
		return WriteCSV(w, data)
	})
}

func csvRows(data any) ([][]string, error) {
	switch d := data.(type) {
	case []map[string]any:
		return recordRows(d), nil

	case [][]string:
		return d, nil

	case [][]any:
		out := make([][]string, len(d))
		for i, row := range d {
			out[i] = formatRow(row)
		}
		return out, nil

	case []any:
		if len(d) == 0 {
			return nil, nil
		}
		if _, ok := d[0].(map[string]any); ok {
			recs := make([]map[string]any, len(d))
			for i, item := range d {
				rec, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("%w: item %d is %T, "+
						"expected an object", ErrUnsupportedData,
						i, item)
				}
				recs[i] = rec
			}
			return recordRows(recs), nil
		}
		out := make([][]string, len(d))
		for i, item := range d {
			row, ok := item.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: item %d is %T, expected "+
					"a list", ErrUnsupportedData, i, item)
			}
			out[i] = formatRow(row)
		}
		return out, nil
	}

	return nil, fmt.Errorf("%w: csv needs a list of records or a list of "+
		"rows, got %T", ErrUnsupportedData, data)
}

func recordRows(recs []map[string]any) [][]string {
	cols := make(map[string]struct{})
	for _, rec := range recs {
		for k := range rec {
			cols[k] = struct{}{}
		}
	}
	header := maps.Keys(cols)
	slices.Sort(header)

	out := make([][]string, 0, len(recs)+1)
	out = append(out, header)
	for _, rec := range recs {
		row := make([]string, len(header))
		for j, h := range header {
			row[j] = formatCell(rec[h])
		}
		out = append(out, row)
	}
	return out
}

func formatRow(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = formatCell(v)
	}
	return out
}

func formatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(c), 'f', -1, 32)
	}
	return fmt.Sprint(v)
}
