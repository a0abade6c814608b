package datafile

import "errors"

var (
	// ErrUnsupportedData is returned when data has a shape the writer
	// cannot encode.
	ErrUnsupportedData = errors.New("unsupported data")

	// ErrHeaderRequired is returned when a keyed return type is requested
	// from a CSV file read without a header row.
	ErrHeaderRequired = errors.New("header required")

	// ErrCast is returned when a cell cannot be converted to the type
	// requested for its column.
	ErrCast = errors.New("cast error")
)
