package datautil

import "errors"

var (
	// ErrEmptyData is returned by operations that need at least one
	// element to work on.
	ErrEmptyData = errors.New("empty data")

	// ErrPathNotFound is returned when a path does not resolve in the data.
	ErrPathNotFound = errors.New("path not found")

	// ErrInvalidArgument is returned for arguments that are out of range
	// or of the wrong shape.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotCallable is returned when a function argument cannot be curried
	// or does not have the arity the operation needs.
	ErrNotCallable = errors.New("not callable")
)
