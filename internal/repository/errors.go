package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the requested key.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when an id prefix matches more than one row.
	ErrAmbiguous = errors.New("ambiguous id prefix")
)
