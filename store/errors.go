package store

import "errors"

var (
	// ErrNotFound is returned when no category or item matches a lookup.
	ErrNotFound = errors.New("store: record not found")

	// ErrAmbiguous is returned when a case-insensitive item lookup matches
	// more than one row. The caller must handle it explicitly; the store
	// never picks an arbitrary row.
	ErrAmbiguous = errors.New("store: multiple records match")

	// ErrDuplicate is returned on a write that would give two items in the
	// same category the same case-insensitive name.
	ErrDuplicate = errors.New("store: duplicate item name in category")
)
