package query

import "errors"

// Input-validation errors. They are returned before any record is evaluated.
var (
	ErrUnsupportedSortField = errors.New("unsupported sort field")
	ErrUnsupportedDirection = errors.New("unsupported sort direction")
	ErrMissingField         = errors.New("no record field bound to active filter")
	ErrInvalidLimit         = errors.New("limit must be an integer")
)
