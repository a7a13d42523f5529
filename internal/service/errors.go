package service

import "errors"

var (
	// ErrNotFound means the referenced id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput means the request content is unacceptable.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadySeeded is returned when sample data already exists.
	ErrAlreadySeeded = errors.New("sample data already exists")
)

// listLimit caps result sets; expected data volumes sit far below it.
const listLimit = 1000
