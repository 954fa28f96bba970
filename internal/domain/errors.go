package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrNoItems indicates an export was requested against an empty item set.
	ErrNoItems = errors.New("no items to export")

	// ErrInvalid marks a validation failure on caller-supplied data.
	ErrInvalid = errors.New("invalid input")
)
