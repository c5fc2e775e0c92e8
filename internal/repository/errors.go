package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already in use")
	// ErrDuplicateEmail is returned when an email address is already taken.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrDuplicateName is returned when an orphanage name is already taken.
	ErrDuplicateName = errors.New("name already in use")
	// ErrReferenced is returned when a delete would orphan dependent records.
	ErrReferenced = errors.New("record is referenced by other records")
)
