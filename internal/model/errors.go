package model

import "errors"

var (
	// ErrNotFound is returned when the addressed contact does not exist.
	ErrNotFound = errors.New("contact not found")
	// ErrConflict is returned when a create addresses an id already in use.
	ErrConflict = errors.New("contact id already in use")
	// ErrNotModified signals that the client's cached copy is current.
	ErrNotModified = errors.New("contact not modified")
	// ErrPreconditionFailed signals that a conditional mutation lost the race.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrIDMismatch is returned when an update carries an id that disagrees
	// with the contact it addresses.
	ErrIDMismatch = errors.New("update id does not match target contact")
	// ErrIDExhausted is returned when no fresh id can be assigned.
	ErrIDExhausted = errors.New("contact id space exhausted")
)
