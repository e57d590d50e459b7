package domain

import "errors"

var (
	// ErrNotFound is returned when an entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a value breaks a non-null, non-empty or range constraint.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingReference is returned when a create request lacks a required speaker or room id.
	// Nothing is created.
	ErrMissingReference = errors.New("missing required reference")

	// ErrHasDependents is returned when a delete would orphan talks.
	ErrHasDependents = errors.New("entity has dependent talks")

	// ErrNoFallbackSpeaker is returned when a speaker with talks is deleted and no other
	// speaker can take them over.
	ErrNoFallbackSpeaker = errors.New("no fallback speaker available")
)
