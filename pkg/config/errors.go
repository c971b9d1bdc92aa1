package config

import "errors"

var (
	// ErrNilPointer is returned when Load receives a nil target.
	ErrNilPointer = errors.New("config.nil_pointer")

	// ErrParsingConfig wraps env parsing failures.
	ErrParsingConfig = errors.New("config.parsing_failed")
)
