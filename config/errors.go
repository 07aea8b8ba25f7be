package config

import "errors"

var (
	// ErrNegativeInterval indicates a timing parameter below zero.
	ErrNegativeInterval = errors.New("config: interval must not be negative")

	// ErrNonPositiveInterval indicates a required timing parameter that is
	// zero or negative.
	ErrNonPositiveInterval = errors.New("config: interval must be positive")

	// ErrMissingCap indicates a nil value cap.
	ErrMissingCap = errors.New("config: value cap must be set")

	// ErrNonPositiveCap indicates a value cap that is zero or negative.
	ErrNonPositiveCap = errors.New("config: value cap must be positive")
)
