package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is a generic sentinel for invalid input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyBatch is returned when a batch operation receives no items.
	ErrEmptyBatch = errors.New("empty batch")
	// ErrUnsupportedFormat is returned when one or more uploads fail audio detection.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrUnreadableAudio is returned when a stream opens but audio metadata cannot be read.
	ErrUnreadableAudio = errors.New("unreadable audio")
)
