package model

import "errors"

// Engine failure taxonomy. Operations wrap these with context via
// fmt.Errorf and %w so callers can match with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInvalidRange     = errors.New("invalid range")
)
