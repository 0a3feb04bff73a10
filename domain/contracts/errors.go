package contracts

import "errors"

// Common errors for domain contracts
var (
	// ErrNotFound occurs when a lookup matches no stored record
	ErrNotFound = errors.New("record not found")

	// ErrInvalidLimit occurs when a listing is requested with a non-positive limit
	ErrInvalidLimit = errors.New("limit must be positive")
)
