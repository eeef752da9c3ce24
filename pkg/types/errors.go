package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Store operation errors.
var (
	ErrInvalidKey = errors.New("invalid key")
	ErrStoreFull  = errors.New("store quota exceeded")
)

// Board errors.
var (
	ErrNotFound          = errors.New("board not found")
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrMalformedBoard    = errors.New("board tiles do not match its dimensions")
	ErrMalformedStorage  = errors.New("malformed stored data")
	ErrOutOfBounds       = errors.New("tile coordinate out of bounds")
	ErrInvalidQuery      = errors.New("invalid tile query")
)
