package analysis

import "errors"

// ErrNotFound indicates no analysis record exists yet for the document.
var ErrNotFound = errors.New("analysis not found")

// ErrIncomplete indicates a record exists but is still being filled in.
var ErrIncomplete = errors.New("analysis incomplete")
