package chat

import "errors"

// ErrEmptyPrompt indicates an empty or blank message, rejected before any
// upstream call.
var ErrEmptyPrompt = errors.New("empty prompt")

// ErrUpstream indicates the generation boundary errored or returned no text.
var ErrUpstream = errors.New("generation failed")
