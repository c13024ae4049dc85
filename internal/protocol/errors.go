package protocol

import "errors"

// ErrMalformedInput is returned when the input does not follow the expected format.
var ErrMalformedInput = errors.New("malformed input")
