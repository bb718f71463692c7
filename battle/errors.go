package battle

import "errors"

// ErrInvalidArgument marks caller-supplied values outside the engine's domain.
// Wrapped errors name the offending field.
var ErrInvalidArgument = errors.New("invalid argument")
