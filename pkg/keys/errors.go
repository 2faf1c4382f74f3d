package keys

import "errors"

// ErrDuplicateKey is returned when a name is defined twice in a Universe.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrUnknownKey is returned when a name does not resolve to a key.
var ErrUnknownKey = errors.New("unknown key")
