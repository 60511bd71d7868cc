package spectrum

import "errors"

// ErrInvalidSize is returned for analysis sizes that are not a power of two
// of at least 4 samples.
var ErrInvalidSize = errors.New("spectrum: analysis size must be a power of two >= 4")
