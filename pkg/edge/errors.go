package edge

import "errors"

var ErrInvalidExcludedPrefix = errors.New("excluded prefix must start with / and name a path segment")
