package upstream

import "errors"

var (
	ErrMissingURL = errors.New("upstream url is required")
	ErrInvalidURL = errors.New("upstream url must be an absolute http(s) url")
)
