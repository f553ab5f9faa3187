package metadata

import "errors"

var (
	ErrQuery   = errors.New("metadata query failed")
	ErrInvalid = errors.New("invalid metadata")
)
