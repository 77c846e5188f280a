package msg

import "errors"

var (
	// ErrNotFound is returned by a Resolver when no data backs the
	// requested group path and locale.
	ErrNotFound = errors.New("msg: message group not found")

	// ErrBadPattern is returned by Format when a pattern cannot accept
	// the supplied arguments.
	ErrBadPattern = errors.New("msg: pattern cannot be formatted")
)
