package format

import "errors"

var (
	// ErrUnknownFormat reports a format name with no registered factory.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrMissingDependency reports a format compiled out of this build.
	ErrMissingDependency = errors.New("missing dependency")
	// ErrInvalidOptions reports formatter options that cannot be honoured.
	ErrInvalidOptions = errors.New("invalid format options")
)
