package schema

import "errors"

var (
	// ErrUnknownFieldType reports a scalar name or structured `type` that no
	// generator handles.
	ErrUnknownFieldType = errors.New("unknown field type")
	// ErrInvalidSpec reports a field specification with the wrong shape or
	// ill-typed parameters.
	ErrInvalidSpec = errors.New("invalid field specification")
	// ErrInvalidRange reports integer/decimal bounds where min > max.
	ErrInvalidRange = errors.New("invalid range")
	// ErrMalformedSchema reports schema text that cannot be parsed.
	ErrMalformedSchema = errors.New("malformed schema")
	// ErrDuplicateField reports a field name declared twice in one schema.
	ErrDuplicateField = errors.New("duplicate field")
)
