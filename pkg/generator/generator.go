package generator

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// ErrInvalidCount reports a negative record count.
var ErrInvalidCount = errors.New("invalid record count")

// Generate resolves every field of s, in declaration order, count times. The
// first failure aborts the run and no records are returned.
func Generate(ctx *Context, s schema.Schema, count int) ([]schema.Record, error) {
	if ctx == nil {
		return nil, errors.New("generator: context is required")
	}
	if count < 0 {
		return nil, fmt.Errorf("generator: %w: %d", ErrInvalidCount, count)
	}

	fields := s.Fields()
	records := make([]schema.Record, 0, count)
	entries := make([]schema.Entry, len(fields))
	for i := 0; i < count; i++ {
		for j, field := range fields {
			value, err := Resolve(ctx, field.Spec)
			if err != nil {
				return nil, fmt.Errorf("generator: field %q: %w", field.Name, err)
			}
			entries[j] = schema.Entry{Name: field.Name, Value: value}
		}
		records = append(records, schema.NewRecord(entries...))
	}
	return records, nil
}
