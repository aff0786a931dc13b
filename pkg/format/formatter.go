package format

import (
	"context"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// Built-in format names.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatSQL      = "sql"
	FormatYAML     = "yaml"
	FormatHTML     = "html"
	FormatTemplate = "template"
)

// Formatter serializes generated records into a text representation. Format
// is pure: it never mutates records and holds no state between calls.
type Formatter interface {
	Name() string
	// Extension is the conventional file suffix, including the dot.
	Extension() string
	ContentType() string
	Format(ctx context.Context, records []schema.Record) ([]byte, error)
}

// columns returns the field names of the first record. Later records are
// projected onto these columns.
func columns(records []schema.Record) []string {
	if len(records) == 0 {
		return nil
	}
	return records[0].Keys()
}
