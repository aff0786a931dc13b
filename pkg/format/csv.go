package format

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"unicode/utf8"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// CSV renders records as delimited rows. Columns come from the first record.
type CSV struct {
	options CSVOptions
}

var _ Formatter = (*CSV)(nil)

// NewCSV satisfies Factory.
func NewCSV(options Options) (Formatter, error) {
	opts := options.CSV
	if opts.Delimiter == 0 {
		opts.Delimiter = DefaultDelimiter
	}
	switch {
	case opts.Delimiter == '"', opts.Delimiter == '\r', opts.Delimiter == '\n',
		opts.Delimiter == utf8.RuneError, !utf8.ValidRune(opts.Delimiter):
		return nil, fmt.Errorf("%w: csv delimiter %q", ErrInvalidOptions, opts.Delimiter)
	}
	return &CSV{options: opts}, nil
}

func (*CSV) Name() string        { return FormatCSV }
func (*CSV) Extension() string   { return ".csv" }
func (*CSV) ContentType() string { return "text/csv" }

// Format implements Formatter. Empty input produces empty output and there is
// no trailing newline.
func (f *CSV) Format(ctx context.Context, records []schema.Record) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = f.options.Delimiter

	cols := columns(records)
	if !f.options.NoHeader {
		if err := w.Write(cols); err != nil {
			return nil, fmt.Errorf("format: csv: header: %w", err)
		}
	}

	row := make([]string, len(cols))
	for i, record := range records {
		for j, col := range cols {
			value, _ := record.Get(col)
			text, err := cellText(value)
			if err != nil {
				return nil, fmt.Errorf("format: csv: record %d field %q: %w", i, col, err)
			}
			row[j] = text
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("format: csv: record %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("format: csv: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
