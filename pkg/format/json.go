package format

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// JSON renders records as a JSON array, keeping field order.
type JSON struct {
	options JSONOptions
}

var _ Formatter = (*JSON)(nil)

// NewJSON satisfies Factory.
func NewJSON(options Options) (Formatter, error) {
	if options.JSON.Indent < 0 {
		return nil, fmt.Errorf("%w: json indent %d is negative", ErrInvalidOptions, options.JSON.Indent)
	}
	return &JSON{options: options.JSON}, nil
}

func (*JSON) Name() string        { return FormatJSON }
func (*JSON) Extension() string   { return ".json" }
func (*JSON) ContentType() string { return "application/json" }

// Format implements Formatter.
func (f *JSON) Format(ctx context.Context, records []schema.Record) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var compact bytes.Buffer
	if f.options.SingleObject && len(records) == 1 {
		data, err := records[0].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("format: json: %w", err)
		}
		compact.Write(data)
	} else {
		compact.WriteByte('[')
		for i, record := range records {
			if i > 0 {
				compact.WriteByte(',')
			}
			data, err := record.MarshalJSON()
			if err != nil {
				return nil, fmt.Errorf("format: json: record %d: %w", i, err)
			}
			compact.Write(data)
		}
		compact.WriteByte(']')
	}

	if f.options.Indent == 0 {
		return compact.Bytes(), nil
	}

	var out bytes.Buffer
	if err := gojson.Indent(&out, compact.Bytes(), "", strings.Repeat(" ", f.options.Indent)); err != nil {
		return nil, fmt.Errorf("format: json: indent: %w", err)
	}
	return out.Bytes(), nil
}
