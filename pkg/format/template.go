package format

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gojson "github.com/goccy/go-json"

	"github.com/goliatone/go-datagen/pkg/schema"
)

var registerFiltersOnce sync.Once

// Template renders records through a user-supplied pongo2 template. The
// template sees `records` (maps), `rows` (ordered name/value pairs),
// `columns` and `count`.
type Template struct {
	tpl *pongo2.Template
}

var _ Formatter = (*Template)(nil)

// NewTemplate satisfies Factory. The template is compiled once here.
func NewTemplate(options Options) (Formatter, error) {
	source := options.Template.Source
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: template source is required", ErrInvalidOptions)
	}
	registerFiltersOnce.Do(registerFilters)

	if !options.Template.Escape {
		source = "{% autoescape off %}" + source + "{% endautoescape %}"
	}
	tpl, err := pongo2.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("%w: parse template: %v", ErrInvalidOptions, err)
	}
	return &Template{tpl: tpl}, nil
}

func (*Template) Name() string        { return FormatTemplate }
func (*Template) Extension() string   { return ".txt" }
func (*Template) ContentType() string { return "text/plain; charset=utf-8" }

// Format implements Formatter.
func (f *Template) Format(ctx context.Context, records []schema.Record) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	maps := make([]map[string]any, len(records))
	rows := make([][]map[string]any, len(records))
	for i, record := range records {
		maps[i] = record.Map()
		entries := record.Entries()
		row := make([]map[string]any, len(entries))
		for j, entry := range entries {
			row[j] = map[string]any{"name": entry.Name, "value": entry.Value}
		}
		rows[i] = row
	}

	cols := columns(records)
	if cols == nil {
		cols = []string{}
	}

	var buf bytes.Buffer
	err := f.tpl.ExecuteWriter(pongo2.Context{
		"records": maps,
		"rows":    rows,
		"columns": cols,
		"count":   len(records),
	}, &buf)
	if err != nil {
		return nil, fmt.Errorf("format: template: execute: %w", err)
	}
	return buf.Bytes(), nil
}

func registerFilters() {
	filters := map[string]pongo2.FilterFunction{
		"field": filterField,
		"json":  filterJSON,
	}
	for name, fn := range filters {
		if pongo2.FilterExists(name) {
			_ = pongo2.ReplaceFilter(name, fn)
			continue
		}
		_ = pongo2.RegisterFilter(name, fn)
	}
}

// filterField looks a field up by name: {{ record|field:"email" }}.
func filterField(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	record, ok := in.Interface().(map[string]any)
	if !ok {
		return nil, &pongo2.Error{Sender: "filter:field", OrigError: fmt.Errorf("expected a record, got %T", in.Interface())}
	}
	return pongo2.AsValue(record[param.String()]), nil
}

// filterJSON encodes the input as compact JSON.
func filterJSON(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	data, err := gojson.MarshalNoEscape(in.Interface())
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:json", OrigError: err}
	}
	return pongo2.AsSafeValue(string(data)), nil
}
