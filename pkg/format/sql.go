package format

import (
	"context"
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// SQL dialect names accepted in SQLOptions.Dialect.
const (
	DialectStandard   = "standard"
	DialectMySQL      = "mysql"
	DialectPostgreSQL = "postgresql"
)

var dialectQuotes = map[string]string{
	"":                "",
	DialectStandard:   "",
	"none":            "",
	DialectMySQL:      "`",
	"backtick":        "`",
	DialectPostgreSQL: `"`,
	"postgres":        `"`,
	"double-quote":    `"`,
}

// Dialects lists the canonical dialect names.
func Dialects() []string {
	return []string{DialectStandard, DialectMySQL, DialectPostgreSQL}
}

// SQL renders one INSERT statement per record.
type SQL struct {
	table string
	quote string
}

var _ Formatter = (*SQL)(nil)

// NewSQL satisfies Factory.
func NewSQL(options Options) (Formatter, error) {
	dialect := strings.ToLower(strings.TrimSpace(options.SQL.Dialect))
	quote, ok := dialectQuotes[dialect]
	if !ok {
		return nil, fmt.Errorf("%w: sql dialect %q (want one of %s)", ErrInvalidOptions, options.SQL.Dialect, strings.Join(Dialects(), ", "))
	}
	table := strings.TrimSpace(options.SQL.Table)
	if table == "" {
		table = DefaultTable
	}
	return &SQL{table: table, quote: quote}, nil
}

func (*SQL) Name() string        { return FormatSQL }
func (*SQL) Extension() string   { return ".sql" }
func (*SQL) ContentType() string { return "application/sql" }

// Format implements Formatter. Statements are joined by newlines without a
// trailing one; empty input produces empty output.
func (f *SQL) Format(ctx context.Context, records []schema.Record) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []byte{}, nil
	}

	cols := columns(records)
	quoted := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = f.identifier(col)
	}
	prefix := "INSERT INTO " + f.identifier(f.table) + " (" + strings.Join(quoted, ", ") + ") VALUES ("

	var b strings.Builder
	values := make([]string, len(cols))
	for i, record := range records {
		for j, col := range cols {
			value, _ := record.Get(col)
			literal, err := sqlLiteral(value)
			if err != nil {
				return nil, fmt.Errorf("format: sql: record %d field %q: %w", i, col, err)
			}
			values[j] = literal
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(prefix)
		b.WriteString(strings.Join(values, ", "))
		b.WriteString(");")
	}
	return []byte(b.String()), nil
}

func (f *SQL) identifier(name string) string {
	if f.quote == "" {
		return name
	}
	return f.quote + strings.ReplaceAll(name, f.quote, f.quote+f.quote) + f.quote
}

func sqlLiteral(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "NULL", nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case string:
		return quoteString(v), nil
	case []any, map[string]any:
		data, err := gojson.MarshalNoEscape(v)
		if err != nil {
			return "", err
		}
		return quoteString(string(data)), nil
	}
	if text, ok := numberText(value); ok {
		return text, nil
	}
	switch value.(type) {
	case float32, float64:
		return "NULL", nil
	}
	return quoteString(fmt.Sprint(value)), nil
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
