package format

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-datagen/pkg/schema"
)

var (
	cellPolicyOnce sync.Once
	cellPolicy     *bluemonday.Policy
)

func cellSanitizer() *bluemonday.Policy {
	cellPolicyOnce.Do(func() {
		cellPolicy = bluemonday.StrictPolicy()
	})
	return cellPolicy
}

// HTML renders records as a table.
type HTML struct{}

var _ Formatter = (*HTML)(nil)

// NewHTML satisfies Factory.
func NewHTML(Options) (Formatter, error) {
	return &HTML{}, nil
}

func (*HTML) Name() string        { return FormatHTML }
func (*HTML) Extension() string   { return ".html" }
func (*HTML) ContentType() string { return "text/html; charset=utf-8" }

// Format implements Formatter. Cell text is stripped of markup.
func (*HTML) Format(ctx context.Context, records []schema.Record) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []byte{}, nil
	}

	policy := cellSanitizer()
	cols := columns(records)

	var b strings.Builder
	b.WriteString("<table>\n  <thead>\n    <tr>")
	for _, col := range cols {
		b.WriteString("<th>")
		b.WriteString(policy.Sanitize(col))
		b.WriteString("</th>")
	}
	b.WriteString("</tr>\n  </thead>\n  <tbody>\n")
	for i, record := range records {
		b.WriteString("    <tr>")
		for _, col := range cols {
			value, _ := record.Get(col)
			text, err := cellText(value)
			if err != nil {
				return nil, fmt.Errorf("format: html: record %d field %q: %w", i, col, err)
			}
			b.WriteString("<td>")
			b.WriteString(policy.Sanitize(text))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("  </tbody>\n</table>")
	return []byte(b.String()), nil
}
