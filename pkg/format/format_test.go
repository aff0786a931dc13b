package format

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-datagen/pkg/schema"
)

func sampleRecords() []schema.Record {
	return []schema.Record{
		schema.NewRecord(
			schema.Entry{Name: "name", Value: "O'Brien"},
			schema.Entry{Name: "active", Value: true},
			schema.Entry{Name: "score", Value: nil},
		),
		schema.NewRecord(
			schema.Entry{Name: "name", Value: "Ada, Countess"},
			schema.Entry{Name: "active", Value: false},
			schema.Entry{Name: "score", Value: 12.5},
		),
	}
}

func mustFormat(t *testing.T, name string, opts Options, records []schema.Record) string {
	t.Helper()

	f, err := Default().New(name, opts)
	if err != nil {
		t.Fatalf("new %s: %v", name, err)
	}
	out, err := f.Format(context.Background(), records)
	if err != nil {
		t.Fatalf("format %s: %v", name, err)
	}
	return string(out)
}

func TestSQLQuotesStringsAndLiterals(t *testing.T) {
	t.Parallel()

	opts := Options{SQL: SQLOptions{Table: "t", Dialect: DialectStandard}}
	got := mustFormat(t, FormatSQL, opts, sampleRecords()[:1])
	const want = `INSERT INTO t (name, active, score) VALUES ('O''Brien', TRUE, NULL);`
	if got != want {
		t.Fatalf("sql =\n%s\nwant\n%s", got, want)
	}
}

func TestSQLDialects(t *testing.T) {
	t.Parallel()

	rec := []schema.Record{schema.NewRecord(
		schema.Entry{Name: "id", Value: int64(7)},
		schema.Entry{Name: "tags", Value: []any{"a", "it's"}},
	)}

	cases := []struct {
		dialect string
		want    string
	}{
		{dialect: "", want: `INSERT INTO test_data (id, tags) VALUES (7, '["a","it''s"]');`},
		{dialect: "mysql", want: "INSERT INTO `test_data` (`id`, `tags`) VALUES (7, '[\"a\",\"it''s\"]');"},
		{dialect: "backtick", want: "INSERT INTO `test_data` (`id`, `tags`) VALUES (7, '[\"a\",\"it''s\"]');"},
		{dialect: "postgresql", want: `INSERT INTO "test_data" ("id", "tags") VALUES (7, '["a","it''s"]');`},
		{dialect: "postgres", want: `INSERT INTO "test_data" ("id", "tags") VALUES (7, '["a","it''s"]');`},
	}
	for _, tc := range cases {
		got := mustFormat(t, FormatSQL, Options{SQL: SQLOptions{Dialect: tc.dialect}}, rec)
		if got != tc.want {
			t.Fatalf("dialect %q:\n got %s\nwant %s", tc.dialect, got, tc.want)
		}
	}

	if _, err := Default().New(FormatSQL, Options{SQL: SQLOptions{Dialect: "oracle"}}); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestSQLMultipleStatements(t *testing.T) {
	t.Parallel()

	got := mustFormat(t, FormatSQL, Options{SQL: SQLOptions{Table: "people"}}, sampleRecords())
	want := "INSERT INTO people (name, active, score) VALUES ('O''Brien', TRUE, NULL);\n" +
		"INSERT INTO people (name, active, score) VALUES ('Ada, Countess', FALSE, 12.5);"
	if got != want {
		t.Fatalf("sql =\n%s\nwant\n%s", got, want)
	}
}

func TestEmptyInputProducesEmptyOutput(t *testing.T) {
	t.Parallel()

	for _, name := range []string{FormatCSV, FormatSQL, FormatHTML} {
		if got := mustFormat(t, name, DefaultOptions(), nil); got != "" {
			t.Fatalf("%s: expected empty output, got %q", name, got)
		}
	}
	if got := mustFormat(t, FormatJSON, DefaultOptions(), nil); got != "[]" {
		t.Fatalf("json: expected [], got %q", got)
	}
}

func TestCSV(t *testing.T) {
	t.Parallel()

	got := mustFormat(t, FormatCSV, DefaultOptions(), sampleRecords())
	want := "name,active,score\n" +
		"O'Brien,true,\n" +
		"\"Ada, Countess\",false,12.5"
	if got != want {
		t.Fatalf("csv =\n%s\nwant\n%s", got, want)
	}

	got = mustFormat(t, FormatCSV, Options{CSV: CSVOptions{Delimiter: ';', NoHeader: true}}, sampleRecords())
	want = "O'Brien;true;\n" +
		"Ada, Countess;false;12.5"
	if got != want {
		t.Fatalf("csv with options =\n%s\nwant\n%s", got, want)
	}

	if _, err := Default().New(FormatCSV, Options{CSV: CSVOptions{Delimiter: '"'}}); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestCSVEncodesNestedValuesAsJSON(t *testing.T) {
	t.Parallel()

	records := []schema.Record{schema.NewRecord(
		schema.Entry{Name: "tags", Value: []any{"x", int64(2)}},
		schema.Entry{Name: "meta", Value: map[string]any{"b": 1, "a": true}},
	)}
	got := mustFormat(t, FormatCSV, Options{CSV: CSVOptions{NoHeader: true}}, records)
	want := `"[""x"",2]","{""a"":true,""b"":1}"`
	if got != want {
		t.Fatalf("csv = %s, want %s", got, want)
	}
}

func TestJSON(t *testing.T) {
	t.Parallel()

	records := []schema.Record{schema.NewRecord(
		schema.Entry{Name: "z", Value: "last"},
		schema.Entry{Name: "a", Value: int64(1)},
		schema.Entry{Name: "price", Value: 100.0},
	)}

	compact := mustFormat(t, FormatJSON, Options{JSON: JSONOptions{Indent: 0}}, records)
	if compact != `[{"z":"last","a":1,"price":100}]` {
		t.Fatalf("compact json = %s", compact)
	}

	indented := mustFormat(t, FormatJSON, DefaultOptions(), records)
	want := "[\n  {\n    \"z\": \"last\",\n    \"a\": 1,\n    \"price\": 100\n  }\n]"
	if indented != want {
		t.Fatalf("indented json =\n%s\nwant\n%s", indented, want)
	}

	single := mustFormat(t, FormatJSON, Options{JSON: JSONOptions{SingleObject: true}}, records)
	if single != `{"z":"last","a":1,"price":100}` {
		t.Fatalf("single object json = %s", single)
	}

	many := mustFormat(t, FormatJSON, Options{JSON: JSONOptions{SingleObject: true}}, sampleRecords())
	if !strings.HasPrefix(many, "[") {
		t.Fatalf("single object with two records should stay an array: %s", many)
	}
}

func TestHTMLSanitisesCells(t *testing.T) {
	t.Parallel()

	records := []schema.Record{schema.NewRecord(
		schema.Entry{Name: "name", Value: "<b>Ada</b>"},
		schema.Entry{Name: "bio", Value: "<script>alert(1)</script>hello"},
	)}
	got := mustFormat(t, FormatHTML, DefaultOptions(), records)
	want := "<table>\n  <thead>\n    <tr><th>name</th><th>bio</th></tr>\n  </thead>\n  <tbody>\n" +
		"    <tr><td>Ada</td><td>hello</td></tr>\n  </tbody>\n</table>"
	if got != want {
		t.Fatalf("html =\n%s\nwant\n%s", got, want)
	}
}

func TestTemplateFormat(t *testing.T) {
	t.Parallel()

	opts := Options{Template: TemplateOptions{
		Source: `{{ count }}:{% for r in records %}{{ r|field:"name" }}|{% endfor %}{{ columns|json }}`,
	}}
	got := mustFormat(t, FormatTemplate, opts, sampleRecords())
	want := `2:O'Brien|Ada, Countess|["name","active","score"]`
	if got != want {
		t.Fatalf("template = %s, want %s", got, want)
	}

	rows := Options{Template: TemplateOptions{
		Source: `{% for row in rows %}{% for cell in row %}{{ cell.name }}={{ cell.value }};{% endfor %}{% endfor %}`,
	}}
	got = mustFormat(t, FormatTemplate, rows, sampleRecords()[:1])
	if got != "name=O'Brien;active=True;score=;" {
		t.Fatalf("rows template = %s", got)
	}

	if _, err := Default().New(FormatTemplate, Options{}); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions for empty source, got %v", err)
	}
	if _, err := Default().New(FormatTemplate, Options{Template: TemplateOptions{Source: "{% for %}"}}); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions for bad source, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := Default()
	want := []string{"csv", "html", "json", "sql", "template", "yaml"}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("formats (-want +got):\n%s", diff)
	}

	_, err := reg.New("xml", DefaultOptions())
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "xml") || !strings.Contains(err.Error(), "csv, html, json") {
		t.Fatalf("error %q should name the format and alternatives", err)
	}

	if err := reg.Register(FormatJSON, NewJSON); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}

	for _, name := range reg.List() {
		opts := DefaultOptions()
		opts.Template.Source = "x"
		f, err := reg.New(name, opts)
		if err != nil {
			t.Fatalf("new %s: %v", name, err)
		}
		if f.Name() != name || !strings.HasPrefix(f.Extension(), ".") || f.ContentType() == "" {
			t.Fatalf("%s metadata: %q %q %q", name, f.Name(), f.Extension(), f.ContentType())
		}
	}
}

func TestFormatHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f, _ := Default().New(FormatJSON, DefaultOptions())
	if _, err := f.Format(ctx, sampleRecords()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
