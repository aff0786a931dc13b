package format

const (
	DefaultJSONIndent = 2
	DefaultDelimiter  = ','
	DefaultTable      = "test_data"
)

// Options carries the per-format settings. Each factory reads only its own
// section, so one Options value can be shared across formats.
type Options struct {
	JSON     JSONOptions
	CSV      CSVOptions
	SQL      SQLOptions
	Template TemplateOptions
}

// JSONOptions controls structured-object output.
type JSONOptions struct {
	// Indent is the number of spaces per level. Zero produces compact
	// single-line output.
	Indent int
	// SingleObject emits the record itself, not a one-element array, when
	// exactly one record is formatted.
	SingleObject bool
}

// CSVOptions controls tabular output.
type CSVOptions struct {
	// Delimiter defaults to ',' when zero.
	Delimiter rune
	NoHeader  bool
}

// SQLOptions controls INSERT statement output.
type SQLOptions struct {
	// Table defaults to DefaultTable when empty.
	Table string
	// Dialect selects identifier quoting: standard (none), mysql
	// (backticks) or postgresql (double quotes).
	Dialect string
}

// TemplateOptions controls the custom template format.
type TemplateOptions struct {
	// Source is the pongo2 template text.
	Source string
	// Escape enables pongo2 HTML autoescaping. Off by default since
	// templates usually produce data files.
	Escape bool
}

// DefaultOptions returns the settings the CLI starts from.
func DefaultOptions() Options {
	return Options{
		JSON: JSONOptions{Indent: DefaultJSONIndent},
		CSV:  CSVOptions{Delimiter: DefaultDelimiter},
		SQL:  SQLOptions{Table: DefaultTable, Dialect: DialectStandard},
	}
}
