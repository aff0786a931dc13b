package openapi

import (
	"errors"
	"strconv"
	"strings"
)

// Source identifies where an OpenAPI document came from.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind selects the loader strategy for a Source.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Document is an unparsed OpenAPI payload tagged with its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument copies raw into a Document. Both arguments are required.
func NewDocument(src Source, raw []byte) (Document, error) {
	switch {
	case src == nil:
		return Document{}, errors.New("openapi: document source is nil")
	case len(raw) == 0:
		return Document{}, errors.New("openapi: document " + src.Location() + " has no content")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument is NewDocument for fixtures.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation is an endpoint whose request body can seed a dataset schema.
// ID falls back to "method:path" when the document omits operationId.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	RequestBody Schema
}

// Schema is a reference-resolved schema node reduced to what field mapping
// reads. Type holds a comma-joined list for OpenAPI 3.1 type arrays.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	Enum        []any
	Minimum     *float64
	Maximum     *float64
	Description string
}

// Empty reports a node with no type, reference, items or properties.
func (s Schema) Empty() bool {
	return s.Type == "" && s.Ref == "" && s.Items == nil && len(s.Properties) == 0
}

// DebugString summarises the node for log lines and test failures.
func (s Schema) DebugString() string {
	parts := []string{"type=" + s.Type}
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+value)
		}
	}
	add("format", s.Format)
	add("ref", s.Ref)
	if s.Minimum != nil {
		add("min", strconv.FormatFloat(*s.Minimum, 'g', -1, 64))
	}
	if s.Maximum != nil {
		add("max", strconv.FormatFloat(*s.Maximum, 'g', -1, 64))
	}
	if n := len(s.Properties); n > 0 {
		add("properties", strconv.Itoa(n))
	}
	if n := len(s.Enum); n > 0 {
		add("enum", strconv.Itoa(n))
	}
	if s.Items != nil {
		add("items", "("+s.Items.DebugString()+")")
	}
	return strings.Join(parts, ",")
}
