package schema

import (
	"fmt"
	"strings"
)

// Field binds a field name to its specification.
type Field struct {
	Name string
	Spec FieldSpec
}

// Schema is an ordered set of uniquely named fields. The zero value is an
// empty schema. Schemas are not mutated after construction.
type Schema struct {
	fields []Field
	index  map[string]int
}

// New builds a Schema from fields in declaration order. Names must be
// non-empty and unique, and every spec must validate.
func New(fields ...Field) (Schema, error) {
	s := Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return Schema{}, fmt.Errorf("schema: %w: field name is empty", ErrInvalidSpec)
		}
		if _, exists := s.index[name]; exists {
			return Schema{}, fmt.Errorf("schema: %w: %q", ErrDuplicateField, name)
		}
		if field.Spec == nil {
			return Schema{}, fmt.Errorf("schema: field %q: %w: spec is nil", name, ErrInvalidSpec)
		}
		if err := field.Spec.Validate(); err != nil {
			return Schema{}, fmt.Errorf("schema: field %q: %w", name, err)
		}
		s.index[name] = len(s.fields)
		s.fields = append(s.fields, Field{Name: name, Spec: field.Spec})
	}
	return s, nil
}

// MustNew panics if the schema is invalid. Useful for package-level fixtures.
func MustNew(fields ...Field) Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len reports the number of fields.
func (s Schema) Len() int {
	return len(s.fields)
}

// Fields returns a copy of the fields in declaration order.
func (s Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Names returns the field names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, field := range s.fields {
		names[i] = field.Name
	}
	return names
}

// Lookup returns the spec declared for name.
func (s Schema) Lookup(name string) (FieldSpec, bool) {
	idx, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[idx].Spec, true
}

// Entry is one generated field value.
type Entry struct {
	Name  string
	Value any
}

// Record is an ordered field name → value mapping produced for one schema
// row.
type Record struct {
	entries []Entry
}

// NewRecord copies entries into a Record, keeping their order.
func NewRecord(entries ...Entry) Record {
	return Record{entries: append([]Entry(nil), entries...)}
}

// Len reports the number of fields in the record.
func (r Record) Len() int {
	return len(r.entries)
}

// Keys returns field names in record order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.entries))
	for i, entry := range r.entries {
		keys[i] = entry.Name
	}
	return keys
}

// Entries returns a copy of the record entries.
func (r Record) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Get returns the value stored for name.
func (r Record) Get(name string) (any, bool) {
	for _, entry := range r.entries {
		if entry.Name == name {
			return entry.Value, true
		}
	}
	return nil, false
}

// Map flattens the record into an unordered map, for consumers such as
// template engines that look fields up by name.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r.entries))
	for _, entry := range r.entries {
		out[entry.Name] = entry.Value
	}
	return out
}
