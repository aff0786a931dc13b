package schema

import (
	"bytes"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// orderedObject serialises entries as a JSON object without reordering keys.
type orderedObject []Entry

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := gojson.MarshalNoEscape(entry.Name)
		if err != nil {
			return nil, err
		}
		value, err := gojson.MarshalNoEscape(entry.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON emits the record as an object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	return orderedObject(r.entries).MarshalJSON()
}

// MarshalYAML emits the record as a block mapping in field order.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, entry := range r.entries {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Name}
		value := &yaml.Node{}
		if err := value.Encode(entry.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// MarshalJSON emits the schema in the same shape Parse accepts.
func (s Schema) MarshalJSON() ([]byte, error) {
	entries := make(orderedObject, len(s.fields))
	for i, field := range s.fields {
		entries[i] = Entry{Name: field.Name, Value: field.Spec}
	}
	return entries.MarshalJSON()
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	return gojson.MarshalNoEscape(s.Name)
}

func (s Integer) MarshalJSON() ([]byte, error) {
	return orderedObject{
		{Name: "type", Value: string(KindInteger)},
		{Name: "min", Value: s.Min},
		{Name: "max", Value: s.Max},
	}.MarshalJSON()
}

func (s Decimal) MarshalJSON() ([]byte, error) {
	return orderedObject{
		{Name: "type", Value: string(KindDecimal)},
		{Name: "min", Value: s.Min},
		{Name: "max", Value: s.Max},
		{Name: "precision", Value: s.Precision},
	}.MarshalJSON()
}

func (s Choice) MarshalJSON() ([]byte, error) {
	values := s.Values
	if values == nil {
		values = []any{}
	}
	return orderedObject{
		{Name: "type", Value: string(KindChoice)},
		{Name: "values", Value: values},
	}.MarshalJSON()
}

func (s Pattern) MarshalJSON() ([]byte, error) {
	return orderedObject{
		{Name: "type", Value: string(KindPattern)},
		{Name: "pattern", Value: s.Pattern},
	}.MarshalJSON()
}

func (s List) MarshalJSON() ([]byte, error) {
	return orderedObject{
		{Name: "type", Value: string(KindList)},
		{Name: "item", Value: s.Item},
		{Name: "count", Value: s.Count},
	}.MarshalJSON()
}
