package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// object is an ordered mapping decoded from schema text.
type object struct {
	keys   []string
	values []any
}

func (o *object) get(key string) (any, bool) {
	for i, k := range o.keys {
		if k == key {
			return o.values[i], true
		}
	}
	return nil, false
}

// number keeps a numeric literal until its target type is known.
type number string

// Parse decodes schema text. JSON objects are read with go-json; anything
// else is read as YAML. Field order follows the document in both cases.
func Parse(data []byte) (Schema, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Schema{}, fmt.Errorf("schema: %w: document is empty", ErrMalformedSchema)
	}

	var (
		root any
		err  error
	)
	if trimmed[0] == '{' {
		root, err = decodeJSON(trimmed)
	} else {
		root, err = decodeYAML(trimmed)
	}
	if err != nil {
		return Schema{}, fmt.Errorf("schema: %w: %v", ErrMalformedSchema, err)
	}

	obj, ok := root.(*object)
	if !ok {
		return Schema{}, fmt.Errorf("schema: %w: top level must be an object mapping field names to specs", ErrMalformedSchema)
	}
	return fromObject(obj)
}

// FromYAMLNode converts an already decoded YAML mapping into a Schema. It is
// used by loaders that embed schemas inside larger YAML documents.
func FromYAMLNode(node *yaml.Node) (Schema, error) {
	if node != nil && node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			node = nil
		} else {
			node = node.Content[0]
		}
	}
	if node == nil || node.Kind == 0 {
		return Schema{}, fmt.Errorf("schema: %w: document is empty", ErrMalformedSchema)
	}
	root, err := yamlNodeValue(node)
	if err != nil {
		return Schema{}, fmt.Errorf("schema: %w: %v", ErrMalformedSchema, err)
	}
	obj, ok := root.(*object)
	if !ok {
		return Schema{}, fmt.Errorf("schema: %w: expected a mapping of field names to specs (line %d)", ErrMalformedSchema, node.Line)
	}
	return fromObject(obj)
}

// ParseString is a convenience wrapper around Parse.
func ParseString(text string) (Schema, error) {
	return Parse([]byte(text))
}

// FromMap builds a Schema from a generic map. Maps carry no order, so fields
// are sorted by name.
func FromMap(fields map[string]any) (Schema, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	obj := &object{}
	for _, name := range names {
		obj.keys = append(obj.keys, name)
		obj.values = append(obj.values, fields[name])
	}
	return fromObject(obj)
}

// SpecFromValue converts a decoded value (a type name string or a mapping
// with a `type` key) into a FieldSpec.
func SpecFromValue(value any) (FieldSpec, error) {
	switch v := value.(type) {
	case string:
		spec := Scalar{Name: v}
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		return spec, nil
	case *object:
		return specFromObject(v)
	case map[string]any:
		return specFromObject(objectFromMap(v))
	case FieldSpec:
		if err := v.Validate(); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, describe(value))
	}
}

func fromObject(obj *object) (Schema, error) {
	fields := make([]Field, 0, len(obj.keys))
	for i, name := range obj.keys {
		spec, err := SpecFromValue(obj.values[i])
		if err != nil {
			return Schema{}, fmt.Errorf("schema: field %q: %w", name, err)
		}
		fields = append(fields, Field{Name: name, Spec: spec})
	}
	return New(fields...)
}

func specFromObject(obj *object) (FieldSpec, error) {
	rawType, ok := obj.get("type")
	if !ok {
		return nil, fmt.Errorf("%w: structured spec is missing \"type\"", ErrUnknownFieldType)
	}
	typeName, ok := rawType.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFieldType, describe(rawType))
	}

	var (
		spec FieldSpec
		err  error
	)
	switch Kind(typeName) {
	case KindInteger:
		spec, err = integerFromObject(obj)
	case KindDecimal:
		spec, err = decimalFromObject(obj)
	case KindChoice:
		spec, err = choiceFromObject(obj)
	case KindPattern:
		spec, err = patternFromObject(obj)
	case KindList:
		spec, err = listFromObject(obj)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFieldType, typeName)
	}
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func integerFromObject(obj *object) (FieldSpec, error) {
	spec := NewInteger()
	if raw, ok := obj.get("min"); ok {
		v, err := toInt64(raw)
		if err != nil {
			return nil, paramError("integer", "min", err)
		}
		spec.Min = v
	}
	if raw, ok := obj.get("max"); ok {
		v, err := toInt64(raw)
		if err != nil {
			return nil, paramError("integer", "max", err)
		}
		spec.Max = v
	}
	return spec, nil
}

func decimalFromObject(obj *object) (FieldSpec, error) {
	spec := NewDecimal()
	if raw, ok := obj.get("min"); ok {
		v, err := toFloat64(raw)
		if err != nil {
			return nil, paramError("decimal", "min", err)
		}
		spec.Min = v
	}
	if raw, ok := obj.get("max"); ok {
		v, err := toFloat64(raw)
		if err != nil {
			return nil, paramError("decimal", "max", err)
		}
		spec.Max = v
	}
	if raw, ok := obj.get("precision"); ok {
		v, err := toInt64(raw)
		if err != nil {
			return nil, paramError("decimal", "precision", err)
		}
		spec.Precision = int(v)
	}
	return spec, nil
}

func choiceFromObject(obj *object) (FieldSpec, error) {
	raw, ok := obj.get("values")
	if !ok || raw == nil {
		return Choice{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, paramError("choice", "values", fmt.Errorf("expected a list, got %s", describe(raw)))
	}
	values := make([]any, len(items))
	for i, item := range items {
		values[i] = plain(item)
	}
	return Choice{Values: values}, nil
}

func patternFromObject(obj *object) (FieldSpec, error) {
	raw, ok := obj.get("pattern")
	if !ok || raw == nil {
		return Pattern{}, nil
	}
	text, ok := raw.(string)
	if !ok {
		return nil, paramError("pattern", "pattern", fmt.Errorf("expected a string, got %s", describe(raw)))
	}
	return Pattern{Pattern: text}, nil
}

func listFromObject(obj *object) (FieldSpec, error) {
	raw, ok := obj.get("item")
	if !ok || raw == nil {
		return nil, fmt.Errorf("%w: list requires \"item\"", ErrInvalidSpec)
	}
	item, err := SpecFromValue(raw)
	if err != nil {
		return nil, fmt.Errorf("list item: %w", err)
	}
	spec := NewList(item)
	if rawCount, ok := obj.get("count"); ok {
		v, err := toInt64(rawCount)
		if err != nil {
			return nil, paramError("list", "count", err)
		}
		spec.Count = int(v)
	}
	return spec, nil
}

func paramError(kind, param string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", ErrInvalidSpec, kind, param, err)
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case number:
		i, err := strconv.ParseInt(string(v), 10, 64)
		if err == nil {
			return i, nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("integer %s out of range", string(v))
		}
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return 0, fmt.Errorf("expected an integer, got %q", string(v))
		}
		return integral(f)
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("integer %d out of range", v)
		}
		return int64(v), nil
	case float64:
		return integral(v)
	default:
		return 0, fmt.Errorf("expected an integer, got %s", describe(value))
	}
}

func integral(f float64) (int64, error) {
	if f != math.Trunc(f) || f >= 0x1p63 || f < -0x1p63 {
		return 0, fmt.Errorf("expected an integer, got %g", f)
	}
	return int64(f), nil
}

func toFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case number:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return 0, fmt.Errorf("expected a number, got %q", string(v))
		}
		return f, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("expected a number, got %s", describe(value))
	}
}

// plain converts decoded values into ordinary Go values for output.
func plain(value any) any {
	switch v := value.(type) {
	case number:
		if i, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(string(v), 64); err == nil {
			return f
		}
		return string(v)
	case *object:
		out := make(map[string]any, len(v.keys))
		for i, key := range v.keys {
			out[key] = plain(v.values[i])
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

func objectFromMap(m map[string]any) *object {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	obj := &object{keys: keys, values: make([]any, len(keys))}
	for i, key := range keys {
		obj.values[i] = m[key]
	}
	return obj
}

func describe(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case *object:
		return "object"
	case []any:
		return "list"
	case number:
		return string(v)
	default:
		return fmt.Sprintf("%v (%T)", v, v)
	}
}

func decodeJSON(data []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	value, err := readJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return value, nil
}

func readJSONValue(dec *gojson.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return jsonTokenValue(dec, tok)
}

func jsonTokenValue(dec *gojson.Decoder, tok gojson.Token) (any, error) {
	switch v := tok.(type) {
	case gojson.Delim:
		switch v {
		case '{':
			obj := &object{}
			seen := make(map[string]struct{})
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				if _, dup := seen[key]; dup {
					return nil, fmt.Errorf("duplicate key %q", key)
				}
				seen[key] = struct{}{}
				value, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.keys = append(obj.keys, key)
				obj.values = append(obj.values, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			list := []any{}
			for dec.More() {
				value, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(v))
		}
	case gojson.Number:
		return number(v.String()), nil
	case float64:
		return number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case string, bool, nil:
		return v, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("document is empty")
	}
	return yamlNodeValue(doc.Content[0])
}

func yamlNodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		if node.Alias == nil {
			return nil, errors.New("dangling alias")
		}
		return yamlNodeValue(node.Alias)
	case yaml.MappingNode:
		obj := &object{}
		seen := make(map[string]struct{})
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			key := keyNode.Value
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("line %d: duplicate key %q", keyNode.Line, key)
			}
			seen[key] = struct{}{}
			value, err := yamlNodeValue(valueNode)
			if err != nil {
				return nil, err
			}
			obj.keys = append(obj.keys, key)
			obj.values = append(obj.values, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := yamlNodeValue(child)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		return list, nil
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return nil, nil
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return nil, fmt.Errorf("line %d: %w", node.Line, err)
			}
			return b, nil
		case "!!int", "!!float":
			var v any
			if err := node.Decode(&v); err != nil {
				return nil, fmt.Errorf("line %d: %w", node.Line, err)
			}
			if i, ok := v.(int); ok {
				return int64(i), nil
			}
			return v, nil
		default:
			return node.Value, nil
		}
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", node.Line)
	}
}
