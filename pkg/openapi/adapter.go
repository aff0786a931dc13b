package openapi

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/goliatone/go-datagen/pkg/schema"
)

var (
	// ErrOperationNotFound reports an operation id missing from the document.
	ErrOperationNotFound = errors.New("operation not found")
	// ErrRemoteDisabled reports a URL source given to a loader built without
	// HTTP support.
	ErrRemoteDisabled = errors.New("remote documents are disabled")
)

// stringFormats maps OpenAPI string formats onto scalar kinds.
var stringFormats = map[string]string{
	"email":     "email",
	"uuid":      "uuid",
	"date":      "date",
	"date-time": "datetime",
	"ipv4":      "ipv4",
	"ipv6":      "ipv6",
	"uri":       "url",
	"url":       "url",
	"hostname":  "domain",
	"password":  "password",
}

// Adapter wraps the loader/parser flow and turns an operation's request body
// into a dataset schema.
type Adapter struct {
	loader Loader
	parser Parser
}

// NewAdapter constructs an OpenAPI adapter with the supplied loader and parser.
func NewAdapter(loader Loader, parser Parser) *Adapter {
	return &Adapter{loader: loader, parser: parser}
}

// Schema loads src and derives a schema from the named operation.
func (a *Adapter) Schema(ctx context.Context, src Source, operationID string) (schema.Schema, error) {
	if a == nil || a.loader == nil {
		return schema.Schema{}, errors.New("openapi adapter: loader is nil")
	}
	doc, err := a.loader.Load(ctx, src)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("openapi adapter: load %s: %w", src.Location(), err)
	}
	return a.SchemaFromDocument(ctx, doc, operationID)
}

// SchemaFromDocument derives a schema from an already loaded document.
func (a *Adapter) SchemaFromDocument(ctx context.Context, doc Document, operationID string) (schema.Schema, error) {
	if a == nil || a.parser == nil {
		return schema.Schema{}, errors.New("openapi adapter: parser is nil")
	}
	operations, err := a.parser.Operations(ctx, doc)
	if err != nil {
		return schema.Schema{}, err
	}
	op, err := SelectOperation(operations, operationID)
	if err != nil {
		return schema.Schema{}, err
	}
	return FromOperation(op)
}

// SelectOperation returns the operation with id, or ErrOperationNotFound
// listing the known ids.
func SelectOperation(operations map[string]Operation, id string) (Operation, error) {
	if op, ok := operations[id]; ok {
		return op, nil
	}
	ids := make([]string, 0, len(operations))
	for key := range operations {
		ids = append(ids, key)
	}
	sort.Strings(ids)
	return Operation{}, fmt.Errorf("%w: %s. Available: %s", ErrOperationNotFound, id, strings.Join(ids, ", "))
}

// FromOperation maps the request body properties, sorted by name, into field
// specs.
func FromOperation(op Operation) (schema.Schema, error) {
	body := op.RequestBody
	if len(body.Properties) == 0 {
		return schema.Schema{}, fmt.Errorf("openapi adapter: operation %q has no request body properties", op.ID)
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]schema.Field, 0, len(names))
	for _, name := range names {
		spec, err := fieldSpec(body.Properties[name])
		if err != nil {
			return schema.Schema{}, fmt.Errorf("openapi adapter: operation %q property %q: %w", op.ID, name, err)
		}
		fields = append(fields, schema.Field{Name: name, Spec: spec})
	}
	return schema.New(fields...)
}

func fieldSpec(node Schema) (schema.FieldSpec, error) {
	switch primaryType(node.Type) {
	case "string":
		if len(node.Enum) > 0 {
			return schema.Choice{Values: enumValues(node.Enum)}, nil
		}
		if kind, ok := stringFormats[strings.ToLower(node.Format)]; ok {
			return schema.Scalar{Name: kind}, nil
		}
		return schema.Scalar{Name: "word"}, nil
	case "integer":
		if len(node.Enum) > 0 {
			return schema.Choice{Values: enumValues(node.Enum)}, nil
		}
		spec := schema.NewInteger()
		if node.Minimum != nil {
			spec.Min = int64(math.Ceil(*node.Minimum))
		}
		if node.Maximum != nil {
			spec.Max = int64(math.Floor(*node.Maximum))
		}
		if spec.Min > spec.Max {
			if node.Maximum == nil {
				spec.Max = spec.Min + (schema.DefaultIntegerMax - schema.DefaultIntegerMin)
			} else if node.Minimum == nil {
				spec.Min = spec.Max - (schema.DefaultIntegerMax - schema.DefaultIntegerMin)
			}
		}
		return spec, nil
	case "number":
		spec := schema.NewDecimal()
		if node.Minimum != nil {
			spec.Min = *node.Minimum
		}
		if node.Maximum != nil {
			spec.Max = *node.Maximum
		}
		if spec.Min > spec.Max {
			if node.Maximum == nil {
				spec.Max = spec.Min + (schema.DefaultDecimalMax - schema.DefaultDecimalMin)
			} else if node.Minimum == nil {
				spec.Min = spec.Max - (schema.DefaultDecimalMax - schema.DefaultDecimalMin)
			}
		}
		return spec, nil
	case "boolean":
		return schema.Scalar{Name: "boolean"}, nil
	case "array":
		if node.Items == nil {
			return schema.NewList(schema.Scalar{Name: "word"}), nil
		}
		item, err := fieldSpec(*node.Items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		return schema.NewList(item), nil
	case "object", "":
		return schema.Scalar{Name: "text"}, nil
	default:
		return nil, fmt.Errorf("%w: openapi type %s", schema.ErrUnknownFieldType, node.Type)
	}
}

// primaryType picks the first non-null type of a 3.1 type list.
func primaryType(raw string) string {
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" && part != "null" {
			return part
		}
	}
	return ""
}

// enumValues copies enum members, narrowing integral floats decoded from JSON
// to int64.
func enumValues(raw []any) []any {
	out := make([]any, len(raw))
	for i, v := range raw {
		if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			out[i] = int64(f)
			continue
		}
		out[i] = v
	}
	return out
}
