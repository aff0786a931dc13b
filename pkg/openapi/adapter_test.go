package openapi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-datagen/pkg/openapi"
	"github.com/goliatone/go-datagen/pkg/schema"
)

func ptr(v float64) *float64 { return &v }

func TestFromOperationMapsPropertyTypes(t *testing.T) {
	op := openapi.Operation{
		ID: "createOrder",
		RequestBody: openapi.Schema{
			Type: "object",
			Properties: map[string]openapi.Schema{
				"id":       {Type: "string", Format: "uuid"},
				"status":   {Type: "string", Enum: []any{"open", "closed"}},
				"priority": {Type: "integer", Enum: []any{float64(1), float64(2)}},
				"quantity": {Type: "integer", Minimum: ptr(1.5), Maximum: ptr(9.9)},
				"discount": {Type: "number", Minimum: ptr(0), Maximum: ptr(0.5)},
				"gift":     {Type: "boolean"},
				"note":     {Type: "string,null"},
				"meta":     {Type: "object"},
				"emails":   {Type: "array", Items: &openapi.Schema{Type: "string", Format: "email"}},
			},
		},
	}

	got, err := openapi.FromOperation(op)
	if err != nil {
		t.Fatalf("from operation: %v", err)
	}

	discount := schema.NewDecimal()
	discount.Min, discount.Max = 0, 0.5
	want := []schema.Field{
		{Name: "discount", Spec: discount},
		{Name: "emails", Spec: schema.NewList(schema.Scalar{Name: "email"})},
		{Name: "gift", Spec: schema.Scalar{Name: "boolean"}},
		{Name: "id", Spec: schema.Scalar{Name: "uuid"}},
		{Name: "meta", Spec: schema.Scalar{Name: "text"}},
		{Name: "note", Spec: schema.Scalar{Name: "word"}},
		{Name: "priority", Spec: schema.Choice{Values: []any{int64(1), int64(2)}}},
		{Name: "quantity", Spec: schema.Integer{Min: 2, Max: 9}},
		{Name: "status", Spec: schema.Choice{Values: []any{"open", "closed"}}},
	}
	if diff := cmp.Diff(want, got.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOperationShiftsOneSidedBounds(t *testing.T) {
	op := openapi.Operation{
		ID: "bounds",
		RequestBody: openapi.Schema{Properties: map[string]openapi.Schema{
			"floor":   {Type: "integer", Minimum: ptr(500)},
			"ceiling": {Type: "number", Maximum: ptr(-10)},
		}},
	}
	got, err := openapi.FromOperation(op)
	if err != nil {
		t.Fatalf("from operation: %v", err)
	}
	ceiling, _ := got.Lookup("ceiling")
	if diff := cmp.Diff(schema.Decimal{Min: -110, Max: -10, Precision: 2}, ceiling); diff != "" {
		t.Fatalf("ceiling mismatch (-want +got):\n%s", diff)
	}
	floor, _ := got.Lookup("floor")
	if diff := cmp.Diff(schema.Integer{Min: 500, Max: 600}, floor); diff != "" {
		t.Fatalf("floor mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOperationErrors(t *testing.T) {
	tests := []struct {
		name string
		op   openapi.Operation
		want error
	}{
		{
			name: "unknown type",
			op: openapi.Operation{ID: "x", RequestBody: openapi.Schema{Properties: map[string]openapi.Schema{
				"blob": {Type: "binary"},
			}}},
			want: schema.ErrUnknownFieldType,
		},
		{
			name: "contradictory bounds",
			op: openapi.Operation{ID: "x", RequestBody: openapi.Schema{Properties: map[string]openapi.Schema{
				"n": {Type: "integer", Minimum: ptr(10), Maximum: ptr(1)},
			}}},
			want: schema.ErrInvalidRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := openapi.FromOperation(tt.op); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := openapi.FromOperation(openapi.Operation{ID: "empty"}); err == nil {
		t.Fatalf("expected error for operation without properties")
	}
}

type stubParser struct {
	operations map[string]openapi.Operation
}

func (s stubParser) Operations(context.Context, openapi.Document) (map[string]openapi.Operation, error) {
	return s.operations, nil
}

func TestSchemaFromDocumentReportsAvailableOperations(t *testing.T) {
	adapter := openapi.NewAdapter(nil, stubParser{operations: map[string]openapi.Operation{
		"b": {ID: "b"},
		"a": {ID: "a"},
	}})
	doc := openapi.MustNewDocument(openapi.SourceFromFS("api.yaml"), []byte("openapi: 3.0.0"))

	_, err := adapter.SchemaFromDocument(context.Background(), doc, "missing")
	if !errors.Is(err, openapi.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if got, want := err.Error(), "operation not found: missing. Available: a, b"; got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}

func TestParseSource(t *testing.T) {
	src, err := openapi.ParseSource("https://example.com/api.yaml")
	if err != nil || src.Kind() != openapi.SourceKindURL {
		t.Fatalf("expected url source, got %v %v", src, err)
	}
	src, err = openapi.ParseSource("./api.yaml")
	if err != nil || src.Kind() != openapi.SourceKindFile || src.Location() != "api.yaml" {
		t.Fatalf("expected file source, got %v %v", src, err)
	}
	if _, err := openapi.ParseSource("  "); err == nil {
		t.Fatalf("expected error for blank location")
	}
}
