package schema

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseJSONPreservesFieldOrder(t *testing.T) {
	t.Parallel()

	const doc = `{
  "zeta": "email",
  "alpha": {"type": "integer", "min": 18, "max": 65},
  "mid": {"type": "decimal", "min": 1.5, "max": 9.5, "precision": 1},
  "status": {"type": "choice", "values": ["active", 2, true, null]},
  "sku": {"type": "pattern", "pattern": "SKU-####"},
  "tags": {"type": "list", "item": "word", "count": 2}
}`

	s, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if diff := cmp.Diff([]string{"zeta", "alpha", "mid", "status", "sku", "tags"}, s.Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	want := []Field{
		{Name: "zeta", Spec: Scalar{Name: "email"}},
		{Name: "alpha", Spec: Integer{Min: 18, Max: 65}},
		{Name: "mid", Spec: Decimal{Min: 1.5, Max: 9.5, Precision: 1}},
		{Name: "status", Spec: Choice{Values: []any{"active", int64(2), true, nil}}},
		{Name: "sku", Spec: Pattern{Pattern: "SKU-####"}},
		{Name: "tags", Spec: List{Item: Scalar{Name: "word"}, Count: 2}},
	}
	if diff := cmp.Diff(want, s.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAMLMatchesJSON(t *testing.T) {
	t.Parallel()

	const yamlDoc = `
name: full_name
age:
  type: integer
  min: 18
  max: 65
tags:
  type: list
  item:
    type: choice
    values: [a, b]
`
	const jsonDoc = `{"name":"full_name","age":{"type":"integer","min":18,"max":65},"tags":{"type":"list","item":{"type":"choice","values":["a","b"]}}}`

	fromYAML, err := Parse([]byte(yamlDoc))
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	fromJSON, err := Parse([]byte(jsonDoc))
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if diff := cmp.Diff(fromJSON.Fields(), fromYAML.Fields()); diff != "" {
		t.Fatalf("yaml and json disagree (-json +yaml):\n%s", diff)
	}

	spec, _ := fromYAML.Lookup("tags")
	list, ok := spec.(List)
	if !ok {
		t.Fatalf("expected List, got %T", spec)
	}
	if list.Count != DefaultListCount {
		t.Fatalf("expected default count %d, got %d", DefaultListCount, list.Count)
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	t.Parallel()

	s, err := ParseString(`{"n": {"type": "integer"}, "d": {"type": "decimal"}, "c": {"type": "choice"}}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	n, _ := s.Lookup("n")
	if diff := cmp.Diff(FieldSpec(Integer{Min: 0, Max: 100}), n); diff != "" {
		t.Fatalf("integer defaults (-want +got):\n%s", diff)
	}
	d, _ := s.Lookup("d")
	if diff := cmp.Diff(FieldSpec(Decimal{Min: 0, Max: 100, Precision: 2}), d); diff != "" {
		t.Fatalf("decimal defaults (-want +got):\n%s", diff)
	}
	c, _ := s.Lookup("c")
	if got := c.(Choice); len(got.Values) != 0 {
		t.Fatalf("expected empty choice values, got %v", got.Values)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		doc  string
		want error
	}{
		{name: "empty", doc: "   ", want: ErrMalformedSchema},
		{name: "broken json", doc: `{"a": `, want: ErrMalformedSchema},
		{name: "top level list", doc: `- email`, want: ErrMalformedSchema},
		{name: "duplicate key", doc: `{"a": "email", "a": "uuid"}`, want: ErrMalformedSchema},
		{name: "missing type", doc: `{"a": {"min": 1}}`, want: ErrUnknownFieldType},
		{name: "unknown structured type", doc: `{"a": {"type": "galaxy"}}`, want: ErrUnknownFieldType},
		{name: "inverted integer range", doc: `{"a": {"type": "integer", "min": 10, "max": 1}}`, want: ErrInvalidRange},
		{name: "inverted decimal range", doc: "a:\n  type: decimal\n  min: 5\n  max: 1\n", want: ErrInvalidRange},
		{name: "fractional integer bound", doc: `{"a": {"type": "integer", "min": 1.5}}`, want: ErrInvalidSpec},
		{name: "negative list count", doc: `{"a": {"type": "list", "item": "word", "count": -1}}`, want: ErrInvalidSpec},
		{name: "list without item", doc: `{"a": {"type": "list"}}`, want: ErrInvalidSpec},
		{name: "numeric spec", doc: `{"a": 5}`, want: ErrInvalidSpec},
		{name: "values not a list", doc: `{"a": {"type": "choice", "values": "x"}}`, want: ErrInvalidSpec},
		{name: "integer bound at 2^63", doc: `{"a": {"type": "integer", "min": 9.223372036854775807e18}}`, want: ErrInvalidSpec},
		{name: "integer literal above int64", doc: `{"a": {"type": "integer", "max": 9223372036854775808}}`, want: ErrInvalidSpec},
		{name: "integer literal below int64", doc: `{"a": {"type": "integer", "min": -9223372036854775809}}`, want: ErrInvalidSpec},
		{name: "yaml integer above int64", doc: "a:\n  type: integer\n  max: 9223372036854775808\n", want: ErrInvalidSpec},
		{name: "list count at 2^63", doc: `{"a": {"type": "list", "item": "word", "count": 9.223372036854775807e18}}`, want: ErrInvalidSpec},
		{name: "infinite integer bound", doc: "a:\n  type: integer\n  max: .inf\n", want: ErrInvalidSpec},
		{name: "infinite decimal bound", doc: "a:\n  type: decimal\n  min: -.inf\n", want: ErrInvalidRange},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseString(tc.doc)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseIntegerBoundsAtInt64Limits(t *testing.T) {
	t.Parallel()

	s, err := ParseString(`{"a": {"type": "integer", "min": -9223372036854775808, "max": 9223372036854775807}}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	spec, _ := s.Lookup("a")
	want := Integer{Min: math.MinInt64, Max: math.MaxInt64}
	if diff := cmp.Diff(want, spec); diff != "" {
		t.Fatalf("spec mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAMLNumerals(t *testing.T) {
	t.Parallel()

	doc := "hex:\n  type: integer\n  min: 0x10\n  max: 0o77\n" +
		"wide:\n  type: decimal\n  min: 1_000\n  max: 2.5e3\n" +
		"code:\n  type: choice\n  values: [0x1F, 1.5]\n"
	s, err := ParseString(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []Field{
		{Name: "hex", Spec: Integer{Min: 16, Max: 63}},
		{Name: "wide", Spec: Decimal{Min: 1000, Max: 2500, Precision: DefaultDecimalPrecision}},
		{Name: "code", Spec: Choice{Values: []any{int64(31), 1.5}}},
	}
	if diff := cmp.Diff(want, s.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrorNamesField(t *testing.T) {
	t.Parallel()

	_, err := ParseString(`{"ok": "email", "bad": {"type": "nope"}}`)
	if err == nil {
		t.Fatalf("expected error")
	}
	const want = `schema: field "bad": unknown field type: nope`
	if err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
}

func TestFromMapSortsFields(t *testing.T) {
	t.Parallel()

	s, err := FromMap(map[string]any{
		"email": "email",
		"age":   map[string]any{"type": "integer", "min": 1, "max": 2},
		"bio":   Pattern{Pattern: "??"},
	})
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if diff := cmp.Diff([]string{"age", "bio", "email"}, s.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	age, _ := s.Lookup("age")
	if diff := cmp.Diff(FieldSpec(Integer{Min: 1, Max: 2}), age); diff != "" {
		t.Fatalf("age spec (-want +got):\n%s", diff)
	}
}

func TestSchemaRoundTripThroughJSON(t *testing.T) {
	t.Parallel()

	original := MustNew(
		Field{Name: "id", Spec: Scalar{Name: "uuid"}},
		Field{Name: "price", Spec: Decimal{Min: 1, Max: 10, Precision: 2}},
		Field{Name: "tags", Spec: List{Item: Choice{Values: []any{"x", "y"}}, Count: 2}},
	)

	data, err := original.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	const want = `{"id":"uuid","price":{"type":"decimal","min":1,"max":10,"precision":2},"tags":{"type":"list","item":{"type":"choice","values":["x","y"]},"count":2}}`
	if string(data) != want {
		t.Fatalf("json = %s\nwant %s", data, want)
	}

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if diff := cmp.Diff(original.Fields(), parsed.Fields()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
