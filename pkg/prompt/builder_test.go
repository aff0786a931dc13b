package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-datagen/pkg/schema"
)

type stubDriver struct {
	inputs    []string
	selects   []string
	infos     []string
	inputPos  int
	selectPos int
	rejected  []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	for s.inputPos < len(s.inputs) {
		val := s.inputs[s.inputPos]
		s.inputPos++
		if val == "" && cfg.Default != "" {
			val = cfg.Default
		}
		if cfg.Validator != nil {
			if err := cfg.Validator(val); err != nil {
				s.rejected = append(s.rejected, val)
				continue
			}
		}
		return val, nil
	}
	return "", errors.New("no input scripted")
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selects) {
		return -1, errors.New("no select scripted")
	}
	val := s.selects[s.selectPos]
	s.selectPos++
	return indexOf(cfg.Options, val), nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func TestBuilderCollectsFieldsInOrder(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"id",
			"age", "18", "", // maximum falls back to the default
			"price", "1", "10", "2",
			"status", "active, 2, 1.5, true",
			"sku", "AB-###",
			"tags", "2",
			"",
		},
		selects: []string{
			"uuid",
			OptionIntegerRange,
			OptionDecimalRange,
			OptionChoice,
			OptionPattern,
			OptionList, "word",
		},
	}

	got, err := NewBuilder(driver, []string{"uuid", "word"}).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := []schema.Field{
		{Name: "id", Spec: schema.Scalar{Name: "uuid"}},
		{Name: "age", Spec: schema.Integer{Min: 18, Max: 100}},
		{Name: "price", Spec: schema.Decimal{Min: 1, Max: 10, Precision: 2}},
		{Name: "status", Spec: schema.Choice{Values: []any{"active", int64(2), 1.5, true}}},
		{Name: "sku", Spec: schema.Pattern{Pattern: "AB-###"}},
		{Name: "tags", Spec: schema.List{Item: schema.Scalar{Name: "word"}, Count: 2}},
	}
	if diff := cmp.Diff(want, got.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infos) != 1 {
		t.Fatalf("expected one info message, got %v", driver.infos)
	}
}

func TestBuilderRejectsInvalidAnswers(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"n", "10", "5", "abc", "20",
			"n", "m", "",
		},
		selects: []string{OptionIntegerRange, "word"},
	}

	got, err := NewBuilder(driver, []string{"word"}).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"5", "abc", "n"}, driver.rejected); diff != "" {
		t.Fatalf("rejected answers mismatch (-want +got):\n%s", diff)
	}
	spec, _ := got.Lookup("n")
	if diff := cmp.Diff(schema.Integer{Min: 10, Max: 20}, spec); diff != "" {
		t.Fatalf("spec mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"n", "m"}, got.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

type abortingDriver struct{ stubDriver }

func (abortingDriver) Select(context.Context, SelectConfig) (int, error) {
	return 0, ErrAborted
}

func TestBuilderPropagatesAbort(t *testing.T) {
	driver := &abortingDriver{stubDriver{inputs: []string{"id"}}}
	_, err := NewBuilder(driver, []string{"uuid"}).Build(context.Background())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestBuilderEmptySchema(t *testing.T) {
	got, err := NewBuilder(&stubDriver{inputs: []string{""}}, nil).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got.Len() != 0 {
		t.Fatalf("expected empty schema, got %v", got.Names())
	}
}

func TestParseValues(t *testing.T) {
	got := parseValues(" a ,, 007, -3, 0.25, false, t ")
	want := []any{"a", int64(7), int64(-3), 0.25, false, "t"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}
