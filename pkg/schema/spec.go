package schema

import (
	"fmt"
	"math"
)

// Kind discriminates the FieldSpec variants.
type Kind string

const (
	KindScalar  Kind = "scalar"
	KindInteger Kind = "integer"
	KindDecimal Kind = "decimal"
	KindChoice  Kind = "choice"
	KindPattern Kind = "pattern"
	KindList    Kind = "list"
)

// Structured kinds accepted in a spec's `type` key, in documentation order.
var StructuredKinds = []Kind{KindInteger, KindDecimal, KindChoice, KindPattern, KindList}

const (
	DefaultIntegerMin       int64   = 0
	DefaultIntegerMax       int64   = 100
	DefaultDecimalMin       float64 = 0
	DefaultDecimalMax       float64 = 100
	DefaultDecimalPrecision         = 2
	DefaultListCount                = 3

	// MaxDecimalPrecision bounds rounding to digits float64 can represent.
	MaxDecimalPrecision = 15
)

// FieldSpec describes how one field value is produced. Implementations are
// limited to the variants declared in this package.
type FieldSpec interface {
	Kind() Kind
	Validate() error
	sealed()
}

// Scalar names a generator from the value provider catalogue ("email", "uuid").
type Scalar struct {
	Name string
}

// Integer draws a uniform integer from the inclusive range [Min, Max].
type Integer struct {
	Min int64
	Max int64
}

// Decimal draws a uniform float from [Min, Max] rounded to Precision digits.
type Decimal struct {
	Min       float64
	Max       float64
	Precision int
}

// Choice picks one of Values uniformly. An empty list yields nil.
type Choice struct {
	Values []any
}

// Pattern substitutes placeholders in Pattern: '#' with a digit and '?' with
// a letter. Every other character is copied.
type Pattern struct {
	Pattern string
}

// List resolves Item Count times.
type List struct {
	Item  FieldSpec
	Count int
}

var (
	_ FieldSpec = Scalar{}
	_ FieldSpec = Integer{}
	_ FieldSpec = Decimal{}
	_ FieldSpec = Choice{}
	_ FieldSpec = Pattern{}
	_ FieldSpec = List{}
)

// NewInteger returns an Integer spec with the default bounds.
func NewInteger() Integer {
	return Integer{Min: DefaultIntegerMin, Max: DefaultIntegerMax}
}

// NewDecimal returns a Decimal spec with the default bounds and precision.
func NewDecimal() Decimal {
	return Decimal{Min: DefaultDecimalMin, Max: DefaultDecimalMax, Precision: DefaultDecimalPrecision}
}

// NewList returns a List spec of item with the default count.
func NewList(item FieldSpec) List {
	return List{Item: item, Count: DefaultListCount}
}

func (Scalar) Kind() Kind  { return KindScalar }
func (Integer) Kind() Kind { return KindInteger }
func (Decimal) Kind() Kind { return KindDecimal }
func (Choice) Kind() Kind  { return KindChoice }
func (Pattern) Kind() Kind { return KindPattern }
func (List) Kind() Kind    { return KindList }

func (Scalar) sealed()  {}
func (Integer) sealed() {}
func (Decimal) sealed() {}
func (Choice) sealed()  {}
func (Pattern) sealed() {}
func (List) sealed()    {}

// Validate checks the scalar carries a name. Whether the name exists is
// decided by the provider at resolution time.
func (s Scalar) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: scalar type name is empty", ErrInvalidSpec)
	}
	return nil
}

func (s Integer) Validate() error {
	if s.Min > s.Max {
		return fmt.Errorf("%w: integer min %d > max %d", ErrInvalidRange, s.Min, s.Max)
	}
	return nil
}

func (s Decimal) Validate() error {
	if !finite(s.Min) || !finite(s.Max) {
		return fmt.Errorf("%w: decimal bounds must be finite, got %g..%g", ErrInvalidRange, s.Min, s.Max)
	}
	if s.Min > s.Max {
		return fmt.Errorf("%w: decimal min %g > max %g", ErrInvalidRange, s.Min, s.Max)
	}
	if s.Precision < 0 || s.Precision > MaxDecimalPrecision {
		return fmt.Errorf("%w: decimal precision %d outside 0..%d", ErrInvalidSpec, s.Precision, MaxDecimalPrecision)
	}
	return nil
}

func (Choice) Validate() error  { return nil }
func (Pattern) Validate() error { return nil }

func (s List) Validate() error {
	if s.Item == nil {
		return fmt.Errorf("%w: list item is required", ErrInvalidSpec)
	}
	if s.Count < 0 {
		return fmt.Errorf("%w: list count %d is negative", ErrInvalidSpec, s.Count)
	}
	if err := s.Item.Validate(); err != nil {
		return fmt.Errorf("list item: %w", err)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
