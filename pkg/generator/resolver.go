package generator

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// Resolve produces one value for spec. The only side effect is consuming
// entropy from the context stream.
func Resolve(ctx *Context, spec schema.FieldSpec) (any, error) {
	switch s := spec.(type) {
	case schema.Scalar:
		return ctx.provider.Generate(s.Name)
	case schema.Integer:
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return uniformInt(ctx.rand, s.Min, s.Max), nil
	case schema.Decimal:
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return uniformDecimal(ctx.rand, s.Min, s.Max, s.Precision), nil
	case schema.Choice:
		if len(s.Values) == 0 {
			return nil, nil
		}
		return s.Values[ctx.rand.Intn(len(s.Values))], nil
	case schema.Pattern:
		return ctx.provider.Pattern(s.Pattern), nil
	case schema.List:
		if err := s.Validate(); err != nil {
			return nil, err
		}
		items := make([]any, 0, s.Count)
		for i := 0; i < s.Count; i++ {
			item, err := Resolve(ctx, s.Item)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case nil:
		return nil, fmt.Errorf("%w: spec is nil", schema.ErrInvalidSpec)
	default:
		return nil, fmt.Errorf("%w: %T", schema.ErrUnknownFieldType, spec)
	}
}

// ResolveValue converts an untyped specification (a type name or a mapping
// with a `type` key) and resolves it.
func ResolveValue(ctx *Context, raw any) (any, error) {
	spec, err := schema.SpecFromValue(raw)
	if err != nil {
		return nil, err
	}
	return Resolve(ctx, spec)
}

// uniformInt draws from the inclusive range [min, max] without overflowing
// at the int64 extremes.
func uniformInt(r *rand.Rand, min, max int64) int64 {
	span := uint64(max) - uint64(min)
	if span == math.MaxUint64 {
		return int64(r.Uint64())
	}
	n := span + 1
	if n <= math.MaxInt64 {
		return min + r.Int63n(int64(n))
	}
	for {
		if v := r.Uint64(); v < n {
			return int64(uint64(min) + v)
		}
	}
}

// uniformDecimal draws from [min, max] and rounds half to even at precision
// digits. The draw interpolates between the bounds so wide ranges stay finite,
// and the result is clamped so rounding never escapes the range.
func uniformDecimal(r *rand.Rand, min, max float64, precision int) float64 {
	t := r.Float64()
	v := clamp(min*(1-t)+max*t, min, max)
	scale := math.Pow10(precision)
	scaled := v * scale
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return v
	}
	return clamp(math.RoundToEven(scaled)/scale, min, max)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
