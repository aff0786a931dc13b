package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// Structured kind labels offered ahead of the scalar catalogue.
const (
	OptionIntegerRange = "integer range"
	OptionDecimalRange = "decimal range"
	OptionChoice       = "choice"
	OptionPattern      = "pattern"
	OptionList         = "list"
)

var structuredOptions = []string{
	OptionIntegerRange,
	OptionDecimalRange,
	OptionChoice,
	OptionPattern,
	OptionList,
}

// maxListDepth bounds nested list prompts.
const maxListDepth = 3

// Builder walks a user through declaring a schema one field at a time.
type Builder struct {
	driver  PromptDriver
	options []string
}

// NewBuilder returns a Builder offering the structured kinds followed by the
// given scalar kinds.
func NewBuilder(driver PromptDriver, scalarKinds []string) *Builder {
	options := make([]string, 0, len(structuredOptions)+len(scalarKinds))
	options = append(options, structuredOptions...)
	options = append(options, scalarKinds...)
	return &Builder{driver: driver, options: options}
}

// Build prompts for fields until a blank name is entered and returns the
// resulting schema.
func (b *Builder) Build(ctx context.Context) (schema.Schema, error) {
	if b == nil || b.driver == nil {
		return schema.Schema{}, errors.New("prompt: driver is nil")
	}
	if err := b.driver.Info(ctx, "Define fields. Leave the name blank to finish."); err != nil {
		return schema.Schema{}, err
	}

	var fields []schema.Field
	seen := make(map[string]bool)
	for {
		name, err := b.driver.Input(ctx, InputConfig{
			Message: "Field name:",
			Validator: func(value string) error {
				if seen[strings.TrimSpace(value)] {
					return fmt.Errorf("field %q already defined", strings.TrimSpace(value))
				}
				return nil
			},
		})
		if err != nil {
			return schema.Schema{}, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			break
		}
		if seen[name] {
			return schema.Schema{}, fmt.Errorf("prompt: %w: %q", schema.ErrDuplicateField, name)
		}

		spec, err := b.askSpec(ctx, fmt.Sprintf("Kind for %q:", name), 0)
		if err != nil {
			return schema.Schema{}, err
		}
		seen[name] = true
		fields = append(fields, schema.Field{Name: name, Spec: spec})
	}
	return schema.New(fields...)
}

func (b *Builder) askSpec(ctx context.Context, message string, depth int) (schema.FieldSpec, error) {
	idx, err := b.driver.Select(ctx, SelectConfig{
		Message:  message,
		Options:  b.options,
		PageSize: 12,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(b.options) {
		return nil, fmt.Errorf("prompt: selection %d out of range", idx)
	}

	switch option := b.options[idx]; option {
	case OptionIntegerRange:
		return b.askInteger(ctx)
	case OptionDecimalRange:
		return b.askDecimal(ctx)
	case OptionChoice:
		raw, err := b.driver.Input(ctx, InputConfig{
			Message: "Values (comma separated):",
			Validator: func(value string) error {
				if strings.TrimSpace(value) == "" {
					return errors.New("at least one value is required")
				}
				return nil
			},
		})
		if err != nil {
			return nil, err
		}
		return schema.Choice{Values: parseValues(raw)}, nil
	case OptionPattern:
		pattern, err := b.driver.Input(ctx, InputConfig{
			Message: "Pattern (# digit, ? letter):",
			Validator: func(value string) error {
				if value == "" {
					return errors.New("pattern is required")
				}
				return nil
			},
		})
		if err != nil {
			return nil, err
		}
		return schema.Pattern{Pattern: pattern}, nil
	case OptionList:
		if depth >= maxListDepth {
			return nil, fmt.Errorf("prompt: %w: lists nest at most %d levels", schema.ErrInvalidSpec, maxListDepth)
		}
		count, err := b.askInt(ctx, "Item count:", schema.DefaultListCount, nonNegative)
		if err != nil {
			return nil, err
		}
		item, err := b.askSpec(ctx, "Item kind:", depth+1)
		if err != nil {
			return nil, err
		}
		return schema.List{Item: item, Count: int(count)}, nil
	default:
		return schema.Scalar{Name: option}, nil
	}
}

func (b *Builder) askInteger(ctx context.Context) (schema.FieldSpec, error) {
	spec := schema.NewInteger()
	minimum, err := b.askInt(ctx, "Minimum:", spec.Min, nil)
	if err != nil {
		return nil, err
	}
	maximum, err := b.askInt(ctx, "Maximum:", max(spec.Max, minimum), atLeast(minimum))
	if err != nil {
		return nil, err
	}
	spec.Min, spec.Max = minimum, maximum
	return spec, nil
}

func (b *Builder) askDecimal(ctx context.Context) (schema.FieldSpec, error) {
	spec := schema.NewDecimal()
	minimum, err := b.askFloat(ctx, "Minimum:", spec.Min, nil)
	if err != nil {
		return nil, err
	}
	maximum, err := b.askFloat(ctx, "Maximum:", max(spec.Max, minimum), func(v float64) error {
		if v < minimum {
			return fmt.Errorf("must be at least %g", minimum)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	precision, err := b.askInt(ctx, "Precision:", schema.DefaultDecimalPrecision, func(v int64) error {
		if v < 0 || v > schema.MaxDecimalPrecision {
			return fmt.Errorf("must be between 0 and %d", schema.MaxDecimalPrecision)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	spec.Min, spec.Max, spec.Precision = minimum, maximum, int(precision)
	return spec, nil
}

func (b *Builder) askInt(ctx context.Context, message string, def int64, check func(int64) error) (int64, error) {
	parse := func(value string) (int64, error) {
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, errors.New("enter a whole number")
		}
		if check != nil {
			if err := check(n); err != nil {
				return 0, err
			}
		}
		return n, nil
	}
	raw, err := b.driver.Input(ctx, InputConfig{
		Message:   message,
		Default:   strconv.FormatInt(def, 10),
		Validator: func(value string) error { _, err := parse(value); return err },
	})
	if err != nil {
		return 0, err
	}
	n, err := parse(raw)
	if err != nil {
		return 0, fmt.Errorf("prompt: %s %w", message, err)
	}
	return n, nil
}

func (b *Builder) askFloat(ctx context.Context, message string, def float64, check func(float64) error) (float64, error) {
	parse := func(value string) (float64, error) {
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, errors.New("enter a number")
		}
		if check != nil {
			if err := check(f); err != nil {
				return 0, err
			}
		}
		return f, nil
	}
	raw, err := b.driver.Input(ctx, InputConfig{
		Message:   message,
		Default:   strconv.FormatFloat(def, 'f', -1, 64),
		Validator: func(value string) error { _, err := parse(value); return err },
	})
	if err != nil {
		return 0, err
	}
	f, err := parse(raw)
	if err != nil {
		return 0, fmt.Errorf("prompt: %s %w", message, err)
	}
	return f, nil
}

func nonNegative(v int64) error {
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func atLeast(minimum int64) func(int64) error {
	return func(v int64) error {
		if v < minimum {
			return fmt.Errorf("must be at least %d", minimum)
		}
		return nil
	}
}

// parseValues splits comma separated input. Integers, decimals and booleans
// keep their type so choice values render unquoted.
func parseValues(raw string) []any {
	parts := strings.Split(raw, ",")
	values := make([]any, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.ParseInt(part, 10, 64); err == nil {
			values = append(values, n)
			continue
		}
		if f, err := strconv.ParseFloat(part, 64); err == nil {
			values = append(values, f)
			continue
		}
		if part == "true" || part == "false" {
			values = append(values, part == "true")
			continue
		}
		values = append(values, part)
	}
	return values
}
