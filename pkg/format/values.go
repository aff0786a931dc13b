package format

import (
	"fmt"
	"math"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// cellText renders a value for tabular cells. Lists and maps become compact
// JSON.
func cellText(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case []any, map[string]any:
		data, err := gojson.MarshalNoEscape(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if text, ok := numberText(value); ok {
		return text, nil
	}
	return fmt.Sprint(value), nil
}

// numberText formats Go numeric values. Floats use the shortest
// representation without an exponent. NaN and infinities report false.
func numberText(value any) (string, bool) {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return floatText(float64(v), 32)
	case float64:
		return floatText(v, 64)
	default:
		return "", false
	}
}

func floatText(f float64, bits int) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, bits), true
}
