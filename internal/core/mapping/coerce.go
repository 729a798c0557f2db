package mapping

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind selects the coercion and default applied to a field.
type Kind int

const (
	KindString Kind = iota // default ""
	KindBool               // default false, only a literal true is true
	KindInt                // default 0, int64
	KindFloat              // default 0, float64
	KindRef                // default nil, int64 identifiers and foreign keys
	KindEnum               // decoded and encoded by the field's Codec
)

func (k Kind) zero() any {
	switch k {
	case KindString:
		return ""
	case KindBool:
		return false
	case KindInt:
		return int64(0)
	case KindFloat:
		return float64(0)
	default:
		return nil
	}
}

// coerce converts v to the Go type of kind, returning the kind's zero value
// when v is absent or cannot be converted.
func coerce(kind Kind, v any) any {
	switch kind {
	case KindString:
		return toString(v)
	case KindBool:
		b, ok := v.(bool)
		return ok && b
	case KindInt:
		if n, ok := toInt(v); ok {
			return n
		}
		return int64(0)
	case KindFloat:
		if f, ok := toFloat(v); ok {
			return f
		}
		return float64(0)
	case KindRef:
		if n, ok := toInt(v); ok {
			return n
		}
		return nil
	default:
		return v
	}
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	default:
		return ""
	}
}

func toInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return int64(x), true
	case json.Number:
		return toInt(string(x))
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return toInt(f)
		}
		return 0, false
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case float32:
		return toFloat(float64(x))
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case json.Number:
		return toFloat(string(x))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return toFloat(f)
	default:
		return 0, false
	}
}
