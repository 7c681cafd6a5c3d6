package skinanalysis

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"skincare-backend/internal/vision"
)

// docPath addresses a node in a decoded JSON tree. Elements are object keys
// (string) or array indexes (int).
type docPath []any

func (p docPath) resolve(root any) (any, bool) {
	cur := root
	for _, step := range p {
		switch key := step.(type) {
		case string:
			obj, ok := asObject(cur)
			if !ok {
				return nil, false
			}
			next, ok := obj[key]
			if !ok {
				return nil, false
			}
			cur = next
		case int:
			arr, ok := cur.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return nil, false
			}
			cur = arr[key]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Object returns the object at p, or false when it is missing or not an object.
func (p docPath) Object(root any) (map[string]any, bool) {
	v, ok := p.resolve(root)
	if !ok {
		return nil, false
	}
	return asObject(v)
}

// Int returns the number at p rounded to the nearest integer, or def.
func (p docPath) Int(root any, def int) int {
	v, ok := p.resolve(root)
	if !ok {
		return def
	}
	n, ok := toInt(v)
	if !ok {
		return def
	}
	return n
}

func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case vision.Document:
		return t, true
	default:
		return nil, false
	}
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return roundFloat(t)
	case float32:
		return roundFloat(float64(t))
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return roundFloat(float64(i))
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return roundFloat(f)
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return roundFloat(float64(t))
	case uint:
		return roundFloat(float64(t))
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return roundFloat(float64(t))
	case uint64:
		return roundFloat(float64(t))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return roundFloat(f)
	default:
		return 0, false
	}
}

func roundFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(math.Round(f)), true
}
