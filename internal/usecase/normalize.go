package usecase

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Normalize converts a raw provider value into an optional float. The
// provider mixes numeric strings, plain numbers, empty strings and the
// literal "None"; anything that does not convert to a finite number is
// absent (nil). Never panics.
func Normalize(v interface{}) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return finite(float64(x))
	case int64:
		return finite(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil
		}
		return finite(f)
	case string:
		s := strings.TrimSpace(x)
		if s == "" || s == "None" || s == "none" || s == "-" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return finite(f)
	default:
		return nil
	}
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
