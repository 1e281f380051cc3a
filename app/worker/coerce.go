package worker

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// AsText converts any value to a trimmed string. Nil gives an empty string.
func AsText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case []string: // multi-value form input, the first one wins
		if len(val) == 0 {
			return ""
		}
		return strings.TrimSpace(val[0])
	case float64:
		return FormatNumber(val)
	case float32:
		return FormatNumber(float64(val))
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return strings.TrimSpace(val.String())
	case time.Time: // unquoted YAML timestamps, a plain date stays a date
		if val.Equal(val.Truncate(24*time.Hour)) && val.Location() == time.UTC {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.RFC3339)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// AsNumber converts any value to float64. Blank strings are zero, anything that can't be
// read as a number is NaN. AsNumber never fails.
func AsNumber(v any) float64 {
	switch val := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case int32:
		return float64(val)
	case uint:
		return float64(val)
	case uint64:
		return float64(val)
	case bool:
		if val {
			return 1
		}
		return 0
	case json.Number:
		return parseNumber(val.String())
	case string:
		return parseNumber(val)
	case []string:
		if len(val) == 0 {
			return 0
		}
		return parseNumber(val[0])
	default:
		return math.NaN()
	}
}

// AsBool converts any value to bool. Nil, empty strings, zero and NaN are false,
// everything else is true, so a checkbox posted as "on" is true.
func AsBool(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case []string:
		return len(val) > 0 && val[0] != ""
	case float64:
		return val != 0 && !math.IsNaN(val)
	case float32:
		return val != 0 && !math.IsNaN(float64(val))
	case int:
		return val != 0
	case int64:
		return val != 0
	case int32:
		return val != 0
	case uint:
		return val != 0
	case uint64:
		return val != 0
	case json.Number:
		f := parseNumber(val.String())
		return f != 0 && !math.IsNaN(f)
	default:
		return true
	}
}

// FormatNumber prints a number in the shortest form, e.g. 34 or 2.5. Non-finite values print as NaN.
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// ParseFloat accepts "inf", "nan" and underscores in some forms, none of them is a number here
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.Contains(s, "_") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil { // out of range values are rejected too, JSON can't carry infinities
		return math.NaN()
	}
	return f
}
