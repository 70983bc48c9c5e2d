package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeLayouts lists the textual timestamp layouts accepted by ParseTime, most specific first.
var TimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ToInt64 converts various types to int64 using explicit type switching.
// Floats are accepted only when they carry no fractional part.
func ToInt64(val any) (int64, error) {
	switch v := val.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case uint:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", v)
		}
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("value %v is not an integer", v)
		}
		return int64(v), nil
	case float32:
		return ToInt64(float64(v))
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		return parseInt(v)
	case []byte:
		return parseInt(string(v))
	default:
		return 0, fmt.Errorf("cannot convert %T to int", val)
	}
}

func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("cannot convert %q to int", s)
	}
	return int64(f), nil
}

// ToFloat64 converts numeric types, booleans and numeric strings to float64.
func ToFloat64(val any) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		// Going through the shortest decimal form keeps 0.1f from becoming 0.10000000149.
		return strconv.ParseFloat(strconv.FormatFloat(float64(v), 'f', -1, 32), 64)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to float", v)
		}
		return f, nil
	case []byte:
		return ToFloat64(string(v))
	default:
		i, err := ToInt64(val)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %T to float", val)
		}
		return float64(i), nil
	}
}

// ToString converts various types to string.
// Floats are rendered without exponent and times as RFC3339 with nanoseconds.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true, 0=false), and strings ("1", "true", "0", "false").
func ToBool(val any) (bool, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y":
			return true, nil
		case "0", "false", "f", "no", "n", "":
			return false, nil
		}
		return false, fmt.Errorf("cannot convert %q to bool", v)
	case []byte:
		return ToBool(string(v))
	default:
		i, err := ToInt64(val)
		if err != nil || (i != 0 && i != 1) {
			return false, fmt.Errorf("cannot convert %v to bool", val)
		}
		return i == 1, nil
	}
}

// ParseTime parses s with the first matching layout in TimeLayouts.
// Layouts without a zone are interpreted in UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range TimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a timestamp", s)
}

// ToTime converts time values and timestamp strings to time.Time.
func ToTime(val any) (time.Time, error) {
	switch v := val.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("nil time")
		}
		return *v, nil
	case string:
		return ParseTime(v)
	case []byte:
		return ParseTime(string(v))
	default:
		return time.Time{}, fmt.Errorf("cannot convert %T to time", val)
	}
}
